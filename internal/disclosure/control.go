package disclosure

// Control is what a list renderer needs to draw its "show more" / "show less" buttons
type Control struct {
	Visible       int  `json:"visible"`
	Initial       int  `json:"initial"`
	Increment     int  `json:"increment"`
	Shown         int  `json:"shown"`
	Remaining     int  `json:"remaining"`
	Total         int  `json:"total"`
	CanRevealMore bool `json:"can_reveal_more"`
	CanReset      bool `json:"can_reset"`
}

// ControlFor derives the control state of a cursor over a sequence of the given length
func ControlFor(c *Cursor, sequenceLength int) Control {
	remaining := c.Remaining(sequenceLength)
	return Control{
		Visible:       c.Visible(),
		Initial:       c.Initial(),
		Increment:     c.Increment(),
		Shown:         c.Clamp(sequenceLength),
		Remaining:     remaining,
		Total:         max(0, sequenceLength),
		CanRevealMore: remaining > 0,
		CanReset:      c.Visible() > c.Initial(),
	}
}
