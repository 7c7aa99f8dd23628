// Package disclosure tracks how many items of a longer list are currently shown
// ("show more" / "show less" state) without holding the list itself.
package disclosure

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a cursor is built from out-of-range sizes
var ErrInvalidArgument = errors.New("invalid argument")

// Cursor counts the visible prefix of a sequence owned by someone else.
// A Cursor belongs to a single view and is not safe for concurrent use.
type Cursor struct {
	visible   int
	initial   int
	increment int
}

// New creates a cursor showing initialCount items that grows by increment on each reveal.
// initialCount must be >= 0 and increment must be > 0.
func New(initialCount, increment int) (*Cursor, error) {
	if initialCount < 0 {
		return nil, fmt.Errorf("%w: initial count %d must not be negative", ErrInvalidArgument, initialCount)
	}
	if increment <= 0 {
		return nil, fmt.Errorf("%w: increment %d must be positive", ErrInvalidArgument, increment)
	}

	return &Cursor{
		visible:   initialCount,
		initial:   initialCount,
		increment: increment,
	}, nil
}

// Replay rebuilds a cursor after reveals presses of "show more".
// Stateless callers (HTTP list endpoints) receive the press count from the client.
func Replay(initialCount, increment, reveals int) (*Cursor, error) {
	if reveals < 0 {
		return nil, fmt.Errorf("%w: reveals %d must not be negative", ErrInvalidArgument, reveals)
	}

	c, err := New(initialCount, increment)
	if err != nil {
		return nil, err
	}
	if reveals > (math.MaxInt-initialCount)/increment {
		return nil, fmt.Errorf("%w: reveals %d overflows the visible count", ErrInvalidArgument, reveals)
	}
	c.visible += reveals * increment
	return c, nil
}

// RevealMore grows the visible count by one increment.
// Rendering clamps to the sequence length; the count itself saturates at math.MaxInt.
func (c *Cursor) RevealMore() {
	if c.visible > math.MaxInt-c.increment {
		c.visible = math.MaxInt
		return
	}
	c.visible += c.increment
}

// Reset collapses the cursor back to its initial count
func (c *Cursor) Reset() {
	c.visible = c.initial
}

// Visible returns the stored visible count (may exceed the sequence length)
func (c *Cursor) Visible() int {
	return c.visible
}

// Initial returns the count the cursor was created with
func (c *Cursor) Initial() int {
	return c.initial
}

// Increment returns how many items each reveal adds
func (c *Cursor) Increment() int {
	return c.increment
}

// Remaining returns how many items of a sequence of the given length are still hidden
func (c *Cursor) Remaining(sequenceLength int) int {
	return max(0, sequenceLength-c.visible)
}

// Clamp returns how many items of a sequence of the given length should be rendered
func (c *Cursor) Clamp(sequenceLength int) int {
	return max(0, min(c.visible, sequenceLength))
}

// Window returns the visible prefix of items
func Window[T any](c *Cursor, items []T) []T {
	return items[:c.Clamp(len(items))]
}
