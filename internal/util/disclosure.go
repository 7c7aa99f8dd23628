package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/disclosure"
)

// DisclosureDefaults are the list sizes used when a request omits them
type DisclosureDefaults struct {
	Initial int
	Step    int
}

// DisclosureParams are the list query parameters every list endpoint accepts
type DisclosureParams struct {
	Initial int
	Step    int
	Reveals int
	All     bool
}

// ParseDisclosureParams reads initial, step, reveals and all from the query string.
// Values that are present but not integers are rejected rather than defaulted.
func ParseDisclosureParams(c *gin.Context, defaults DisclosureDefaults) (DisclosureParams, error) {
	p := DisclosureParams{Initial: defaults.Initial, Step: defaults.Step}

	for _, q := range []struct {
		name string
		dst  *int
	}{
		{"initial", &p.Initial},
		{"step", &p.Step},
		{"reveals", &p.Reveals},
	} {
		raw, ok := c.GetQuery(q.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: %s must be an integer", disclosure.ErrInvalidArgument, q.name)
		}
		*q.dst = v
	}
	p.All = ParseBool(c.Query("all"))

	return p, nil
}

// Cursor rebuilds the cursor for a sequence of the given length.
// With All set the whole sequence is shown.
func (p DisclosureParams) Cursor(sequenceLength int) (*disclosure.Cursor, error) {
	if p.All {
		return disclosure.New(sequenceLength, p.Step)
	}
	return disclosure.Replay(p.Initial, p.Step, p.Reveals)
}
