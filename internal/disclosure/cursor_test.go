package disclosure

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		initial   int
		increment int
		wantErr   bool
	}{
		{name: "typical sizes", initial: 3, increment: 3},
		{name: "zero initial is allowed", initial: 0, increment: 5},
		{name: "initial larger than increment", initial: 10, increment: 1},
		{name: "negative initial", initial: -1, increment: 3, wantErr: true},
		{name: "zero increment", initial: 3, increment: 0, wantErr: true},
		{name: "negative increment", initial: 3, increment: -2, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.initial, tc.increment)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.initial, c.Visible())
			assert.Equal(t, tc.initial, c.Initial())
			assert.Equal(t, tc.increment, c.Increment())
		})
	}
}

func TestRevealMore_GrowsByIncrement(t *testing.T) {
	for _, sizes := range [][2]int{{0, 1}, {3, 3}, {5, 2}, {1, 10}} {
		c, err := New(sizes[0], sizes[1])
		require.NoError(t, err)

		for n := 1; n <= 20; n++ {
			c.RevealMore()
			assert.Equal(t, sizes[0]+n*sizes[1], c.Visible(), "after %d reveals of %v", n, sizes)
		}
	}
}

func TestReset_RestoresInitial(t *testing.T) {
	c, err := New(4, 2)
	require.NoError(t, err)

	c.Reset()
	assert.Equal(t, 4, c.Visible(), "reset without reveals is a no-op")

	for i := 0; i < 7; i++ {
		c.RevealMore()
	}
	c.Reset()
	assert.Equal(t, 4, c.Visible())

	c.RevealMore()
	assert.Equal(t, 6, c.Visible(), "growth resumes from the initial count")
}

func TestRemaining(t *testing.T) {
	c, err := New(3, 3)
	require.NoError(t, err)

	for length := 0; length <= 12; length++ {
		assert.Equal(t, max(0, length-3), c.Remaining(length), "length %d", length)
	}
}

func TestClampAndWindow(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	c, err := New(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, Window(c, items))

	c.RevealMore()
	assert.Equal(t, []string{"a", "b", "c", "d"}, Window(c, items))

	c.RevealMore()
	c.RevealMore()
	assert.Equal(t, 8, c.Visible())
	assert.Equal(t, 5, c.Clamp(len(items)))
	assert.Equal(t, items, Window(c, items))

	assert.Empty(t, Window(c, []string{}))
	assert.Empty(t, Window[string](c, nil))
}

func TestWindow_ZeroInitial(t *testing.T) {
	c, err := New(0, 4)
	require.NoError(t, err)
	assert.Empty(t, Window(c, []int{1, 2, 3}))
	assert.Equal(t, 3, c.Remaining(3))
}

func TestReplay(t *testing.T) {
	c, err := Replay(3, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Visible())

	c, err = Replay(3, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Visible())
	assert.Equal(t, 3, c.Initial())

	c.Reset()
	assert.Equal(t, 3, c.Visible())

	_, err = Replay(3, 3, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Replay(3, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReplay_RejectsOverflowingReveals(t *testing.T) {
	maxReveals := (math.MaxInt - 3) / 3

	c, err := Replay(3, 3, maxReveals)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, c.Visible(), 0)
	assert.Equal(t, 0, c.Remaining(5))
	assert.Equal(t, 5, c.Clamp(5))

	_, err = Replay(3, 3, maxReveals+1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Replay(0, 1, math.MaxInt)
	require.NoError(t, err)
	_, err = Replay(1, 1, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRevealMore_SaturatesAtMaxInt(t *testing.T) {
	c, err := Replay(3, 3, (math.MaxInt-3)/3)
	require.NoError(t, err)

	c.RevealMore()
	assert.Equal(t, math.MaxInt, c.Visible())
	c.RevealMore()
	assert.Equal(t, math.MaxInt, c.Visible())
	assert.Equal(t, []int{1, 2}, Window(c, []int{1, 2}))

	c.Reset()
	assert.Equal(t, 3, c.Visible())
}

// Walks the three-by-three scenario over a ten item list end to end.
func TestScenario_ThreeByThreeOverTen(t *testing.T) {
	const length = 10

	c, err := New(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Visible())
	assert.Equal(t, 7, c.Remaining(length))

	c.RevealMore()
	assert.Equal(t, 6, c.Visible())
	assert.Equal(t, 4, c.Remaining(length))

	c.RevealMore()
	assert.Equal(t, 9, c.Visible())
	assert.Equal(t, 1, c.Remaining(length))

	c.RevealMore()
	assert.Equal(t, 12, c.Visible())
	assert.Equal(t, 0, c.Remaining(length))
	assert.Equal(t, length, c.Clamp(length))

	c.Reset()
	assert.Equal(t, 3, c.Visible())
	assert.Equal(t, 7, c.Remaining(length))
}
