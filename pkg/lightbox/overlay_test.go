package lightbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlay(t *testing.T) {
	var changes [][2]int
	var reveals []int
	destroyed := false
	h := Handlers{
		Change:  func(from, to int) { changes = append(changes, [2]int{from, to}) },
		Reveal:  func(i int) { reveals = append(reveals, i) },
		Destroy: func() { destroyed = true },
	}

	o := &Overlay{}
	assert.Equal(t, -1, o.Current())
	assert.ErrorIs(t, o.JumpTo(1), ErrNotOpen)
	assert.ErrorIs(t, o.Open(testItems(3), 3, h), ErrOutOfRange)

	require.NoError(t, o.Open(testItems(3), 1, h))
	assert.True(t, o.IsOpen())
	require.NoError(t, o.JumpTo(2))
	assert.ErrorIs(t, o.JumpTo(5), ErrOutOfRange)
	assert.Equal(t, 2, o.Current())

	o.Destroy()
	o.Destroy()
	assert.False(t, o.IsOpen())
	assert.True(t, destroyed)
	assert.Equal(t, [][2]int{{-1, 1}, {1, 2}}, changes)
	assert.Equal(t, []int{1, 2}, reveals)
}
