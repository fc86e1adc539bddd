package vattenfall

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

// rebuilds records the column counts passed to a rebuild callback.
type rebuilds struct {
	mu   sync.Mutex
	cols []int
}

func (r *rebuilds) add(cols int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cols = append(r.cols, cols)
}

func (r *rebuilds) get() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int{}, r.cols...)
}

func TestReflowCrossesTier(t *testing.T) {
	mc := clock.NewMock()
	got := &rebuilds{}
	r := NewReflow(mc, false, got.add)
	r.Loaded(5)

	r.Resize(1000)
	mc.Add(299 * time.Millisecond)
	assert.Empty(t, got.get())
	mc.Add(time.Millisecond)
	assert.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []int{3}, got.get())
	assert.Equal(t, 3, r.Columns())

	// same tier: no rebuild
	r.Resize(900)
	mc.Add(time.Second)
	assert.Never(t, func() bool { return len(got.get()) > 1 }, 50*time.Millisecond, time.Millisecond)
}

func TestReflowDebounces(t *testing.T) {
	mc := clock.NewMock()
	got := &rebuilds{}
	r := NewReflow(mc, false, got.add)
	r.Loaded(5)

	r.Resize(600)
	mc.Add(200 * time.Millisecond)
	r.Resize(1400)
	mc.Add(time.Second)
	assert.Never(t, func() bool { return len(got.get()) > 0 }, 50*time.Millisecond, time.Millisecond)
	assert.Equal(t, 5, r.Columns())
}

func TestReflowFirstObservation(t *testing.T) {
	mc := clock.NewMock()
	got := &rebuilds{}
	r := NewReflow(mc, false, got.add)

	r.Resize(600)
	mc.Add(time.Second)
	assert.Eventually(t, func() bool { return r.Columns() == 2 }, time.Second, time.Millisecond)
	assert.Empty(t, got.get())
}

func TestReflowTouch(t *testing.T) {
	mc := clock.NewMock()
	got := &rebuilds{}
	r := NewReflow(mc, true, got.add)
	r.Loaded(3)

	r.Resize(500)
	mc.Add(time.Second)
	assert.Never(t, func() bool { return len(got.get()) > 0 }, 50*time.Millisecond, time.Millisecond)

	r.OrientationChange(500)
	mc.Add(time.Second)
	assert.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []int{2}, got.get())
}

func TestReflowDesktopIgnoresOrientation(t *testing.T) {
	mc := clock.NewMock()
	got := &rebuilds{}
	r := NewReflow(mc, false, got.add)
	r.Loaded(5)

	r.OrientationChange(400)
	mc.Add(time.Second)
	assert.Never(t, func() bool { return len(got.get()) > 0 }, 50*time.Millisecond, time.Millisecond)
}
