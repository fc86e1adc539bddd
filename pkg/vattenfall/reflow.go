package vattenfall

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"k8s.io/klog/v2"
)

// ReflowDelay debounces viewport changes.
var ReflowDelay = 300 * time.Millisecond

// Reflow rebuilds the gallery when a viewport change crosses a column tier.
// Touch devices only react to orientation changes, since resize fires
// whenever the on-screen keyboard or browser chrome moves.
type Reflow struct {
	mu      sync.Mutex
	clk     clock.Clock
	touch   bool
	current int
	pending *clock.Timer
	rebuild func(columns int)
}

// NewReflow returns a Reflow that calls rebuild with the new column count.
func NewReflow(clk clock.Clock, touch bool, rebuild func(columns int)) *Reflow {
	return &Reflow{clk: clk, touch: touch, rebuild: rebuild}
}

// Loaded records the column count of a completed render.
func (r *Reflow) Loaded(columns int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = columns
}

// Columns returns the column count of the last render, or 0 before the first.
func (r *Reflow) Columns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resize handles a generic resize event. Ignored on touch devices.
func (r *Reflow) Resize(width int) {
	if r.touch {
		return
	}
	r.schedule(width)
}

// OrientationChange handles a device rotation.
func (r *Reflow) OrientationChange(width int) {
	if !r.touch {
		return
	}
	r.schedule(width)
}

func (r *Reflow) schedule(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		r.pending.Stop()
	}
	r.pending = r.clk.AfterFunc(ReflowDelay, func() { r.check(width) })
}

func (r *Reflow) check(width int) {
	cols := ColumnCount(width)

	r.mu.Lock()
	r.pending = nil
	if r.current == 0 {
		r.current = cols
		r.mu.Unlock()
		return
	}
	if cols == r.current {
		r.mu.Unlock()
		return
	}
	klog.Infof("viewport %dpx: reflowing from %d to %d columns", width, r.current, cols)
	r.current = cols
	r.mu.Unlock()

	r.rebuild(cols)
}
