package lightbox

import (
	"fmt"
	"sync"

	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

// Overlay is a Lightbox that shows slides immediately, as a server-rendered page does.
// Callbacks run synchronously, after the overlay's own lock is released.
type Overlay struct {
	mu      sync.Mutex
	items   []vattenfall.Item
	current int
	open    bool
	h       Handlers
}

// Open shows items starting at start.
func (o *Overlay) Open(items []vattenfall.Item, start int, h Handlers) error {
	if start < 0 || start >= len(items) {
		return fmt.Errorf("open at %d of %d: %w", start, len(items), ErrOutOfRange)
	}

	o.mu.Lock()
	o.items = items
	o.current = start
	o.open = true
	o.h = h
	o.mu.Unlock()

	if h.Change != nil {
		h.Change(-1, start)
	}
	if h.Reveal != nil {
		h.Reveal(start)
	}
	return nil
}

// IsOpen reports whether a slide is showing.
func (o *Overlay) IsOpen() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.open
}

// JumpTo moves to slide i.
func (o *Overlay) JumpTo(i int) error {
	o.mu.Lock()
	if !o.open {
		o.mu.Unlock()
		return ErrNotOpen
	}
	if i < 0 || i >= len(o.items) {
		o.mu.Unlock()
		return fmt.Errorf("jump to %d of %d: %w", i, len(o.items), ErrOutOfRange)
	}
	from := o.current
	o.current = i
	h := o.h
	o.mu.Unlock()

	if from != i && h.Change != nil {
		h.Change(from, i)
	}
	if h.Reveal != nil {
		h.Reveal(i)
	}
	return nil
}

// Current returns the slide index, or -1 when closed.
func (o *Overlay) Current() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.open {
		return -1
	}
	return o.current
}

// Destroy closes the overlay.
func (o *Overlay) Destroy() {
	o.mu.Lock()
	if !o.open {
		o.mu.Unlock()
		return
	}
	o.open = false
	h := o.h
	o.h = Handlers{}
	o.mu.Unlock()

	if h.Destroy != nil {
		h.Destroy()
	}
}
