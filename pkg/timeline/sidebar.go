package timeline

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Visibility is the sidebar display state.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

// IsShown reports whether the sidebar is on screen.
func (v Visibility) IsShown() bool {
	return v == Shown
}

func (v Visibility) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

var (
	// HideDelay applies once the pointer leaves both the sidebar and its hover zone.
	HideDelay = 300 * time.Millisecond
	// TouchHideDelay applies after tapping a timeline entry.
	TouchHideDelay = 1500 * time.Millisecond
)

// Sidebar tracks whether the timeline is shown.
type Sidebar struct {
	mu       sync.Mutex
	clk      clock.Clock
	state    Visibility
	touch    bool
	pending  *clock.Timer
	onChange func(Visibility)
}

// NewSidebar returns a hidden sidebar. onChange may be nil.
func NewSidebar(clk clock.Clock, onChange func(Visibility)) *Sidebar {
	return &Sidebar{clk: clk, onChange: onChange}
}

// State returns the current visibility.
func (b *Sidebar) State() Visibility {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// PointerEnter handles the pointer entering the hover zone or the sidebar.
func (b *Sidebar) PointerEnter() {
	b.show()
}

// PointerLeave handles the pointer leaving the hover zone or the sidebar.
func (b *Sidebar) PointerLeave() {
	b.mu.Lock()
	touch := b.touch
	b.mu.Unlock()
	if touch {
		return
	}
	b.hideAfter(HideDelay)
}

// TouchStart handles a touch on the hover zone or the sidebar.
func (b *Sidebar) TouchStart() {
	b.mu.Lock()
	b.touch = true
	b.mu.Unlock()
	b.show()
}

// EntryTap handles a tap on a year or month entry. Touch interaction keeps the
// sidebar up a little longer so the jump is visible.
func (b *Sidebar) EntryTap() {
	b.mu.Lock()
	touch := b.touch
	b.mu.Unlock()
	if !touch {
		return
	}
	b.show()
	b.hideAfter(TouchHideDelay)
}

// OutsideTap handles a tap anywhere on the page. Taps inside the lightbox, the
// sidebar or the hover zone are ignored; others hide immediately.
func (b *Sidebar) OutsideTap(inLightbox, inSidebar bool) {
	if inLightbox || inSidebar {
		return
	}

	b.mu.Lock()
	if !b.touch {
		b.mu.Unlock()
		return
	}
	b.cancelLocked()
	b.touch = false
	changed := b.setLocked(Hidden)
	b.mu.Unlock()
	b.notify(changed, Hidden)
}

func (b *Sidebar) show() {
	b.mu.Lock()
	b.cancelLocked()
	changed := b.setLocked(Shown)
	b.mu.Unlock()
	b.notify(changed, Shown)
}

func (b *Sidebar) hideAfter(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()

	var t *clock.Timer
	t = b.clk.AfterFunc(d, func() {
		b.mu.Lock()
		if b.pending != t {
			b.mu.Unlock()
			return
		}
		b.pending = nil
		b.touch = false
		changed := b.setLocked(Hidden)
		b.mu.Unlock()
		b.notify(changed, Hidden)
	})
	b.pending = t
}

func (b *Sidebar) cancelLocked() {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}

func (b *Sidebar) setLocked(v Visibility) bool {
	if b.state == v {
		return false
	}
	b.state = v
	return true
}

func (b *Sidebar) notify(changed bool, v Visibility) {
	if changed && b.onChange != nil {
		b.onChange(v)
	}
}
