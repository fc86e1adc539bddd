package lightbox

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"k8s.io/klog/v2"
)

// ToastDuration is how long a notification stays up.
var ToastDuration = 3 * time.Second

// Toast is a visible notification.
type Toast struct {
	Message string
	Error   bool
}

// Toaster is a Notifier that shows one toast at a time. A new toast replaces the old one.
type Toaster struct {
	mu    sync.Mutex
	clk   clock.Clock
	shown *Toast
	timer *clock.Timer
}

// NewToaster returns a Toaster that hides toasts on clk.
func NewToaster(clk clock.Clock) *Toaster {
	return &Toaster{clk: clk}
}

// Notify shows msg for ToastDuration.
func (t *Toaster) Notify(msg string, isError bool) {
	if isError {
		klog.Warningf("toast: %s", msg)
	} else {
		klog.V(1).Infof("toast: %s", msg)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	shown := &Toast{Message: msg, Error: isError}
	t.shown = shown
	t.timer = t.clk.AfterFunc(ToastDuration, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.shown == shown {
			t.shown = nil
			t.timer = nil
		}
	})
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shown == nil {
		return Toast{}, false
	}
	return *t.shown, true
}
