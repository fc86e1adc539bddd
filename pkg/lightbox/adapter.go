package lightbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"k8s.io/klog/v2"

	"github.com/tstromberg/vattenfall/pkg/meta"
	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

var (
	// RetryDelay is how long a deep link waits for gallery items before its one retry.
	RetryDelay = 500 * time.Millisecond
	// SettleDelay follows the reveal of a deep-linked slide before the address is rewritten.
	SettleDelay = 100 * time.Millisecond
	// FallbackDelay ends initialization if the target slide never reports a reveal.
	FallbackDelay = 1000 * time.Millisecond
)

// Toast messages for the share action.
const (
	CopiedMessage = "Link copied to clipboard"
	FailedMessage = "Copy failed, please copy the link manually"
)

// Options configures an Adapter.
type Options struct {
	Clock     clock.Clock
	Copyright string
	// Clipboard is tried first, then Fallback.
	Clipboard Clipboard
	Fallback  Clipboard
	Notifier  Notifier
}

// Adapter connects gallery items, a Lightbox and the page address.
type Adapter struct {
	box  Lightbox
	hist History
	o    Options

	mu    sync.Mutex
	items []vattenfall.Item
	panel *meta.Panel
	// initializing suppresses address rewrites until the deep-linked slide settles.
	initializing bool
	target       int
	settle       *clock.Timer
	fallback     *clock.Timer
	retried      bool
}

// New returns an Adapter driving box and hist.
func New(box Lightbox, hist History, o Options) *Adapter {
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return &Adapter{box: box, hist: hist, o: o}
}

// SetItems replaces the gallery items, for instance after a reflow.
func (a *Adapter) SetItems(items []vattenfall.Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = items
}

func (a *Adapter) snapshot() []vattenfall.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.items
}

// Panel returns the metadata panel for the current slide, or nil.
func (a *Adapter) Panel() *meta.Panel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.panel
}

// Initializing reports whether a deep link is still settling.
func (a *Adapter) Initializing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initializing
}

// Current returns the open slide index, or -1.
func (a *Adapter) Current() int {
	if !a.box.IsOpen() {
		return -1
	}
	return a.box.Current()
}

// Click opens the lightbox at card i.
func (a *Adapter) Click(i int) error {
	items := a.snapshot()
	if i < 0 || i >= len(items) {
		return fmt.Errorf("click %d of %d: %w", i, len(items), ErrOutOfRange)
	}
	return a.show(items, i)
}

// show jumps within an open lightbox, reopening it if the jump fails.
func (a *Adapter) show(items []vattenfall.Item, i int) error {
	if a.box.IsOpen() {
		err := a.box.JumpTo(i)
		if err == nil {
			return nil
		}
		klog.Errorf("jump to %d failed, reopening: %v", i, err)
		a.box.Destroy()
	}

	if err := a.box.Open(items, i, a.handlers()); err != nil {
		return fmt.Errorf("open at %d: %w", i, err)
	}
	return nil
}

func (a *Adapter) handlers() Handlers {
	return Handlers{Change: a.onChange, Reveal: a.onReveal, Destroy: a.onDestroy}
}

func (a *Adapter) buildPanel(i int) *meta.Panel {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	it := a.items[i]
	return meta.Build(it.Exif, it.Filename, meta.Options{Copyright: a.o.Copyright})
}

func (a *Adapter) onChange(from, to int) {
	a.mu.Lock()
	if to < 0 || to >= len(a.items) {
		a.mu.Unlock()
		return
	}
	a.panel = a.buildPanel(to)
	mirror := !a.initializing && from >= 0
	a.mu.Unlock()

	if mirror {
		a.mirror(to)
	}
}

func (a *Adapter) onReveal(i int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.panel = a.buildPanel(i)
	if a.initializing && i == a.target && a.settle == nil {
		a.settle = a.o.Clock.AfterFunc(SettleDelay, func() { a.finish(i) })
	}
}

func (a *Adapter) onDestroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.panel = nil
	a.stopTimers()
	a.initializing = false
}

// stopTimers requires a.mu.
func (a *Adapter) stopTimers() {
	if a.settle != nil {
		a.settle.Stop()
		a.settle = nil
	}
	if a.fallback != nil {
		a.fallback.Stop()
		a.fallback = nil
	}
}

// finish ends initialization and writes the settled index to the address.
func (a *Adapter) finish(i int) {
	a.mu.Lock()
	if !a.initializing {
		a.mu.Unlock()
		return
	}
	a.initializing = false
	a.stopTimers()
	a.mu.Unlock()

	a.mirror(i)
}

// mirror rewrites the address to photo i, keeping any share flag.
func (a *Adapter) mirror(i int) {
	loc := a.hist.Location()
	a.hist.Replace(PhotoURL(loc, i, HasShare(loc)))
}

// normalize adds the trailing slash the server would redirect to.
func (a *Adapter) normalize() {
	if u, changed := NormalizeURL(a.hist.Location()); changed {
		klog.V(1).Infof("normalized address to %s", u)
		a.hist.Replace(u)
	}
}

// PageShow handles a page show event. Pages restored from the back/forward cache are re-normalized.
func (a *Adapter) PageShow(persisted bool) {
	if persisted {
		a.normalize()
	}
}

// OpenFromURL opens the photo named by the address, if any. Invalid indexes are
// logged and ignored. If no items are loaded yet, it retries once after RetryDelay.
func (a *Adapter) OpenFromURL() error {
	a.normalize()

	raw, ok := PhotoParam(a.hist.Location())
	if !ok {
		return nil
	}

	items := a.snapshot()
	i, err := ParseIndex(raw, len(items))
	switch {
	case errors.Is(err, ErrNotReady):
		a.mu.Lock()
		retried := a.retried
		a.retried = true
		a.mu.Unlock()
		if retried {
			klog.Warningf("gallery items still not ready, not opening photo %d", i)
			return nil
		}
		klog.Warningf("gallery items not ready yet, retrying in %s", RetryDelay)
		a.o.Clock.AfterFunc(RetryDelay, func() {
			if err := a.OpenFromURL(); err != nil {
				klog.Errorf("open from url: %v", err)
			}
		})
		return nil
	case err != nil:
		klog.Warningf("ignoring photo parameter %q: %v", raw, err)
		return nil
	}

	a.mu.Lock()
	a.retried = false
	a.mu.Unlock()

	if a.box.IsOpen() {
		a.begin(i, false)
		if err := a.box.JumpTo(i); err != nil {
			a.abort()
			return fmt.Errorf("jump to %d: %w", i, err)
		}
		a.mu.Lock()
		if a.initializing && a.settle == nil {
			a.settle = a.o.Clock.AfterFunc(SettleDelay, func() { a.finish(i) })
		}
		a.mu.Unlock()
		return nil
	}

	a.begin(i, true)
	if err := a.show(items, i); err != nil {
		a.abort()
		return err
	}
	return nil
}

// begin marks initialization toward target, arming the fallback if asked.
func (a *Adapter) begin(target int, fallback bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTimers()
	a.initializing = true
	a.target = target
	if fallback {
		a.fallback = a.o.Clock.AfterFunc(FallbackDelay, func() { a.finish(target) })
	}
}

func (a *Adapter) abort() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTimers()
	a.initializing = false
}

// ShareURL returns the absolute share link for the open slide.
func (a *Adapter) ShareURL() (string, error) {
	if !a.box.IsOpen() {
		return "", ErrNotOpen
	}
	i := a.box.Current()
	if n := len(a.snapshot()); i < 0 || i >= n {
		return "", fmt.Errorf("share %d of %d: %w", i, n, ErrOutOfRange)
	}
	return PhotoURL(a.hist.Location(), i, true).String(), nil
}

// Share copies the share link for the open slide and reports the outcome as a toast.
func (a *Adapter) Share(ctx context.Context) (string, error) {
	link, err := a.ShareURL()
	if err != nil {
		klog.Warningf("share: %v", err)
		return "", err
	}

	if err := a.copy(ctx, link); err != nil {
		klog.Errorf("copy %s: %v", link, err)
		a.notify(FailedMessage, true)
		return link, err
	}
	a.notify(CopiedMessage, false)
	return link, nil
}

func (a *Adapter) copy(ctx context.Context, s string) error {
	if a.o.Clipboard != nil {
		err := a.o.Clipboard.WriteText(ctx, s)
		if err == nil {
			return nil
		}
		klog.Warningf("clipboard write failed, trying fallback: %v", err)
	}
	if a.o.Fallback == nil {
		return ErrNoClipboard
	}
	if err := a.o.Fallback.WriteText(ctx, s); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	return nil
}

func (a *Adapter) notify(msg string, isError bool) {
	if a.o.Notifier != nil {
		a.o.Notifier.Notify(msg, isError)
	}
}
