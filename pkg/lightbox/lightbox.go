// Package lightbox binds gallery cards to a lightbox and keeps the page
// address in sync with the photo on screen.
package lightbox

import (
	"context"
	"net/url"

	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

// Handlers are the lightbox callbacks the adapter listens to.
type Handlers struct {
	// Change fires when the current slide changes. from is -1 on the first change after Open.
	Change func(from, to int)
	// Reveal fires once slide i is fully shown.
	Reveal func(i int)
	// Destroy fires when the lightbox closes.
	Destroy func()
}

// Lightbox is the slideshow component the adapter drives.
type Lightbox interface {
	Open(items []vattenfall.Item, start int, h Handlers) error
	IsOpen() bool
	JumpTo(i int) error
	Current() int
	Destroy()
}

// History is the page address, rewritten in place without new history entries.
type History interface {
	Location() *url.URL
	Replace(u *url.URL)
}

// Clipboard copies text for the share action.
type Clipboard interface {
	WriteText(ctx context.Context, s string) error
}

// Notifier shows a transient message to the viewer.
type Notifier interface {
	Notify(msg string, isError bool)
}
