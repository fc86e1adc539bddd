// Package page holds the state of one gallery page view: the loaded gallery,
// its timeline sidebar and scroll-spy, reflow tracking and the lightbox.
package page

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/benbjohnson/clock"
	"k8s.io/klog/v2"

	"github.com/tstromberg/vattenfall/pkg/lightbox"
	"github.com/tstromberg/vattenfall/pkg/timeline"
	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

// Options configures a Session.
type Options struct {
	// Clock drives the debounce and settle timers. Defaults to the wall clock.
	Clock clock.Clock
	// Box defaults to a lightbox.Overlay.
	Box lightbox.Lightbox
	// Touch selects orientation-driven reflow and tap-driven sidebar behaviour.
	Touch bool
	// Width is the viewport width used for the first layout.
	Width     int
	Copyright string
	Clipboard lightbox.Clipboard
	Fallback  lightbox.Clipboard
}

// Session is one page view.
type Session struct {
	src  *vattenfall.Source
	hist lightbox.History
	o    Options

	Reflow  *vattenfall.Reflow
	Sidebar *timeline.Sidebar
	Spy     *timeline.Spy
	Adapter *lightbox.Adapter
	Toasts  *lightbox.Toaster

	mu      sync.Mutex
	gallery *vattenfall.Gallery
	err     error
	builds  int
}

// New returns a Session reading from src, with hist as the page address.
func New(src *vattenfall.Source, hist lightbox.History, o Options) *Session {
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	if o.Box == nil {
		o.Box = &lightbox.Overlay{}
	}

	s := &Session{src: src, hist: hist, o: o}
	s.Toasts = lightbox.NewToaster(o.Clock)
	s.Reflow = vattenfall.NewReflow(o.Clock, o.Touch, s.rebuild)
	s.Sidebar = timeline.NewSidebar(o.Clock, func(v timeline.Visibility) {
		klog.V(2).Infof("timeline sidebar %s", v)
	})
	s.Spy = timeline.NewSpy(func(h timeline.Highlight) {
		klog.V(2).Infof("timeline highlight: year=%s month=%s", h.Year, h.Month)
	})
	s.Adapter = lightbox.New(o.Box, hist, lightbox.Options{
		Clock:     o.Clock,
		Copyright: o.Copyright,
		Clipboard: o.Clipboard,
		Fallback:  o.Fallback,
		Notifier:  s.Toasts,
	})
	return s
}

// Load fetches the manifest, builds the gallery and opens any deep-linked photo.
func (s *Session) Load(ctx context.Context) error {
	as, err := s.src.Albums(ctx)
	if err != nil {
		klog.Errorf("failed to load photos: %v", err)
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return fmt.Errorf("load: %w", err)
	}

	cols := s.Reflow.Columns()
	if cols == 0 {
		cols = vattenfall.ColumnCount(s.o.Width)
	}
	s.build(as, cols)
	s.Reflow.Loaded(cols)

	if err := s.Adapter.OpenFromURL(); err != nil {
		return err
	}
	s.reveal()
	return nil
}

// reveal highlights the timeline month of the open photo, as scrolling to it would.
func (s *Session) reveal() {
	i := s.Adapter.Current()
	g := s.Gallery()
	if i < 0 || g == nil || i >= len(g.Cards) {
		return
	}
	c := g.Cards[i]
	s.Spy.Activate(timeline.SectionID(c.Year, c.Month))
}

func (s *Session) build(as []*vattenfall.Album, cols int) {
	g := vattenfall.Build(as, cols)

	s.mu.Lock()
	s.gallery = g
	s.err = nil
	s.builds++
	s.mu.Unlock()

	s.Adapter.SetItems(g.Items)
}

// rebuild lays the cached manifest out again at a new column count.
func (s *Session) rebuild(cols int) {
	as, err := s.src.Albums(context.Background())
	if err != nil {
		klog.Errorf("rebuild at %d columns: %v", cols, err)
		return
	}
	s.build(as, cols)
}

// Gallery returns the most recent build, or nil.
func (s *Session) Gallery() *vattenfall.Gallery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gallery
}

// Err returns the load failure, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Builds returns how many times the gallery was laid out.
func (s *Session) Builds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds
}

// Resize forwards a viewport resize.
func (s *Session) Resize(width int) {
	s.Reflow.Resize(width)
}

// OrientationChange forwards a device rotation.
func (s *Session) OrientationChange(width int) {
	s.Reflow.OrientationChange(width)
}

// Scroll updates the timeline highlight from anchor positions.
func (s *Session) Scroll(anchors []timeline.Anchor, viewportHeight float64) timeline.Highlight {
	return s.Spy.Observe(anchors, viewportHeight)
}

// Navigate follows a timeline link, returning the index of the first card under it.
func (s *Session) Navigate(id string) (int, bool) {
	t, ok := timeline.ParseTarget(id)
	if !ok {
		klog.Warningf("unknown timeline target %q", id)
		return 0, false
	}

	g := s.Gallery()
	if g == nil {
		return 0, false
	}

	first := -1
	if t.IsMonth() {
		if i, ok := g.Index[timeline.Key(t.Year, t.Month)]; ok {
			first = i
		}
	} else {
		for _, y := range g.Timeline {
			if y.Year == t.Year && y.Count > 0 {
				first = y.First
				break
			}
		}
	}
	if first < 0 {
		return 0, false
	}

	s.Sidebar.EntryTap()
	s.Spy.Activate(id)
	return first, true
}

// Slide describes the open lightbox slide for rendering, or nil when closed.
func (s *Session) Slide() *vattenfall.Slide {
	i := s.Adapter.Current()
	g := s.Gallery()
	if i < 0 || g == nil || i >= len(g.Items) {
		return nil
	}

	loc := s.hist.Location()
	share := lightbox.HasShare(loc)
	sl := &vattenfall.Slide{
		Index: i,
		Total: len(g.Items),
		Item:  g.Items[i],
		Panel: s.Adapter.Panel(),
		Close: lightbox.BaseURL(loc).RequestURI(),
		Share: lightbox.PhotoURL(loc, i, true).String(),
	}
	if i > 0 {
		sl.Prev = lightbox.PhotoURL(loc, i-1, share).RequestURI()
	}
	if i < len(g.Items)-1 {
		sl.Next = lightbox.PhotoURL(loc, i+1, share).RequestURI()
	}
	return sl
}

// Render writes the page as it currently stands.
func (s *Session) Render(w io.Writer, c *vattenfall.Config) error {
	if err := s.Err(); err != nil {
		return vattenfall.RenderError(w, c)
	}

	return vattenfall.RenderPage(w, &vattenfall.PageData{
		Collection:  c.Collection,
		Description: c.Description,
		Base:        lightbox.BaseURL(s.hist.Location()).Path,
		Gallery:     s.Gallery(),
		Open:        s.Slide(),
		Visibility:  s.Sidebar.State(),
		Highlight:   s.Spy.Active(),
	})
}
