package timeline

import (
	"sync"

	"k8s.io/klog/v2"
)

// The active band is the viewport minus these fractions from the top and bottom.
const (
	BandTop    = 0.20
	BandBottom = 0.60
)

// InBand reports whether a zero-height anchor at offset top (relative to the
// viewport) falls inside the active band.
func InBand(top, viewportHeight float64) bool {
	lo := viewportHeight * BandTop
	hi := viewportHeight * (1 - BandBottom)
	return top >= lo && top <= hi
}

// Anchor is an observed scroll anchor and its position relative to the viewport.
type Anchor struct {
	ID  string
	Top float64
}

// Highlight is the set of timeline entries currently styled as active.
type Highlight struct {
	Year     string
	Month    string
	Ancestor string
}

// Role is how an entry is styled.
type Role int

const (
	Inactive Role = iota
	Active
	AncestorActive
)

// Role returns how the entry with target id should be styled.
func (h Highlight) Role(id string) Role {
	switch id {
	case "":
		return Inactive
	case h.Year, h.Month:
		return Active
	case h.Ancestor:
		return AncestorActive
	}
	return Inactive
}

// Spy highlights the timeline entry whose anchor is in view.
type Spy struct {
	mu       sync.Mutex
	active   Highlight
	onChange func(Highlight)
}

// NewSpy returns a Spy with nothing active. onChange may be nil.
func NewSpy(onChange func(Highlight)) *Spy {
	return &Spy{onChange: onChange}
}

// Active returns the current highlight.
func (s *Spy) Active() Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Observe activates every anchor inside the band, in order; the last one wins.
func (s *Spy) Observe(anchors []Anchor, viewportHeight float64) Highlight {
	for _, a := range anchors {
		if InBand(a.Top, viewportHeight) {
			s.Activate(a.ID)
		}
	}
	return s.Active()
}

// Activate resets all entries and highlights the one for id. A month also
// marks its year as an ancestor.
func (s *Spy) Activate(id string) Highlight {
	t, ok := ParseTarget(id)
	if !ok {
		klog.V(2).Infof("ignoring unknown anchor %q", id)
		return s.Active()
	}

	h := Highlight{Year: t.ID}
	if t.IsMonth() {
		h = Highlight{Month: t.ID, Ancestor: YearID(t.Year)}
	}

	s.mu.Lock()
	changed := s.active != h
	s.active = h
	s.mu.Unlock()

	if changed && s.onChange != nil {
		s.onChange(h)
	}
	return h
}
