package lightbox

import (
	"fmt"
	"net/url"
	"sync"
)

// Address is an in-memory History.
type Address struct {
	mu       sync.Mutex
	u        *url.URL
	replaced int
}

// NewAddress parses raw into an Address.
func NewAddress(raw string) (*Address, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw, err)
	}
	return &Address{u: u}, nil
}

// Location returns a copy of the current address.
func (a *Address) Location() *url.URL {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := *a.u
	return &u
}

// Replace swaps the current address.
func (a *Address) Replace(u *url.URL) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := *u
	a.u = &c
	a.replaced++
}

// Replaced returns how many times the address was rewritten.
func (a *Address) Replaced() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.replaced
}

func (a *Address) String() string {
	return a.Location().String()
}
