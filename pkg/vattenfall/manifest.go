package vattenfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// Photo is a single manifest entry.
type Photo struct {
	Filename  string         `json:"filename"`
	Path      string         `json:"path"`
	Thumbnail string         `json:"thumbnail"`
	Alt       string         `json:"alt"`
	Month     string         `json:"month"`
	Date      string         `json:"date,omitempty"`
	Width     int            `json:"width,omitempty"`
	Height    int            `json:"height,omitempty"`
	Exif      map[string]any `json:"exif,omitempty"`
}

// Album is every photo from one calendar year, in manifest order.
type Album struct {
	Year   int      `json:"year"`
	Photos []*Photo `json:"photos"`
}

// UnmarshalJSON accepts the year as either a number or a string.
func (a *Album) UnmarshalJSON(b []byte) error {
	var raw struct {
		Year   json.RawMessage `json:"year"`
		Photos []*Photo        `json:"photos"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	a.Photos = raw.Photos
	a.Year = 0
	y := strings.Trim(string(raw.Year), `" `)
	if y == "" || y == "null" {
		return nil
	}
	n, err := strconv.Atoi(y)
	if err != nil {
		klog.Warningf("album year %q is not a number", y)
		return nil
	}
	a.Year = n
	return nil
}

// ParseManifest decodes a manifest document.
func ParseManifest(bs []byte) ([]*Album, error) {
	var as []*Album
	if err := json.NewDecoder(bytes.NewReader(bs)).Decode(&as); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// Drop null entries rather than carry nil pointers through rendering.
	out := as[:0]
	for _, a := range as {
		if a == nil {
			continue
		}
		ps := a.Photos[:0]
		for _, p := range a.Photos {
			if p != nil {
				ps = append(ps, p)
			}
		}
		a.Photos = ps
		out = append(out, a)
	}
	return out, nil
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch retrieves the manifest from an http(s) URL or a local path.
func Fetch(ctx context.Context, src string) ([]*Album, error) {
	klog.V(1).Infof("fetching manifest from %s", src)

	var bs []byte
	var err error
	if IsRemote(src) {
		bs, err = fetchURL(ctx, src)
	} else {
		bs, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}

	as, err := ParseManifest(bs)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}

	klog.Infof("loaded %d albums from %s", len(as), src)
	return as, nil
}

func fetchURL(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Source fetches a manifest once and hands out the cached copy until Reset.
type Source struct {
	src   string
	fetch func(context.Context, string) ([]*Album, error)

	mu     sync.Mutex
	albums []*Album
}

// NewSource returns a caching manifest source.
func NewSource(src string) *Source {
	return &Source{src: src, fetch: Fetch}
}

// NewStaticSource returns a Source that always serves albums.
func NewStaticSource(albums []*Album) *Source {
	s := &Source{albums: albums}
	s.fetch = func(context.Context, string) ([]*Album, error) { return s.albums, nil }
	return s
}

// Albums returns the cached manifest, fetching it on first use.
func (s *Source) Albums(ctx context.Context) ([]*Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.albums != nil {
		return s.albums, nil
	}

	as, err := s.fetch(ctx, s.src)
	if err != nil {
		return nil, err
	}
	s.albums = as
	return as, nil
}

// Reset forgets the cached manifest so the next call fetches again.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src != "" {
		s.albums = nil
	}
}

// Set replaces the cached manifest.
func (s *Source) Set(as []*Album) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums = as
}
