// Package server serves the gallery page, rendering deep-linked photos server-side.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"
	"k8s.io/klog/v2"

	"github.com/tstromberg/vattenfall/pkg/lightbox"
	"github.com/tstromberg/vattenfall/pkg/page"
	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

// ViewportHint is the client hint carrying the viewport width in CSS pixels.
const ViewportHint = "Sec-CH-Viewport-Width"

// MobileHint is the client hint reporting a touch-first device.
const MobileHint = "Sec-CH-UA-Mobile"

// Server is a server for the gallery page.
type Server struct {
	c      *vattenfall.Config
	src    *vattenfall.Source
	prefix string
}

// New creates a new server. The gallery is mounted at the path of c.BaseURL, or "/".
func New(c *vattenfall.Config, src *vattenfall.Source) *Server {
	prefix := "/"
	if c.BaseURL != "" {
		if u, err := url.Parse(c.BaseURL); err == nil && u.Path != "" {
			prefix = u.Path
		} else if err != nil {
			klog.Warningf("ignoring base_url %q: %v", c.BaseURL, err)
		}
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Server{c: c, src: src, prefix: prefix}
}

// Update swaps in a freshly loaded manifest.
func (s *Server) Update(as []*vattenfall.Album) {
	klog.Infof("serving %d albums", len(as))
	s.src.Set(as)
}

// Handler returns the routes for the gallery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.prefix, s.GalleryHandler())
	if p := strings.TrimSuffix(s.prefix, "/"); p != "" {
		mux.HandleFunc(p, s.GalleryHandler())
	}
	mux.HandleFunc(s.prefix+"photos.json", s.ManifestHandler())
	if s.c.OutDir != "" {
		assets := http.FileServer(http.Dir(filepath.Join(s.c.OutDir, "_")))
		mux.Handle(s.prefix+"_/", http.StripPrefix(s.prefix+"_/", assets))
	}
	return mux
}

// GalleryHandler renders the gallery, with a lightbox overlay when ?photo= is set.
func (s *Server) GalleryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path+"/" == s.prefix {
			// keep the query across the redirect so deep links survive
			u := *r.URL
			u.Path += "/"
			klog.V(1).Infof("redirecting %s to %s", r.URL, u.RequestURI())
			http.Redirect(w, r, u.RequestURI(), http.StatusPermanentRedirect)
			return
		}
		if r.URL.Path != s.prefix {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Accept-CH", ViewportHint+", "+MobileHint)
		w.Header().Add("Vary", ViewportHint)
		w.Header().Add("Vary", MobileHint)

		addr, err := lightbox.NewAddress(s.location(r).String())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Time stands still for a rendered request: the overlay opens synchronously,
		// so no settle or debounce timer needs to fire.
		sess := page.New(s.src, addr, page.Options{
			Clock:     clock.NewMock(),
			Width:     s.width(r),
			Touch:     r.Header.Get(MobileHint) == "?1",
			Copyright: s.c.Copyright,
		})

		status := http.StatusOK
		if err := sess.Load(r.Context()); err != nil {
			klog.Errorf("load for %s: %v", r.URL, err)
			if sess.Err() != nil {
				status = http.StatusBadGateway
			}
		}
		var buf bytes.Buffer
		if err := sess.Render(&buf, s.c); err != nil {
			klog.Errorf("render: %v", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if _, err := w.Write(buf.Bytes()); err != nil {
			klog.Warningf("write: %v", err)
		}
	}
}

// ManifestHandler serves the loaded manifest as JSON.
func (s *Server) ManifestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		as, err := s.src.Albums(r.Context())
		if err != nil {
			klog.Errorf("manifest: %v", err)
			http.Error(w, vattenfall.LoadError, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(as); err != nil {
			klog.Warningf("encode manifest: %v", err)
		}
	}
}

// width returns the viewport width hinted by the client, or the configured default.
func (s *Server) width(r *http.Request) int {
	if h := r.Header.Get(ViewportHint); h != "" {
		if n, err := strconv.ParseFloat(h, 64); err == nil && n > 0 {
			return int(n)
		}
		klog.V(1).Infof("ignoring %s: %q", ViewportHint, h)
	}
	return s.c.DefaultWidth
}

// location reconstructs the absolute address the browser shows.
func (s *Server) location(r *http.Request) *url.URL {
	u := url.URL{Path: r.URL.Path, RawQuery: r.URL.RawQuery}
	if s.c.BaseURL != "" {
		if b, err := url.Parse(s.c.BaseURL); err == nil && b.Host != "" {
			u.Scheme = b.Scheme
			u.Host = b.Host
			return &u
		}
	}

	u.Scheme = "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	u.Host = r.Host
	return &u
}
