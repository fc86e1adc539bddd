package lightbox

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNotNumber means the photo parameter is not an integer.
	ErrNotNumber = errors.New("not a number")
	// ErrNegative means the photo parameter is below zero.
	ErrNegative = errors.New("negative index")
	// ErrOutOfRange means the photo parameter is past the last photo.
	ErrOutOfRange = errors.New("index out of range")
	// ErrNotReady means there are no gallery items to open yet.
	ErrNotReady = errors.New("gallery items not ready")
	// ErrNotOpen means the lightbox is closed.
	ErrNotOpen = errors.New("lightbox not open")
	// ErrNoClipboard means neither clipboard could take the link.
	ErrNoClipboard = errors.New("no clipboard available")
)

var photoRe = regexp.MustCompile(`[?&]photo=(\d+)`)

// NormalizeURL appends a trailing slash to the path when a query is present,
// matching the server's redirect. It reports whether anything changed.
func NormalizeURL(u *url.URL) (*url.URL, bool) {
	if u == nil || (u.RawQuery == "" && !u.ForceQuery) || strings.HasSuffix(u.Path, "/") {
		return u, false
	}
	n := *u
	n.Path += "/"
	n.RawPath = ""
	return &n, true
}

// PhotoParam returns the raw photo parameter. The regular expression catches
// queries the parser misses, such as one mangled by a redirect.
func PhotoParam(u *url.URL) (string, bool) {
	if u == nil {
		return "", false
	}
	if p := u.Query().Get("photo"); p != "" {
		return p, true
	}
	if m := photoRe.FindStringSubmatch(u.String()); m != nil {
		return m[1], true
	}
	return "", false
}

// HasShare reports whether the address came from a share link.
func HasShare(u *url.URL) bool {
	return u != nil && u.Query().Has("share")
}

// ParseIndex validates a photo parameter against a gallery of n items.
func ParseIndex(raw string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrNotNumber
	}
	if i < 0 {
		return i, ErrNegative
	}
	if n == 0 {
		return i, ErrNotReady
	}
	if i >= n {
		return i, ErrOutOfRange
	}
	return i, nil
}

// PhotoURL returns u pointed at photo i, keeping the trailing slash and optionally the share flag.
func PhotoURL(u *url.URL, i int, share bool) *url.URL {
	n := url.URL{}
	if u != nil {
		n = *u
	}
	if !strings.HasSuffix(n.Path, "/") {
		n.Path += "/"
	}
	n.RawPath = ""
	n.Fragment = ""
	n.RawFragment = ""
	n.ForceQuery = false
	n.RawQuery = "photo=" + strconv.Itoa(i)
	if share {
		n.RawQuery += "&share"
	}
	return &n
}

// BaseURL returns u without query or fragment.
func BaseURL(u *url.URL) *url.URL {
	n := url.URL{}
	if u != nil {
		n = *u
	}
	n.RawQuery = ""
	n.ForceQuery = false
	n.Fragment = ""
	n.RawFragment = ""
	return &n
}
