package lightbox

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{in: "https://x.test/gallery?photo=3", want: "https://x.test/gallery/?photo=3", changed: true},
		{in: "https://x.test/gallery?photo=3&share#top", want: "https://x.test/gallery/?photo=3&share#top", changed: true},
		{in: "https://x.test/gallery/?photo=3", want: "https://x.test/gallery/?photo=3"},
		{in: "https://x.test/gallery", want: "https://x.test/gallery"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, changed := NormalizeURL(mustParse(t, tc.in))
			assert.Equal(t, tc.changed, changed)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestPhotoParam(t *testing.T) {
	p, ok := PhotoParam(mustParse(t, "https://x.test/g/?photo=12&share"))
	assert.True(t, ok)
	assert.Equal(t, "12", p)

	// a redirect that pushed the query into the fragment
	p, ok = PhotoParam(mustParse(t, "https://x.test/g/#?photo=7"))
	assert.True(t, ok)
	assert.Equal(t, "7", p)

	_, ok = PhotoParam(mustParse(t, "https://x.test/g/"))
	assert.False(t, ok)
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		raw  string
		n    int
		want int
		err  error
	}{
		{raw: "3", n: 10, want: 3},
		{raw: "0", n: 1, want: 0},
		{raw: "abc", n: 10, err: ErrNotNumber},
		{raw: "3abc", n: 10, err: ErrNotNumber},
		{raw: "-1", n: 10, err: ErrNegative},
		{raw: "10", n: 10, err: ErrOutOfRange},
		{raw: "2", n: 0, err: ErrNotReady},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseIndex(tc.raw, tc.n)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPhotoURL(t *testing.T) {
	u := mustParse(t, "https://x.test/gallery?photo=1#frag")
	assert.Equal(t, "https://x.test/gallery/?photo=4", PhotoURL(u, 4, false).String())
	assert.Equal(t, "https://x.test/gallery/?photo=4&share", PhotoURL(u, 4, true).String())
	assert.Equal(t, "https://x.test/gallery?photo=1#frag", u.String())

	assert.Equal(t, "https://x.test/gallery/", BaseURL(mustParse(t, "https://x.test/gallery/?photo=2&share")).String())
	assert.True(t, HasShare(mustParse(t, "/?photo=2&share")))
	assert.False(t, HasShare(mustParse(t, "/?photo=2")))
}
