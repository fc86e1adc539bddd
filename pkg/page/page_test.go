package page

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tstromberg/vattenfall/pkg/lightbox"
	"github.com/tstromberg/vattenfall/pkg/timeline"
	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

func albums() []*vattenfall.Album {
	mk := func(name, month string) *vattenfall.Photo {
		return &vattenfall.Photo{Filename: name + ".jpg", Path: "/p/" + name + ".jpg", Thumbnail: "/t/" + name + ".jpg", Month: month,
			Exif: map[string]any{"Model": "X100V", "Rating": 4}}
	}
	return []*vattenfall.Album{
		{Year: 2024, Photos: []*vattenfall.Photo{mk("a", "03"), mk("b", "07"), mk("c", "07")}},
		{Year: 2023, Photos: []*vattenfall.Photo{mk("d", "11"), mk("e", "02")}},
	}
}

func newSession(t *testing.T, raw string, o Options) (*Session, *clock.Mock, *lightbox.Address) {
	t.Helper()
	addr, err := lightbox.NewAddress(raw)
	require.NoError(t, err)
	mc := clock.NewMock()
	o.Clock = mc
	return New(vattenfall.NewStaticSource(albums()), addr, o), mc, addr
}

func TestLoad(t *testing.T) {
	sess, _, _ := newSession(t, "https://x.test/", Options{Width: 1400})
	require.NoError(t, sess.Load(context.Background()))

	g := sess.Gallery()
	require.NotNil(t, g)
	assert.Equal(t, 5, g.Columns)
	assert.Len(t, g.Items, 5)
	assert.Equal(t, 5, sess.Reflow.Columns())
	assert.Nil(t, sess.Slide())
}

func TestLoadDeepLink(t *testing.T) {
	sess, s, addr := newSession(t, "https://x.test/gallery?photo=3&share", Options{Width: 800, Copyright: "© me"})
	require.NoError(t, sess.Load(context.Background()))
	s.Add(lightbox.FallbackDelay)
	assert.Eventually(t, func() bool { return addr.Replaced() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, "https://x.test/gallery/?photo=3&share", addr.String())
	assert.Equal(t, timeline.Highlight{Month: "section-2023-11", Ancestor: "year-2023"}, sess.Spy.Active())

	sl := sess.Slide()
	require.NotNil(t, sl)
	assert.Equal(t, 3, sl.Index)
	assert.Equal(t, 5, sl.Total)
	assert.Equal(t, "d.jpg", sl.Item.Filename)
	assert.Equal(t, "/gallery/?photo=2&share", sl.Prev)
	assert.Equal(t, "/gallery/?photo=4&share", sl.Next)
	assert.Equal(t, "/gallery/", sl.Close)
	assert.Equal(t, "https://x.test/gallery/?photo=3&share", sl.Share)
	require.NotNil(t, sl.Panel)
	assert.Equal(t, 4, sl.Panel.Rating)

	var buf bytes.Buffer
	require.NoError(t, sess.Render(&buf, &vattenfall.Config{Collection: "Lens"}))
	assert.Contains(t, buf.String(), `class="lightbox-container`)
	assert.Contains(t, buf.String(), `href="/gallery/?photo=0"`)
	assert.Contains(t, buf.String(), `<a class="timeline-month active" href="#section-2023-11"`)
	assert.Contains(t, buf.String(), `<a class="timeline-year ancestor-active" href="#year-2023"`)
}

func TestLoadFailure(t *testing.T) {
	addr, err := lightbox.NewAddress("https://x.test/")
	require.NoError(t, err)
	src := vattenfall.NewSource("/nonexistent/photos.json")

	sess := New(src, addr, Options{Clock: clock.NewMock()})
	require.Error(t, sess.Load(context.Background()))
	assert.Error(t, sess.Err())

	var buf bytes.Buffer
	require.NoError(t, sess.Render(&buf, &vattenfall.Config{Collection: "Lens"}))
	assert.Contains(t, buf.String(), vattenfall.LoadError)
}

func TestReflowRebuilds(t *testing.T) {
	sess, s, _ := newSession(t, "https://x.test/", Options{Width: 1400})
	require.NoError(t, sess.Load(context.Background()))
	require.NoError(t, sess.Adapter.Click(2))
	assert.Equal(t, 1, sess.Builds())

	sess.Resize(1300)
	s.Add(time.Second)
	assert.Never(t, func() bool { return sess.Builds() > 1 }, 50*time.Millisecond, time.Millisecond)

	sess.Resize(500)
	s.Add(time.Second)
	assert.Eventually(t, func() bool { return sess.Builds() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, 2, sess.Gallery().Columns)

	// markers are not duplicated by the rebuild
	assert.Equal(t, []string{"section-2024-07", "year-2024"}, sess.Gallery().Cards[0].Markers)
	assert.Equal(t, 2, sess.Adapter.Current())
}

func TestTouchReflow(t *testing.T) {
	sess, s, _ := newSession(t, "https://x.test/", Options{Width: 1000, Touch: true})
	require.NoError(t, sess.Load(context.Background()))

	sess.Resize(500)
	s.Add(time.Second)
	assert.Never(t, func() bool { return sess.Builds() > 1 }, 50*time.Millisecond, time.Millisecond)

	sess.OrientationChange(500)
	s.Add(time.Second)
	assert.Eventually(t, func() bool { return sess.Builds() == 2 }, time.Second, time.Millisecond)
}

func TestNavigate(t *testing.T) {
	sess, s, _ := newSession(t, "https://x.test/", Options{Width: 1400})
	require.NoError(t, sess.Load(context.Background()))

	i, ok := sess.Navigate("section-2023-02")
	require.True(t, ok)
	assert.Equal(t, 4, i)
	h := sess.Spy.Active()
	assert.Equal(t, "section-2023-02", h.Month)
	assert.Equal(t, timeline.AncestorActive, h.Role("year-2023"))

	i, ok = sess.Navigate("year-2023")
	require.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = sess.Navigate("section-2022-01")
	assert.False(t, ok)
	_, ok = sess.Navigate("bogus")
	assert.False(t, ok)

	sess.Sidebar.TouchStart()
	_, ok = sess.Navigate("year-2024")
	require.True(t, ok)
	assert.Equal(t, timeline.Shown, sess.Sidebar.State())
	s.Add(timeline.TouchHideDelay)
	assert.Eventually(t, func() bool { return sess.Sidebar.State() == timeline.Hidden }, time.Second, time.Millisecond)
}

func TestNavigateRepeatedYear(t *testing.T) {
	addr, err := lightbox.NewAddress("https://x.test/")
	require.NoError(t, err)
	mk := func(name, month string) *vattenfall.Photo {
		return &vattenfall.Photo{Filename: name + ".jpg", Path: "/p/" + name + ".jpg", Month: month}
	}
	src := vattenfall.NewStaticSource([]*vattenfall.Album{
		{Year: 2024, Photos: []*vattenfall.Photo{mk("a", "07"), mk("b", "03")}},
		{Year: 2024, Photos: []*vattenfall.Photo{mk("c", "01")}},
	})
	sess := New(src, addr, Options{Clock: clock.NewMock(), Width: 1400})
	require.NoError(t, sess.Load(context.Background()))

	// the year link jumps to the first album carrying that year
	i, ok := sess.Navigate("year-2024")
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestRenderTimelineState(t *testing.T) {
	sess, _, _ := newSession(t, "https://x.test/", Options{Width: 1400, Touch: true})
	require.NoError(t, sess.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, sess.Render(&buf, &vattenfall.Config{Collection: "Lens"}))
	before := buf.String()
	assert.Contains(t, before, `<aside id="timeline-sidebar">`)

	sess.Sidebar.TouchStart()
	sess.Spy.Activate("section-2024-07")

	buf.Reset()
	require.NoError(t, sess.Render(&buf, &vattenfall.Config{Collection: "Lens"}))
	after := buf.String()
	assert.NotEqual(t, before, after)
	assert.Contains(t, after, `<aside id="timeline-sidebar" class="show">`)
	assert.Contains(t, after, `<a class="timeline-month active" href="#section-2024-07"`)
	assert.Contains(t, after, `<a class="timeline-year ancestor-active" href="#year-2024"`)
	assert.Contains(t, after, `<a class="timeline-year" href="#year-2023"`)
}

func TestScroll(t *testing.T) {
	sess, _, _ := newSession(t, "https://x.test/", Options{Width: 1400})
	require.NoError(t, sess.Load(context.Background()))

	h := sess.Scroll([]timeline.Anchor{
		{ID: "section-2024-07", Top: -500},
		{ID: "section-2024-03", Top: 250},
		{ID: "section-2023-11", Top: 900},
	}, 1000)
	assert.Equal(t, "section-2024-03", h.Month)
	assert.Equal(t, "year-2024", h.Ancestor)
}

type failingClipboard struct{}

func (failingClipboard) WriteText(context.Context, string) error { return errors.New("denied") }

func TestShareToast(t *testing.T) {
	sess, _, _ := newSession(t, "https://x.test/?photo=1", Options{Width: 1400, Clipboard: failingClipboard{}})
	require.NoError(t, sess.Load(context.Background()))

	_, err := sess.Adapter.Share(context.Background())
	assert.ErrorIs(t, err, lightbox.ErrNoClipboard)
	toast, ok := sess.Toasts.Current()
	require.True(t, ok)
	assert.Equal(t, lightbox.FailedMessage, toast.Message)
}
