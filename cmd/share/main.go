// share copies a share link for one photo of the gallery.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"k8s.io/klog/v2"

	"github.com/tstromberg/vattenfall/pkg/clip"
	"github.com/tstromberg/vattenfall/pkg/lightbox"
	"github.com/tstromberg/vattenfall/pkg/page"
	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

var (
	configPath = flag.String("config", "", "Path to a config file (default: ./vattenfall.yaml if present)")
	manifest   = flag.String("manifest", "", "Location of photos.json: a local path or an http(s) URL")
	baseURL    = flag.String("base-url", "", "Public URL of the gallery page")
	photo      = flag.Int("photo", -1, "Global index of the photo to share")
	link       = flag.String("url", "", "Existing gallery link to share, such as https://example.com/gallery/?photo=3")
	tmux       = flag.Bool("tmux", os.Getenv("TMUX") != "", "wrap the terminal copy sequence for tmux")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := vattenfall.LoadConfig(*configPath)
	if err != nil {
		klog.Exitf("config: %v", err)
	}
	if *manifest != "" {
		c.Manifest = *manifest
	}
	if *baseURL != "" {
		c.BaseURL = *baseURL
	}

	target := *link
	if target == "" {
		if c.BaseURL == "" || *photo < 0 {
			klog.Exitf("either --url, or --base-url (or base_url in config) with --photo, is required")
		}
		target = c.BaseURL
	}

	addr, err := lightbox.NewAddress(target)
	if err != nil {
		klog.Exitf("bad link: %v", err)
	}
	if _, ok := lightbox.PhotoParam(addr.Location()); !ok && *link != "" {
		klog.Exitf("%s does not name a photo", target)
	}

	// Nothing here waits on the settle timers, so the clock never advances.
	sess := page.New(vattenfall.NewSource(c.Manifest), addr, page.Options{
		Clock:     clock.NewMock(),
		Width:     c.DefaultWidth,
		Copyright: c.Copyright,
		Clipboard: clip.System{},
		Fallback:  clip.Terminal{Out: os.Stderr, Tmux: *tmux},
	})

	ctx := context.Background()
	if err := sess.Load(ctx); err != nil {
		klog.Exitf("load: %v", err)
	}
	if *link == "" {
		if err := sess.Adapter.Click(*photo); err != nil {
			klog.Exitf("photo %d: %v", *photo, err)
		}
	}

	if sess.Adapter.Current() < 0 {
		klog.Exitf("no photo at %s", target)
	}

	// Share reports success or failure as a toast, printed by the console notifier.
	out, err := sess.Adapter.Share(ctx)
	if t, ok := sess.Toasts.Current(); ok {
		clip.Console{}.Notify(t.Message, t.Error)
	}
	fmt.Println(out)
	if err != nil {
		os.Exit(1)
	}
}
