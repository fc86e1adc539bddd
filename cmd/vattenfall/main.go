package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/klog/v2"

	"github.com/fsnotify/fsnotify"
	"github.com/tstromberg/vattenfall/pkg/server"
	"github.com/tstromberg/vattenfall/pkg/vattenfall"
)

var (
	configPath  = flag.String("config", "", "Path to a config file (default: ./vattenfall.yaml if present)")
	manifest    = flag.String("manifest", "", "Location of photos.json: a local path or an http(s) URL")
	outDir      = flag.String("out", "", "Location of output directory")
	assetsDir   = flag.String("assets", "", "Directory of extra assets to copy into <out>/_")
	title       = flag.String("title", "", "Title of photo collection")
	description = flag.String("description", "", "description of photo collection")
	listen      = flag.Bool("listen", false, "serve content via HTTP")
	addr        = flag.String("addr", "", "host:port to bind to in listen mode")
	watchFlag   = flag.Bool("watch", false, "watch the manifest for changes and rebuild")
	summary     = flag.Bool("summary", false, "print the timeline as a table")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := vattenfall.LoadConfig(*configPath)
	if err != nil {
		klog.Exitf("config: %v", err)
	}
	applyFlags(c)

	if c.OutDir == "" && !*listen && !*summary {
		klog.Exitf("one of --out, --listen or --summary is required")
	}

	ctx := context.Background()
	src := vattenfall.NewSource(c.Manifest)
	as, err := src.Albums(ctx)
	if err != nil {
		klog.Exitf("load failed: %v", err)
	}

	if *summary {
		vattenfall.Summary(os.Stdout, vattenfall.Build(as, vattenfall.ColumnCount(c.DefaultWidth)))
	}

	if err := build(c, as); err != nil {
		klog.Exitf("render failed: %v", err)
	}

	var srv *server.Server
	if *listen {
		srv = server.New(c, src)
	}

	var wg sync.WaitGroup
	if *watchFlag {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watch(ctx, c, src, srv); err != nil {
				klog.Errorf("watch: %v", err)
			}
		}()
	}

	if srv != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serve(srv, c.Addr)
		}()
	}

	wg.Wait()
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(c *vattenfall.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "manifest":
			c.Manifest = *manifest
		case "out":
			c.OutDir = *outDir
		case "assets":
			c.AssetsDir = *assetsDir
		case "title":
			c.Collection = *title
		case "description":
			c.Description = *description
		case "addr":
			c.Addr = *addr
		}
	})
}

// build writes the static site when an output directory is configured.
func build(c *vattenfall.Config, as []*vattenfall.Album) error {
	if c.OutDir == "" {
		return nil
	}
	return vattenfall.Render(c, vattenfall.Build(as, vattenfall.ColumnCount(c.DefaultWidth)))
}

// serve serves the gallery via HTTP
func serve(srv *server.Server, addr string) {
	klog.Infof("Listening on %s...", addr)
	err := http.ListenAndServe(addr, srv.Handler())
	if err != nil {
		klog.Exitf("listen failed: %v", err)
	}
}

// watch watches the manifest file for changes and rebuilds
func watch(ctx context.Context, c *vattenfall.Config, src *vattenfall.Source, srv *server.Server) error {
	if vattenfall.IsRemote(c.Manifest) {
		klog.Warningf("cannot watch remote manifest %s", c.Manifest)
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	path, err := filepath.Abs(c.Manifest)
	if err != nil {
		return err
	}

	// Editors often replace files rather than write them, so watch the directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	klog.Infof("watching %s ...", path)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			klog.V(1).Infof("event: %s", event)
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			as, err := vattenfall.Fetch(ctx, c.Manifest)
			if err != nil {
				klog.Errorf("reload failed, keeping previous manifest: %v", err)
				continue
			}
			if err := build(c, as); err != nil {
				klog.Errorf("render failed: %v", err)
				continue
			}
			if srv != nil {
				srv.Update(as)
			} else {
				src.Set(as)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
