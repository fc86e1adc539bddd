package vattenfall

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/otiai10/copy"
	"k8s.io/klog/v2"

	"github.com/tstromberg/vattenfall/pkg/meta"
	"github.com/tstromberg/vattenfall/pkg/timeline"
)

//go:embed assets/gallery.tmpl
var galleryTmpl string

//go:embed assets/style.css
var styleText string

// LoadError is shown in place of the grid when the manifest cannot be loaded.
const LoadError = "Failed to load photos."

// assetExts are the file types copied from Config.AssetsDir into <out>/_/.
var assetExts = map[string]bool{".png": true, ".css": true, ".jpg": true, ".gif": true, ".svg": true, ".ico": true, ".js": true}

// Slide is an open lightbox overlay rendered on top of the gallery.
type Slide struct {
	Index int
	Total int
	Item  Item
	Panel *meta.Panel
	Prev  string
	Next  string
	Close string
	Share string
}

// PageData is everything the gallery template needs.
type PageData struct {
	Collection  string
	Description string
	// Base is the page URL that ?photo= links are relative to.
	Base string
	// Static pages link cards straight to the full image.
	Static     bool
	Gallery    *Gallery
	Open       *Slide
	Err        string
	Visibility timeline.Visibility
	Highlight  timeline.Highlight
}

var tmpl = template.Must(template.New("gallery").Funcs(tmplFunctions()).Parse(galleryTmpl))

// RenderPage writes the gallery page described by d to w.
func RenderPage(w io.Writer, d *PageData) error {
	if d.Gallery == nil {
		d.Gallery = &Gallery{}
	}

	data := struct {
		*PageData
		Style template.CSS
	}{
		PageData: d,
		Style:    template.CSS(styleText),
	}

	var tpl bytes.Buffer
	if err := tmpl.Execute(&tpl, data); err != nil {
		return fmt.Errorf("execute: %w", err)
	}

	_, err := w.Write(tpl.Bytes())
	return err
}

// Render writes a static index.html for g to c.OutDir, along with any extra assets.
func Render(c *Config, g *Gallery) error {
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	if c.AssetsDir != "" {
		if err := copyAssets(c.AssetsDir, c.OutDir); err != nil {
			return fmt.Errorf("copyAssets: %w", err)
		}
	}

	var bs bytes.Buffer
	if err := RenderPage(&bs, &PageData{
		Collection:  c.Collection,
		Description: c.Description,
		Static:      true,
		Gallery:     g,
	}); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	p := filepath.Join(c.OutDir, "index.html")
	klog.V(1).Infof("Writing gallery to %s", p)
	return os.WriteFile(p, bs.Bytes(), 0o644)
}

// RenderError writes a page that only carries the load failure message.
func RenderError(w io.Writer, c *Config) error {
	return RenderPage(w, &PageData{
		Collection:  c.Collection,
		Description: c.Description,
		Err:         LoadError,
	})
}

// Assets returns the relative paths of copyable files under dir.
func Assets(dir string) ([]string, error) {
	found := []string{}
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !assetExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			found = append(found, rel)
			return nil
		},
	})
	return found, err
}

func copyAssets(inDir string, outDir string) error {
	ms, err := Assets(inDir)
	if err != nil {
		return fmt.Errorf("walk %s: %w", inDir, err)
	}
	klog.V(1).Infof("copying %d assets from %s", len(ms), inDir)

	for _, m := range ms {
		if err := copy.Copy(filepath.Join(inDir, m), filepath.Join(outDir, "_", m)); err != nil {
			return err
		}
	}
	return nil
}

// tmplFunctions are functions available to our templates.
func tmplFunctions() template.FuncMap {
	return template.FuncMap{
		"Inc": func(i int) int {
			return i + 1
		},
		"Dims": func(c *Card) [2]int {
			w, h := c.Dimensions()
			return [2]int{w, h}
		},
		"Ratio": func(c *Card) template.CSS {
			w, h := c.Dimensions()
			return template.CSS(fmt.Sprintf("%d / %d", w, h))
		},
		"PhotoHref": func(base string, i int) string {
			return base + "?photo=" + strconv.Itoa(i)
		},
		"RoleClass": func(h timeline.Highlight, target string) string {
			switch h.Role(target) {
			case timeline.Active:
				return "active"
			case timeline.AncestorActive:
				return "ancestor-active"
			}
			return ""
		},
	}
}
