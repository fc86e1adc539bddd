package vattenfall

import (
	"encoding/json"
	"strconv"
	"time"

	"k8s.io/klog/v2"

	"github.com/tstromberg/vattenfall/pkg/timeline"
)

// Item is the lightbox view of a photo. Its position in Gallery.Items is the global index.
type Item struct {
	Src      string
	Thumb    string
	Caption  string
	Exif     map[string]any
	Filename string
}

// Card is a photo placed in rendering order.
type Card struct {
	Photo   *Photo
	Index   int
	Year    int
	Month   string
	Markers []string
}

// ExifJSON serializes the EXIF map for the card's trigger attribute.
func (c *Card) ExifJSON() string {
	if len(c.Photo.Exif) == 0 {
		return ""
	}
	bs, err := json.Marshal(c.Photo.Exif)
	if err != nil {
		klog.Warningf("unable to serialize exif for %s: %v", c.Photo.Filename, err)
		return ""
	}
	return string(bs)
}

// Dimensions returns the card's width and height, defaulting to 3:2.
func (c *Card) Dimensions() (int, int) {
	if c.Photo.Width > 0 && c.Photo.Height > 0 {
		return c.Photo.Width, c.Photo.Height
	}
	return 300, 200
}

// Entry is a timeline sidebar link.
type Entry struct {
	Year   int
	Month  string
	Label  string
	Target string
	First  int
	Count  int
}

// YearEntry is a year link with its month links, newest first.
type YearEntry struct {
	Entry
	Months []Entry
}

// Gallery is a fully assembled page: cards in index order plus their column layout.
type Gallery struct {
	Albums   []*Album
	Cards    []*Card
	Items    []Item
	Timeline []*YearEntry
	Index    map[string]int
	Columns  int
	Layout   [][]*Card
}

// Build flattens albums (manifest order) by month (newest first) and lays out the result.
func Build(as []*Album, columns int) *Gallery {
	g := &Gallery{
		Albums:  as,
		Cards:   []*Card{},
		Items:   []Item{},
		Index:   map[string]int{},
		Columns: columns,
	}

	for _, a := range as {
		groups := GroupByMonth(a.Photos)
		months := SortedMonths(groups)

		ye := &YearEntry{Entry: Entry{
			Year:   a.Year,
			Label:  strconv.Itoa(a.Year),
			Target: timeline.YearID(a.Year),
			First:  len(g.Cards),
		}}

		firstOfYear := true
		for _, m := range months {
			ps := groups[m]
			if len(ps) == 0 {
				continue
			}

			g.Index[timeline.Key(a.Year, m)] = len(g.Cards)
			ye.Months = append(ye.Months, Entry{
				Year:   a.Year,
				Month:  m,
				Label:  MonthName(m),
				Target: timeline.SectionID(a.Year, m),
				First:  len(g.Cards),
				Count:  len(ps),
			})

			for i, p := range ps {
				c := &Card{Photo: p, Index: len(g.Cards), Year: a.Year, Month: m}
				if i == 0 {
					c.Markers = append(c.Markers, timeline.SectionID(a.Year, m))
					if firstOfYear {
						c.Markers = append(c.Markers, timeline.YearID(a.Year))
						firstOfYear = false
					}
				}
				g.Cards = append(g.Cards, c)
				g.Items = append(g.Items, Item{
					Src:      p.Path,
					Thumb:    p.Thumbnail,
					Caption:  p.Alt,
					Exif:     p.Exif,
					Filename: p.Filename,
				})
			}
			ye.Count += len(ps)
		}
		g.Timeline = append(g.Timeline, ye)
	}

	g.Layout = Layout(g.Cards, columns)
	klog.V(1).Infof("built gallery: %d photos, %d albums, %d columns", len(g.Cards), len(as), columns)
	return g
}

// MonthName returns the short English name for "01".."12", or the key itself.
func MonthName(m string) string {
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 || n > 12 {
		return m
	}
	return time.Month(n).String()[:3]
}
