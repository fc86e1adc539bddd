// Package meta turns a photo's EXIF map into the lightbox metadata panel.
package meta

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxRating is the number of stars shown.
const MaxRating = 5

// Row is a labelled value.
type Row struct {
	Label string
	Value string
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Rows  []Row
}

// Panel is the metadata summary for one photo.
type Panel struct {
	Title    string
	Rating   int
	Tags     []string
	Sections []Section
}

// Stars returns MaxRating booleans, true for each filled star.
func (p *Panel) Stars() []bool {
	s := make([]bool, MaxRating)
	for i := range s {
		s[i] = i < p.Rating
	}
	return s
}

// Section returns the section with the given title.
func (p *Panel) Section(title string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Options configure panel text that does not come from EXIF.
type Options struct {
	Copyright string
}

// Section titles.
const (
	Location = "Location"
	Shooting = "Shooting"
	Device   = "Device"
	Mode     = "Mode"
)

var titleSuffixes = []string{".jpg", ".JPG", "_ps", "_nx", "_edit"}

// Build returns the panel for a photo, or nil if it has no EXIF data.
func Build(exif map[string]any, filename string, o Options) *Panel {
	if len(exif) == 0 {
		return nil
	}

	title := filename
	for _, s := range titleSuffixes {
		title = strings.Replace(title, s, "", 1)
	}

	p := &Panel{
		Title:  title,
		Rating: rating(exif),
		Tags:   Tags(exif),
	}

	for _, s := range []Section{
		{Title: Location, Rows: locationRows(exif)},
		{Title: Shooting, Rows: shootingRows(exif)},
		{Title: Device, Rows: deviceRows(exif, o)},
		{Title: Mode, Rows: modeRows(exif)},
	} {
		if len(s.Rows) > 0 {
			p.Sections = append(p.Sections, s)
		}
	}
	return p
}

func rating(exif map[string]any) int {
	f, ok := number(exif["Rating"])
	if !ok {
		return 0
	}
	r := int(math.Round(f))
	if r < 0 {
		return 0
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// Tags merges Keywords and Subject, dropping blanks and duplicates.
func Tags(exif map[string]any) []string {
	var raw []string
	raw = append(raw, stringList(exif["Keywords"])...)
	raw = append(raw, stringList(exif["Subject"])...)

	seen := map[string]bool{}
	tags := []string{}
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

func shootingRows(exif map[string]any) []Row {
	var rows []Row
	if v, ok := first(exif, "FocalLength"); ok {
		rows = append(rows, Row{"Focal length", v})
	}
	if v, ok := first(exif, "FNumber", "Aperture"); ok {
		rows = append(rows, Row{"Aperture", "f/" + v})
	}
	if v, ok := first(exif, "ExposureTime", "ShutterSpeed"); ok {
		rows = append(rows, Row{"Shutter", v})
	}
	if v, ok := first(exif, "ISO"); ok {
		rows = append(rows, Row{"ISO", v})
	}
	return rows
}

func deviceRows(exif map[string]any, o Options) []Row {
	var rows []Row
	model, hasModel := first(exif, "Model")
	if mk, ok := first(exif, "Make"); ok && hasModel {
		rows = append(rows, Row{"Camera", mk + " " + model})
	} else if hasModel {
		rows = append(rows, Row{"Camera", model})
	}
	if v, ok := first(exif, "LensModel", "Lens"); ok {
		rows = append(rows, Row{"Lens", v})
	}
	if v, ok := first(exif, "FocalLengthIn35mmFormat"); ok {
		v = strings.TrimSpace(strings.TrimSuffix(v, "mm"))
		rows = append(rows, Row{"35mm equivalent", v + " mm"})
	}
	rows = append(rows, Row{"Copyright", o.Copyright})
	return rows
}

func modeRows(exif map[string]any) []Row {
	var rows []Row
	for _, f := range []struct{ key, label string }{
		{"WhiteBalance", "White balance"},
		{"ExposureProgram", "Exposure program"},
		{"ExposureMode", "Exposure mode"},
		{"MeteringMode", "Metering"},
		{"Flash", "Flash"},
		{"SceneCaptureType", "Scene type"},
	} {
		if v, ok := first(exif, f.key); ok {
			rows = append(rows, Row{f.label, v})
		}
	}
	return rows
}

func locationRows(exif map[string]any) []Row {
	var rows []Row
	lat, hasLat := exif["GPSLatitude"]
	lon, hasLon := exif["GPSLongitude"]
	if hasLat && hasLon && present(lat) && present(lon) {
		latRef := "N"
		if v, ok := first(exif, "GPSLatitudeRef"); ok {
			latRef = v
		}
		lonRef := "E"
		if v, ok := first(exif, "GPSLongitudeRef"); ok {
			lonRef = v
		}
		rows = append(rows, Row{"Coordinates", FormatCoordinate(lat, latRef) + ", " + FormatCoordinate(lon, lonRef)})
	}
	if v, ok := exif["GPSAltitude"]; ok && present(v) {
		rows = append(rows, Row{"Altitude", FormatAltitude(v)})
	}
	return rows
}

// first returns the first present field among keys, formatted for display.
func first(exif map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := exif[k]; ok && present(v) {
			return display(v), true
		}
	}
	return "", false
}

// present mirrors truthiness of decoded JSON: nil, "", 0 and false are absent.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}

func display(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, display(e))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, display(e))
		}
		return out
	case nil:
		return nil
	}
	return []string{display(v)}
}
