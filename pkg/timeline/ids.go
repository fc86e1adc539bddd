// Package timeline models the year/month navigation sidebar: anchor IDs,
// hover visibility and scroll-spy highlighting.
package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	yearPrefix    = "year-"
	sectionPrefix = "section-"
)

// YearID is the anchor ID for the first photo of a year.
func YearID(year int) string {
	return fmt.Sprintf("%s%d", yearPrefix, year)
}

// SectionID is the anchor ID for the first photo of a month.
func SectionID(year int, month string) string {
	return fmt.Sprintf("%s%d-%s", sectionPrefix, year, month)
}

// Key is the index key for a month bucket.
func Key(year int, month string) string {
	return fmt.Sprintf("%d-%s", year, month)
}

// Target is a parsed anchor ID.
type Target struct {
	ID    string
	Year  int
	Month string
}

// IsMonth reports whether the target is a month section.
func (t Target) IsMonth() bool {
	return t.Month != ""
}

// ParseTarget parses year-<y> and section-<y>-<m> IDs.
func ParseTarget(id string) (Target, bool) {
	switch {
	case strings.HasPrefix(id, yearPrefix):
		y, err := strconv.Atoi(strings.TrimPrefix(id, yearPrefix))
		if err != nil {
			return Target{}, false
		}
		return Target{ID: id, Year: y}, true
	case strings.HasPrefix(id, sectionPrefix):
		rest := strings.TrimPrefix(id, sectionPrefix)
		ys, m, ok := strings.Cut(rest, "-")
		if !ok || m == "" {
			return Target{}, false
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return Target{}, false
		}
		return Target{ID: id, Year: y, Month: m}, true
	}
	return Target{}, false
}
