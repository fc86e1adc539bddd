package vattenfall

import (
	"sort"
)

// DefaultMonth is the bucket for photos without a month.
const DefaultMonth = "01"

// GroupByMonth buckets photos by month, keeping manifest order inside each bucket.
func GroupByMonth(ps []*Photo) map[string][]*Photo {
	groups := map[string][]*Photo{}
	for _, p := range ps {
		m := p.Month
		if m == "" {
			m = DefaultMonth
		}
		groups[m] = append(groups[m], p)
	}
	return groups
}

// SortedMonths returns the month keys, newest first.
// Keys are zero-padded, so a string comparison orders them.
func SortedMonths(groups map[string][]*Photo) []string {
	ms := make([]string, 0, len(groups))
	for m := range groups {
		ms = append(ms, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ms)))
	return ms
}
