package vattenfall

const (
	// heightUnit is the estimated height of a square photo in a column.
	heightUnit = 1000.0
	// gap is the spacing between stacked photos, in the same units.
	gap = 8.0
	// defaultAspect is used when a photo lacks dimensions.
	defaultAspect = 1.5
)

// Tier is a viewport width band with a fixed column count.
type Tier struct {
	Name     string
	MinWidth int
	Columns  int
}

// Tiers are ordered widest first.
var Tiers = []Tier{
	{Name: "wide", MinWidth: 1200, Columns: 5},
	{Name: "medium", MinWidth: 768, Columns: 3},
	{Name: "narrow", MinWidth: 0, Columns: 2},
}

// TierFor returns the tier for a viewport width.
func TierFor(width int) Tier {
	for _, t := range Tiers {
		if width >= t.MinWidth {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// ColumnCount returns the number of waterfall columns for a viewport width.
func ColumnCount(width int) int {
	return TierFor(width).Columns
}

// Aspect returns width/height, or the default ratio when either is missing.
func (p *Photo) Aspect() float64 {
	if p.Width > 0 && p.Height > 0 {
		return float64(p.Width) / float64(p.Height)
	}
	return defaultAspect
}

// Layout assigns each card, in order, to the currently shortest column.
// Ties go to the leftmost column.
func Layout(cs []*Card, columns int) [][]*Card {
	if columns < 1 {
		columns = 1
	}

	heights := make([]float64, columns)
	cols := make([][]*Card, columns)
	for i := range cols {
		cols[i] = []*Card{}
	}

	for _, c := range cs {
		short := 0
		for i := 1; i < columns; i++ {
			if heights[i] < heights[short] {
				short = i
			}
		}
		cols[short] = append(cols[short], c)
		heights[short] += heightUnit/c.Photo.Aspect() + gap
	}

	return cols
}
