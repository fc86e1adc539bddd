package vattenfall

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Summary prints the timeline of g as a table: one row per year, then its months.
func Summary(w io.Writer, g *Gallery) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Year"), bold.Sprint("Month"), bold.Sprint("Photos"), bold.Sprint("First"), bold.Sprint("Anchor"))
	for _, y := range g.Timeline {
		tbl.AddRow(bold.Sprint(y.Label), "", y.Count, y.First, faint.Sprint(y.Target))
		for _, m := range y.Months {
			tbl.AddRow("", m.Label, m.Count, m.First, faint.Sprint(m.Target))
		}
	}
	tbl.RightAlign(2)
	tbl.RightAlign(3)

	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintf(w, "%s photos in %d columns\n", bold.Sprint(strconv.Itoa(len(g.Cards))), g.Columns)
}
