package probe

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	service "github.com/okian/mlbview/internal/app"
	"github.com/okian/mlbview/internal/domain/classify"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	gray  = color.New(color.FgHiBlack)
	bold  = color.New(color.Bold)
)

// marker returns the colored bullet for a bucket.
func marker(b classify.Bucket) string {
	switch b.Color() {
	case classify.Green:
		return green.Sprint("▲")
	case classify.Red:
		return red.Sprint("▼")
	default:
		return gray.Sprint("●")
	}
}

// RenderSelection prints each point with its bucket marker followed by the
// summary.
func RenderSelection(w io.Writer, sel service.Selection) {
	polarity := "normal"
	if sel.Reversed {
		polarity = "reversed"
	}
	bold.Fprintf(w, "%s %s (%s)\n", sel.Player, sel.Stat, sel.Dataset)
	fmt.Fprintf(w, "threshold %.3f (%s), %s polarity\n", sel.Threshold, sel.ThresholdSource, polarity)
	if sel.Empty {
		gray.Fprintln(w, "no data for this selection")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range sel.Points {
		date := p.RawDate
		if p.Date.Valid() {
			date = p.Date.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", marker(p.Bucket), date, p.Value, p.Bucket)
	}
	tw.Flush()

	s := sel.Summary
	fmt.Fprintf(w, "%s above %d (%.2f%%)  %s below %d (%.2f%%)  %s at %d (%.2f%%)  total %d\n",
		marker(classify.Above), s.Above.Count, s.Above.Percentage,
		marker(classify.Below), s.Below.Count, s.Below.Percentage,
		marker(classify.At), s.At.Count, s.At.Percentage,
		s.Total)
}

// RenderReport prints a verify report.
func RenderReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "%s %s: %d players, %d checked, %d empty\n",
		r.Dataset, r.Stat, r.Players, r.Checked, r.Empty)
	if r.OK() {
		green.Fprintln(w, "all summaries consistent")
		return
	}
	for _, f := range r.Failures {
		red.Fprintf(w, "FAIL %s: %v\n", f.Player, f.Err)
	}
}
