package gpa

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const separator = "========================================"

func (s Statistics) gpaText() string {
	if !s.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", s.GPA)
}

func writeTotals(out *strings.Builder, stats Statistics) {
	fmt.Fprintf(out, "Total Points: %.2f\n", stats.TotalPoints)
	fmt.Fprintf(out, "Total Hours: %d\n", stats.TotalHours)
	fmt.Fprintf(out, "GPA: %s\n", stats.gpaText())
}

// Report writes every record on its own line followed by the totals.
func Report(w io.Writer, records []CourseRecord, stats Statistics) error {
	var out strings.Builder
	fmt.Fprintf(&out, "Fetched %d courses:\n", len(records))
	out.WriteString(separator + "\n")
	for _, r := range records {
		out.WriteString(r.String() + "\n")
	}
	out.WriteString("\n")
	writeTotals(&out, stats)

	_, err := io.WriteString(w, out.String())
	return err
}

// ReportTable is Report with the records rendered as a table.
func ReportTable(w io.Writer, records []CourseRecord, stats Statistics) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Points", "Hours", "Counted"})
	for i, r := range records {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", r.Points),
			r.Hours,
			r.Counted(),
		})
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Fetched %d courses:\n", len(records))
	out.WriteString(t.Render() + "\n")
	out.WriteString("\n")
	writeTotals(&out, stats)

	_, err := io.WriteString(w, out.String())
	return err
}
