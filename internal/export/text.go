package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

const (
	cellWidth  = 9
	labelWidth = 13
)

func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func border() string {
	return "+" + strings.Repeat("-", labelWidth) + strings.Repeat("+"+strings.Repeat("-", cellWidth), 7) + "+\n"
}

// RenderText writes TextTable(g) to w.
func RenderText(w io.Writer, g Grid) error {
	_, err := io.WriteString(w, TextTable(g))
	return err
}

// TextTable draws the grid as a fixed-width box table. Adjacent cells
// holding the same value, empty ones included, are merged by dropping the
// rule between them.
func TextTable(g Grid) string {
	var b strings.Builder
	b.WriteString(border())
	b.WriteString("|" + strings.Repeat(" ", labelWidth))
	for _, label := range domain.WeekdayLabels {
		b.WriteString("|" + center(label, cellWidth))
	}
	b.WriteString("|\n")

	if first, last, ok := g.Span(); ok {
		for hour := first; hour < last; hour++ {
			row := g[hour-FirstHour]
			b.WriteString("+" + strings.Repeat("-", labelWidth) + "+")
			for day := range row {
				if hour > first && row[day] == g[hour-FirstHour-1][day] {
					b.WriteString(strings.Repeat(" ", cellWidth) + "+")
				} else {
					b.WriteString(strings.Repeat("-", cellWidth) + "+")
				}
			}
			b.WriteString("\n")

			fmt.Fprintf(&b, "| %02d:00-%02d:00 |", hour, hour+1)
			for day, cell := range row {
				b.WriteString(center(cell, cellWidth))
				if day < len(row)-1 && cell == row[day+1] {
					b.WriteString(" ")
				} else {
					b.WriteString("|")
				}
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(border())
	return b.String()
}

// RenderPlanText writes every term of a plan: a heading with the term,
// credits and score, then its grid.
func RenderPlanText(w io.Writer, plan domain.RankedPlan) error {
	if _, err := fmt.Fprintf(w, "Plan #%d  score %.3f\n\n", plan.Rank, plan.Score); err != nil {
		return err
	}
	for _, t := range plan.Terms {
		if _, err := fmt.Fprintf(w, "%s  %d credits  score %.3f\n", t.Term, t.Credits, t.Score); err != nil {
			return err
		}
		if err := RenderText(w, NewGrid(t.Sections)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
