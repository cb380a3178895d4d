package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// RenderPDF draws one landscape page per term holding the term's grid.
// Occupied cells are shaded.
func RenderPDF(plan domain.RankedPlan) ([]byte, error) {
	if len(plan.Terms) == 0 {
		return nil, fmt.Errorf("pdf requires at least one term")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	const (
		labelW = 32.0
		cellW  = (277.0 - labelW) / 7
		rowH   = 8.0
	)

	for _, t := range plan.Terms {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Plan #%d  %s", plan.Rank, t.Term)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d credits, score %.3f", t.Credits, t.Score), "", 1, "L", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(labelW, rowH, "", "1", 0, "C", false, 0, "")
		for _, label := range domain.WeekdayLabels {
			pdf.CellFormat(cellW, rowH, tr(label), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		g := NewGrid(t.Sections)
		pdf.SetFont("Arial", "", 9)
		for i, row := range g {
			hour := FirstHour + i
			pdf.CellFormat(labelW, rowH, fmt.Sprintf("%02d:00-%02d:00", hour, hour+1), "1", 0, "C", false, 0, "")
			for _, cell := range row {
				fill := cell != ""
				if fill {
					pdf.SetFillColor(214, 228, 240)
				}
				pdf.CellFormat(cellW, rowH, tr(cell), "1", 0, "C", fill, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
