package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

// FormatOfferings lists every stored term of a subject with its sections.
func FormatOfferings(code string, offerings []domain.Offering) string {
	var b strings.Builder
	credits := "unknown"
	if len(offerings) > 0 && offerings[0].Credits > 0 {
		credits = fmt.Sprintf("%d", offerings[0].Credits)
	}
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(code), Dim("credits: "+credits))

	for _, off := range offerings {
		status := StyleGreen.Render(fmt.Sprintf("%d sections", len(off.Sections)))
		if !off.Offered {
			status = Dim("not offered")
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", StyleBlue.Render(off.Term.String()), status,
			Dim("fetched "+off.FetchedAt.Format("2006-01-02")))
		for i, s := range off.Sections {
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, s)
		}
	}
	return RenderBox("Catalog", b.String())
}

func FormatImportResult(path string, res *app.ImportResult) string {
	return fmt.Sprintf("%s %s\n  %d subjects, %d credit weights, %d terms, %d sections\n",
		StyleGreen.Render("Imported"), path,
		res.SubjectCount, res.CreditCount, res.TermCount, res.SectionCount)
}
