package scraper

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

const creditsLabel = "Créditos:"

// Page is what a subject's schedule page yields.
type Page struct {
	Sections []domain.Section
	// Credits is 0 when the page does not show the credit weight.
	Credits int
}

// ParsePage reads sections from every ".turma .panel-body .horariosFormatado"
// list (one section per list, one slot per li) and the credit weight from
// the value element following the "Créditos:" label.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule page: %w", err)
	}

	page := &Page{}
	for i, list := range chain(doc, byClass("turma"), byClass("panel-body"), byClass("horariosFormatado")) {
		var slots []domain.Slot
		for _, li := range descendants(list, byTag("li")) {
			day := first(li, byClass("diaSemana"))
			hours := first(li, byClass("horarios"))
			if day == nil || hours == nil {
				return nil, fmt.Errorf("section %d: meeting without day or hours", i)
			}
			slot, err := domain.NewSlot(text(day), text(hours))
			if err != nil {
				return nil, fmt.Errorf("section %d: %w", i, err)
			}
			slots = append(slots, slot)
		}
		page.Sections = append(page.Sections, domain.Section{Slots: slots})
	}

	for _, prop := range descendants(doc, byClass("prop")) {
		if text(prop) != creditsLabel {
			continue
		}
		value := nextElement(prop)
		if value == nil {
			return nil, fmt.Errorf("credits label without value")
		}
		credits, err := strconv.Atoi(text(value))
		if err != nil || credits <= 0 {
			return nil, fmt.Errorf("credits value %q is not a positive number", text(value))
		}
		page.Credits = credits
		break
	}
	return page, nil
}
