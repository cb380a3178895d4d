package importer

import (
	"fmt"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// Catalog is a validated catalog in domain form.
type Catalog struct {
	Subjects []domain.Subject
	Credits  domain.CreditMap
	Terms    map[domain.Term]domain.Timesheet
}

// Convert builds domain values from a schema. Call ValidateCatalog first;
// Convert assumes the schema is valid but still reports parse failures.
func Convert(schema *CatalogSchema) (*Catalog, error) {
	cat := &Catalog{
		Credits: make(domain.CreditMap, len(schema.Credits)),
		Terms:   make(map[domain.Term]domain.Timesheet, len(schema.Terms)),
	}
	for _, code := range sortedKeys(schema.Subjects) {
		cat.Subjects = append(cat.Subjects, domain.Subject{Code: code, Institute: schema.Subjects[code]})
	}
	for code, credits := range schema.Credits {
		cat.Credits[code] = credits
	}

	for termKey, offered := range schema.Terms {
		term, err := domain.ParseTerm(termKey)
		if err != nil {
			return nil, err
		}
		ts := make(domain.Timesheet, len(offered))
		for code, sections := range offered {
			converted := make([]domain.Section, 0, len(sections))
			for i, sec := range sections {
				slots := make([]domain.Slot, 0, len(sec.Slots))
				for _, sl := range sec.Slots {
					slot, err := domain.NewSlot(sl.Day, sl.Hours)
					if err != nil {
						return nil, fmt.Errorf("%s %s section %d: %w", termKey, code, i, err)
					}
					slots = append(slots, slot)
				}
				converted = append(converted, domain.Section{Slots: slots})
			}
			ts[code] = converted
		}
		cat.Terms[term] = ts
	}
	return cat, nil
}
