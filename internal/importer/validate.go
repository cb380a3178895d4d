package importer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// ValidateCatalog checks the catalog before conversion and returns every
// problem found.
func ValidateCatalog(schema *CatalogSchema) []error {
	var errs []error

	if len(schema.Terms) == 0 {
		errs = append(errs, fmt.Errorf("terms: at least one term is required"))
	}

	for _, code := range sortedKeys(schema.Subjects) {
		s := domain.Subject{Code: code, Institute: schema.Subjects[code]}
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("subjects.%s: %w", code, err))
		}
	}

	for _, code := range sortedKeys(schema.Credits) {
		if schema.Credits[code] <= 0 {
			errs = append(errs, fmt.Errorf("credits.%s: must be positive, got %d", code, schema.Credits[code]))
		}
	}

	for _, termKey := range sortedKeys(schema.Terms) {
		if _, err := domain.ParseTerm(termKey); err != nil {
			errs = append(errs, fmt.Errorf("terms.%s: %w", termKey, err))
		}
		offered := schema.Terms[termKey]
		for _, code := range sortedKeys(offered) {
			path := fmt.Sprintf("terms.%s.%s", termKey, code)
			if _, ok := schema.Credits[code]; !ok {
				errs = append(errs, fmt.Errorf("%s: no credits entry for %s", path, code))
			}
			errs = append(errs, validateSections(path, offered[code])...)
		}
	}

	return errs
}

func validateSections(path string, sections []SectionImport) []error {
	var errs []error
	for i, sec := range sections {
		if len(sec.Slots) == 0 {
			errs = append(errs, fmt.Errorf("%s[%d]: section has no slots", path, i))
			continue
		}
		for j, sl := range sec.Slots {
			if _, err := domain.NewSlot(sl.Day, sl.Hours); err != nil {
				errs = append(errs, fmt.Errorf("%s[%d].slots[%d]: %w", path, i, j, err))
			}
		}
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
