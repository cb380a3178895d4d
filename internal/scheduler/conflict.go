package scheduler

import "github.com/alexanderramin/gradeplan/internal/domain"

// Conflicts reports whether slot overlaps any already-assigned slot on the
// same weekday. Intervals are half-open, so back-to-back meetings fit.
func Conflicts(slot domain.Slot, assigned []domain.Slot) bool {
	for _, other := range assigned {
		if slot.Overlaps(other) {
			return true
		}
	}
	return false
}

// SectionFits reports whether none of the section's slots conflict with the
// assigned ones.
func SectionFits(section domain.Section, assigned []domain.Slot) bool {
	for _, slot := range section.Slots {
		if Conflicts(slot, assigned) {
			return false
		}
	}
	return true
}

// fittingSections keeps the sections that fit, in their original order.
func fittingSections(sections []domain.Section, assigned []domain.Slot) []domain.Section {
	var out []domain.Section
	for _, s := range sections {
		if SectionFits(s, assigned) {
			out = append(out, s)
		}
	}
	return out
}
