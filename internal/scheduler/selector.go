package scheduler

import "github.com/alexanderramin/gradeplan/internal/domain"

// Candidate is the subject chosen to be placed next along with the sections
// that fit the current term, in timesheet order.
type Candidate struct {
	Code     string
	Sections []domain.Section
}

// NextSubject picks the most constrained subject that can still be added to
// the current term: the one with the fewest conflict-free sections among
// those offered, not yet covered, not already placed this term and within
// the credit cap. Ties go to the lowest code. It returns false when nothing
// qualifies, meaning the term is finished.
func NextSubject(
	ts domain.Timesheet,
	covered map[string]bool,
	current *TermAssignment,
	credits domain.CreditMap,
	maxCredits int,
) (Candidate, bool) {
	assigned := current.Slots()

	var best Candidate
	found := false
	for _, code := range ts.Codes() {
		if covered[code] {
			continue
		}
		if _, placed := current.Sections[code]; placed {
			continue
		}
		if current.Credits+credits[code] > maxCredits {
			continue
		}
		fits := fittingSections(ts[code], assigned)
		if len(fits) == 0 {
			continue
		}
		// Codes come in ascending order, so strict < keeps the lowest code on ties.
		if !found || len(fits) < len(best.Sections) {
			best = Candidate{Code: code, Sections: fits}
			found = true
		}
	}
	return best, found
}
