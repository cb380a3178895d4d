package domain

import (
	"maps"
	"slices"
)

// Timesheet maps a subject code to the sections offered for it in one term.
// An absent or empty entry means the subject is not offered.
type Timesheet map[string][]Section

// CreditMap maps a subject code to its credit weight.
type CreditMap map[string]int

// Codes returns every subject code in the timesheet in ascending order.
func (ts Timesheet) Codes() []string {
	return slices.Sorted(maps.Keys(ts))
}

// Offered reports whether the subject has at least one section.
func (ts Timesheet) Offered(code string) bool {
	return len(ts[code]) > 0
}

// Dedup removes, per subject, every section equal to an earlier one in the
// list. The first occurrence keeps its position. Running it again is a no-op.
func (ts Timesheet) Dedup() {
	for code, sections := range ts {
		kept := sections[:0:0]
		for _, s := range sections {
			if !slices.ContainsFunc(kept, s.Equal) {
				kept = append(kept, s)
			}
		}
		ts[code] = kept
	}
}

// Clone returns a deep copy.
func (ts Timesheet) Clone() Timesheet {
	out := make(Timesheet, len(ts))
	for code, sections := range ts {
		cp := make([]Section, len(sections))
		for i, s := range sections {
			cp[i] = s.Clone()
		}
		out[code] = cp
	}
	return out
}
