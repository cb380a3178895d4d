package scheduler

import (
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// TermAssignment is the in-progress enrollment for one term.
type TermAssignment struct {
	Sections map[string]domain.Section
	Credits  int
	// Finished means no further subject can legally be added.
	Finished bool
}

func newTermAssignment() *TermAssignment {
	return &TermAssignment{Sections: make(map[string]domain.Section)}
}

// Codes returns the assigned subject codes in ascending order.
func (a *TermAssignment) Codes() []string {
	return slices.Sorted(maps.Keys(a.Sections))
}

// Slots returns every assigned slot, grouped by subject in code order.
func (a *TermAssignment) Slots() []domain.Slot {
	var out []domain.Slot
	for _, code := range a.Codes() {
		out = append(out, a.Sections[code].Slots...)
	}
	return out
}

func (a *TermAssignment) commit(code string, section domain.Section, credits int) {
	a.Sections[code] = section
	a.Credits += credits
}

func (a *TermAssignment) clone() *TermAssignment {
	cp := &TermAssignment{
		Sections: make(map[string]domain.Section, len(a.Sections)),
		Credits:  a.Credits,
		Finished: a.Finished,
	}
	for code, s := range a.Sections {
		cp.Sections[code] = s.Clone()
	}
	return cp
}

// Plan is one branch of the search: a term-by-term assignment history plus
// the subjects it has covered so far. Index 0 of Terms is the start term.
type Plan struct {
	Terms   []*TermAssignment
	Covered map[string]bool
	Goal    int
}

func newPlan(goal int) *Plan {
	return &Plan{
		Terms:   []*TermAssignment{newTermAssignment()},
		Covered: make(map[string]bool),
		Goal:    goal,
	}
}

// Current returns the term being filled.
func (p *Plan) Current() *TermAssignment {
	return p.Terms[len(p.Terms)-1]
}

// Complete reports whether every subject has been covered.
func (p *Plan) Complete() bool {
	return len(p.Covered) == p.Goal
}

func (p *Plan) commit(code string, section domain.Section, credits int) {
	p.Current().commit(code, section, credits)
	p.Covered[code] = true
}

func (p *Plan) extend() {
	p.Terms = append(p.Terms, newTermAssignment())
}

// clone copies the full history so sibling branches never share state.
func (p *Plan) clone() *Plan {
	cp := &Plan{
		Terms:   make([]*TermAssignment, len(p.Terms)),
		Covered: maps.Clone(p.Covered),
		Goal:    p.Goal,
	}
	for i, t := range p.Terms {
		cp.Terms[i] = t.clone()
	}
	return cp
}

// Signature is a stable textual identity of the plan's choices, used as the
// final ranking tie-break.
func (p *Plan) Signature() string {
	var b strings.Builder
	for i, t := range p.Terms {
		if i > 0 {
			b.WriteString(" | ")
		}
		for j, code := range t.Codes() {
			if j > 0 {
				b.WriteString("; ")
			}
			b.WriteString(code)
			b.WriteString("@")
			b.WriteString(t.Sections[code].String())
		}
	}
	return b.String()
}
