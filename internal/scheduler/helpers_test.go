package scheduler

import "github.com/alexanderramin/gradeplan/internal/domain"

func slot(day, hours string) domain.Slot {
	return domain.MustSlot(day, hours)
}

func section(slots ...domain.Slot) domain.Section {
	return domain.NewSection(slots...)
}

// planWith builds a single-term plan holding the given sections.
func planWith(goal int, credits int, sections map[string]domain.Section) *Plan {
	p := newPlan(goal)
	for code, s := range sections {
		p.commit(code, s, credits)
	}
	p.Current().Finished = true
	return p
}
