package testutil

import (
	"time"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/google/uuid"
)

type SectionOption func(*domain.Section)

// WithSlot appends a meeting given as a day label and "HH:MM - HH:MM".
func WithSlot(day, hours string) SectionOption {
	return func(s *domain.Section) {
		s.Slots = append(s.Slots, domain.MustSlot(day, hours))
	}
}

// NewTestSection builds a section; with no options it meets Monday 08-10.
func NewTestSection(opts ...SectionOption) domain.Section {
	s := domain.Section{}
	for _, opt := range opts {
		opt(&s)
	}
	if len(s.Slots) == 0 {
		s.Slots = []domain.Slot{domain.MustSlot("Segunda", "08:00 - 10:00")}
	}
	return s
}

type PlanRunOption func(*domain.PlanRun)

func WithRunCreatedAt(t time.Time) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.CreatedAt = t
	}
}

func WithRunOutcome(o domain.Outcome, abandoned int, uncovered ...string) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Outcome = o
		r.Abandoned = abandoned
		r.Uncovered = uncovered
	}
}

func WithRunPlans(plans ...domain.RankedPlan) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Plans = plans
	}
}

// NewTestPlanRun builds a complete single-plan run for MC102 in 1s2024.
func NewTestPlanRun(opts ...PlanRunOption) *domain.PlanRun {
	term := domain.Term{Year: 2024, Half: 1}
	r := &domain.PlanRun{
		ID:         uuid.New().String(),
		StartTerm:  term,
		Subjects:   []string{"MC102"},
		MaxCredits: 24,
		Goal:       1,
		Outcome:    domain.OutcomeComplete,
		Explored:   1,
		Plans: []domain.RankedPlan{{
			Rank:  1,
			Score: 4,
			Terms: []domain.PlannedTerm{{
				Term:     term,
				Credits:  6,
				Score:    4,
				Sections: map[string]domain.Section{"MC102": NewTestSection(WithSlot("Segunda", "08:00 - 12:00"))},
			}},
		}},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
