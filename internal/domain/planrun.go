package domain

import (
	"maps"
	"slices"
	"time"
)

type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomePartial  Outcome = "partial"
)

// PlannedTerm is one term of a ranked plan.
type PlannedTerm struct {
	Term     Term               `json:"term"`
	Credits  int                `json:"credits"`
	Score    float64            `json:"score"`
	Sections map[string]Section `json:"sections"`
}

type RankedPlan struct {
	Rank  int           `json:"rank"`
	Score float64       `json:"score"`
	Terms []PlannedTerm `json:"terms"`
}

// Codes lists every subject the plan places, term by term and ascending
// within a term.
func (p RankedPlan) Codes() []string {
	var out []string
	for _, t := range p.Terms {
		out = append(out, slices.Sorted(maps.Keys(t.Sections))...)
	}
	return out
}

// PlanRun is a persisted planner invocation and its top plans.
type PlanRun struct {
	ID         string
	StartTerm  Term
	Subjects   []string
	MaxCredits int
	Goal       int
	Outcome    Outcome
	Explored   int
	Abandoned  int
	Uncovered  []string
	Plans      []RankedPlan
	CreatedAt  time.Time
}
