package app

import (
	"time"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

type (
	RankedPlan  = domain.RankedPlan
	PlannedTerm = domain.PlannedTerm
)

type PlanRequest struct {
	StartTerm  domain.Term
	Subjects   []domain.Subject `validate:"required,min=1,dive"`
	MaxCredits int              `validate:"gt=0"`
	Top        int              `validate:"gte=0"`
	MaxTerms   int              `validate:"gte=0"`
	MaxPlans   int              `validate:"gte=0"`
	Now        *time.Time

	// Offline never scrapes; uncached subjects count as not offered.
	Offline bool
	// Refresh re-scrapes even when cached.
	Refresh bool
}

func NewPlanRequest(start domain.Term, subjects []domain.Subject, maxCredits int) PlanRequest {
	return PlanRequest{
		StartTerm:  start,
		Subjects:   subjects,
		MaxCredits: maxCredits,
		Top:        5,
	}
}

type PlanResponse struct {
	RunID       string
	GeneratedAt time.Time
	StartTerm   domain.Term
	Goal        int
	Outcome     domain.Outcome
	Plans       []RankedPlan
	Explored    int
	Abandoned   int
	Uncovered   []string
	Warnings    []string
}

type PlanErrorCode string

const (
	PlanErrInvalidRequest PlanErrorCode = "INVALID_REQUEST"
	PlanErrNoFeasible     PlanErrorCode = "NO_FEASIBLE_PLAN"
	PlanErrDataIntegrity  PlanErrorCode = "DATA_INTEGRITY"
	PlanErrInternal       PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error { return e.Err }
