package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// ErrNotFound is wrapped by every repository lookup that finds no row.
var ErrNotFound = errors.New("not found")

type SubjectRepo interface {
	Upsert(ctx context.Context, s domain.Subject) error
	Get(ctx context.Context, code string) (*domain.Subject, error)
	List(ctx context.Context) ([]domain.Subject, error)
}

type CreditRepo interface {
	Upsert(ctx context.Context, code string, credits int) error
	Get(ctx context.Context, code string) (int, error)
	// GetMany returns the weights it knows; unknown codes are simply absent.
	GetMany(ctx context.Context, codes []string) (domain.CreditMap, error)
}

type SectionRepo interface {
	// Get returns ErrNotFound when the (code, term) pair was never fetched.
	// A fetched but unoffered subject yields an empty, non-nil slice.
	Get(ctx context.Context, code string, term domain.Term) ([]domain.Section, error)
	// Save replaces whatever was stored for (code, term).
	Save(ctx context.Context, code string, term domain.Term, sections []domain.Section, fetchedAt time.Time) error
	ListByCode(ctx context.Context, code string) ([]domain.Offering, error)
}

type PlanRunRepo interface {
	Create(ctx context.Context, run *domain.PlanRun) error
	GetByID(ctx context.Context, id string) (*domain.PlanRun, error)
	List(ctx context.Context, limit int) ([]*domain.PlanRun, error)
}
