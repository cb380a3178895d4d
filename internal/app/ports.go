package app

import (
	"context"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

type PlanUseCase interface {
	Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.PlanRun, error)
	GetRun(ctx context.Context, id string) (*domain.PlanRun, error)
}

type CatalogUseCase interface {
	BuildTimesheet(ctx context.Context, subjects []domain.Subject, term domain.Term, opts TimesheetOptions) (*TimesheetResult, error)
	Offerings(ctx context.Context, code string) ([]domain.Offering, error)
}

type ImportCatalogUseCase interface {
	ImportCatalog(ctx context.Context, path string) (*ImportResult, error)
}
