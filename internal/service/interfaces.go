package service

import (
	"context"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

// OfferingFetcher reads one subject's schedule page for a term.
// *scraper.Client implements it.
type OfferingFetcher interface {
	Fetch(ctx context.Context, subject domain.Subject, term domain.Term) (*domain.Offering, error)
}

type CatalogService interface {
	app.CatalogUseCase
	app.ImportCatalogUseCase
}

type PlanService interface {
	app.PlanUseCase
}
