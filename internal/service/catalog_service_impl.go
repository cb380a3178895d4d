package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/cache"
	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/importer"
	"github.com/alexanderramin/gradeplan/internal/repository"
)

type catalogService struct {
	credits  repository.CreditRepo
	sections *cache.SectionCache
	uow      db.UnitOfWork
	fetcher  OfferingFetcher
	logger   *zap.Logger
	observer UseCaseObserver
	now      func() time.Time
}

type CatalogOption func(*catalogService)

func WithCatalogLogger(logger *zap.Logger) CatalogOption {
	return func(s *catalogService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithCatalogObserver(obs UseCaseObserver) CatalogOption {
	return func(s *catalogService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func WithCatalogClock(now func() time.Time) CatalogOption {
	return func(s *catalogService) { s.now = now }
}

// NewCatalogService reads sections through the cache and falls back to
// fetcher on a miss. A nil fetcher makes every lookup offline.
func NewCatalogService(
	credits repository.CreditRepo,
	sections *cache.SectionCache,
	uow db.UnitOfWork,
	fetcher OfferingFetcher,
	opts ...CatalogOption,
) CatalogService {
	s := &catalogService{
		credits:  credits,
		sections: sections,
		uow:      uow,
		fetcher:  fetcher,
		logger:   zap.NewNop(),
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *catalogService) BuildTimesheet(ctx context.Context, subjects []domain.Subject, term domain.Term, opts app.TimesheetOptions) (*app.TimesheetResult, error) {
	res := &app.TimesheetResult{Term: term, Timesheet: make(domain.Timesheet, len(subjects))}
	fields := map[string]any{"term": term.String(), "subjects": len(subjects)}

	err := observe(ctx, s.observer, "build_timesheet", fields, func() error {
		codes := lo.Map(subjects, func(sub domain.Subject, _ int) string { return sub.Code })
		known, err := s.credits.GetMany(ctx, codes)
		if err != nil {
			return fmt.Errorf("loading credits: %w", err)
		}
		res.Credits = known

		for _, sub := range subjects {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !opts.Refresh {
				sections, err := s.sections.Get(ctx, sub.Code, term)
				if err == nil {
					res.Timesheet[sub.Code] = sections
					continue
				}
				if !errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("loading sections for %s in %s: %w", sub.Code, term, err)
				}
			}

			if opts.Offline || s.fetcher == nil {
				res.Timesheet[sub.Code] = []domain.Section{}
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: no cached schedule for %s; treated as not offered", sub.Code, term))
				continue
			}

			off, err := s.fetcher.Fetch(ctx, sub, term)
			if err != nil {
				return fmt.Errorf("fetching %s for %s: %w", sub.Code, term, err)
			}
			if err := s.store(ctx, off); err != nil {
				return err
			}
			res.Scraped++
			res.Timesheet[sub.Code] = off.Sections
			if off.Credits > 0 {
				res.Credits[sub.Code] = off.Credits
			}
			if !off.Offered {
				s.logger.Debug("subject not offered", zap.String("code", sub.Code), zap.Stringer("term", term))
			}
		}
		fields["scraped"] = res.Scraped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// store persists a fetched offering: the subject, its credit weight when
// the page carried one, and the section list (empty when not offered).
func (s *catalogService) store(ctx context.Context, off *domain.Offering) error {
	fetchedAt := off.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = s.now()
	}
	sections := off.Sections
	if !off.Offered || sections == nil {
		sections = []domain.Section{}
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if off.Subject.Institute != "" {
			if err := repository.NewSQLiteSubjectRepo(tx).Upsert(ctx, off.Subject); err != nil {
				return fmt.Errorf("saving subject %s: %w", off.Subject.Code, err)
			}
		}
		if off.Credits > 0 {
			if err := repository.NewSQLiteCreditRepo(tx).Upsert(ctx, off.Subject.Code, off.Credits); err != nil {
				return fmt.Errorf("saving credits for %s: %w", off.Subject.Code, err)
			}
		}
		txSections := s.sections.With(repository.NewSQLiteSectionRepo(tx))
		if err := txSections.Save(ctx, off.Subject.Code, off.Term, sections, fetchedAt); err != nil {
			return fmt.Errorf("saving sections for %s in %s: %w", off.Subject.Code, off.Term, err)
		}
		return nil
	})
}

func (s *catalogService) Offerings(ctx context.Context, code string) ([]domain.Offering, error) {
	offerings, err := s.sections.ListByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("listing offerings for %s: %w", code, err)
	}
	if len(offerings) == 0 {
		return nil, fmt.Errorf("subject %s: %w", code, repository.ErrNotFound)
	}
	if credits, err := s.credits.Get(ctx, code); err == nil {
		for i := range offerings {
			offerings[i].Credits = credits
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading credits for %s: %w", code, err)
	}
	return offerings, nil
}

func (s *catalogService) ImportCatalog(ctx context.Context, path string) (*app.ImportResult, error) {
	schema, err := importer.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	if errs := importer.ValidateCatalog(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	cat, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting catalog: %w", err)
	}

	res := &app.ImportResult{
		SubjectCount: len(cat.Subjects),
		CreditCount:  len(cat.Credits),
		TermCount:    len(cat.Terms),
	}
	fetchedAt := s.now()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSubjects := repository.NewSQLiteSubjectRepo(tx)
		txCredits := repository.NewSQLiteCreditRepo(tx)
		txSections := s.sections.With(repository.NewSQLiteSectionRepo(tx))

		for _, sub := range cat.Subjects {
			if err := txSubjects.Upsert(ctx, sub); err != nil {
				return fmt.Errorf("saving subject %s: %w", sub.Code, err)
			}
		}
		for _, code := range slices.Sorted(maps.Keys(cat.Credits)) {
			if err := txCredits.Upsert(ctx, code, cat.Credits[code]); err != nil {
				return fmt.Errorf("saving credits for %s: %w", code, err)
			}
		}
		terms := slices.SortedFunc(maps.Keys(cat.Terms), func(a, b domain.Term) int {
			if a.Before(b) {
				return -1
			}
			if b.Before(a) {
				return 1
			}
			return 0
		})
		for _, term := range terms {
			ts := cat.Terms[term]
			for _, code := range ts.Codes() {
				if err := txSections.Save(ctx, code, term, ts[code], fetchedAt); err != nil {
					return fmt.Errorf("saving sections for %s in %s: %w", code, term, err)
				}
				res.SectionCount += len(ts[code])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog imported",
		zap.String("path", path),
		zap.Int("subjects", res.SubjectCount),
		zap.Int("terms", res.TermCount),
		zap.Int("sections", res.SectionCount))
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
