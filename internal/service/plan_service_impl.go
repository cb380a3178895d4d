package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/repository"
	"github.com/alexanderramin/gradeplan/internal/scheduler"
)

type planService struct {
	catalog  app.CatalogUseCase
	runs     repository.PlanRunRepo
	limits   scheduler.Limits
	validate *validator.Validate
	logger   *zap.Logger
	observer UseCaseObserver
}

type PlanOption func(*planService)

// WithSearchLimits sets the budgets used when a request leaves them zero.
func WithSearchLimits(l scheduler.Limits) PlanOption {
	return func(s *planService) { s.limits = l }
}

func WithPlanLogger(logger *zap.Logger) PlanOption {
	return func(s *planService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithPlanObserver(obs UseCaseObserver) PlanOption {
	return func(s *planService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func NewPlanService(catalog app.CatalogUseCase, runs repository.PlanRunRepo, opts ...PlanOption) PlanService {
	s := &planService{
		catalog:  catalog,
		runs:     runs,
		validate: validator.New(),
		logger:   zap.NewNop(),
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) Plan(ctx context.Context, req app.PlanRequest) (*app.PlanResponse, error) {
	fields := map[string]any{"start_term": req.StartTerm.String(), "subjects": len(req.Subjects)}
	var resp *app.PlanResponse
	err := observe(ctx, s.observer, "plan", fields, func() error {
		var err error
		resp, err = s.plan(ctx, req)
		if resp != nil {
			fields["outcome"] = string(resp.Outcome)
			fields["plans"] = len(resp.Plans)
			fields["explored"] = resp.Explored
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planService) plan(ctx context.Context, req app.PlanRequest) (*app.PlanResponse, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, &app.PlanError{Code: app.PlanErrInvalidRequest, Message: err.Error(), Err: err}
	}
	if req.StartTerm.IsZero() || (req.StartTerm.Half != 1 && req.StartTerm.Half != 2) {
		return nil, &app.PlanError{Code: app.PlanErrInvalidRequest, Message: fmt.Sprintf("invalid start term %q", req.StartTerm)}
	}
	if err := domain.ValidateSubjects(req.Subjects); err != nil {
		return nil, &app.PlanError{Code: app.PlanErrInvalidRequest, Message: err.Error(), Err: err}
	}

	// Terms after the start alternate between the start term's half and the
	// other half, so the previous term stands in for every odd term.
	terms := [2]domain.Term{req.StartTerm, req.StartTerm.Previous()}
	var built [2]*app.TimesheetResult
	opts := app.TimesheetOptions{Offline: req.Offline, Refresh: req.Refresh}

	g, gctx := errgroup.WithContext(ctx)
	for i, term := range terms {
		g.Go(func() error {
			res, err := s.catalog.BuildTimesheet(gctx, req.Subjects, term, opts)
			if err != nil {
				return err
			}
			built[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &app.PlanError{Code: app.PlanErrInternal, Message: fmt.Sprintf("building timesheets: %v", err), Err: err}
	}

	var sheets [2]domain.Timesheet
	credits := domain.CreditMap{}
	var warnings []string
	for i, res := range built {
		res.Timesheet.Dedup()
		sheets[i] = res.Timesheet
		credits = lo.Assign(credits, res.Credits)
		warnings = append(warnings, res.Warnings...)
	}

	limits := s.limits
	if req.MaxTerms > 0 {
		limits.MaxTerms = req.MaxTerms
	}
	if req.MaxPlans > 0 {
		limits.MaxPlans = req.MaxPlans
	}

	result, err := scheduler.Search(ctx, scheduler.Input{
		Timesheets: sheets,
		Credits:    credits,
		MaxCredits: req.MaxCredits,
		Limits:     limits,
	})
	if err != nil {
		return nil, planErrorFrom(err)
	}

	ranked := scheduler.Rank(result.Plans, req.Top)
	plans := toRankedPlans(ranked, req.StartTerm)
	if result.Outcome == scheduler.OutcomePartial {
		warnings = append(warnings, fmt.Sprintf("search stopped early (%s); %d incomplete branches dropped, uncovered by them: %v",
			result.Stop, result.Abandoned, result.Uncovered))
	}

	run := &domain.PlanRun{
		ID:         uuid.NewString(),
		StartTerm:  req.StartTerm,
		Subjects:   lo.Map(req.Subjects, func(sub domain.Subject, _ int) string { return sub.Code }),
		MaxCredits: req.MaxCredits,
		Goal:       result.Goal,
		Outcome:    domain.Outcome(result.Outcome),
		Explored:   len(result.Plans) + result.Abandoned,
		Abandoned:  result.Abandoned,
		Uncovered:  result.Uncovered,
		Plans:      plans,
		CreatedAt:  now,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, &app.PlanError{Code: app.PlanErrInternal, Message: fmt.Sprintf("saving plan run: %v", err), Err: err}
	}

	s.logger.Debug("plan search finished",
		zap.String("run_id", run.ID),
		zap.Int("goal", result.Goal),
		zap.Int("terms", result.Terms),
		zap.Int("passes", result.Passes),
		zap.Int("branches", result.Branches))

	return &app.PlanResponse{
		RunID:       run.ID,
		GeneratedAt: now,
		StartTerm:   req.StartTerm,
		Goal:        result.Goal,
		Outcome:     run.Outcome,
		Plans:       plans,
		Explored:    run.Explored,
		Abandoned:   result.Abandoned,
		Uncovered:   result.Uncovered,
		Warnings:    warnings,
	}, nil
}

func (s *planService) ListRuns(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	return runs, nil
}

func (s *planService) GetRun(ctx context.Context, id string) (*domain.PlanRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan run: %w", err)
	}
	return run, nil
}

// toRankedPlans labels term i of every plan with start advanced i times.
func toRankedPlans(scored []scheduler.ScoredPlan, start domain.Term) []app.RankedPlan {
	out := make([]app.RankedPlan, len(scored))
	for i, sp := range scored {
		terms := make([]app.PlannedTerm, len(sp.Terms))
		label := start
		for j, st := range sp.Terms {
			terms[j] = app.PlannedTerm{
				Term:     label,
				Credits:  st.Credits,
				Score:    st.Score,
				Sections: st.Sections,
			}
			label = label.Next()
		}
		out[i] = app.RankedPlan{Rank: i + 1, Score: sp.Score, Terms: terms}
	}
	return out
}

func planErrorFrom(err error) error {
	var nf *scheduler.NoFeasiblePlanError
	switch {
	case errors.As(err, &nf), errors.Is(err, scheduler.ErrNoFeasiblePlan):
		return &app.PlanError{Code: app.PlanErrNoFeasible, Message: err.Error(), Err: err}
	case errors.Is(err, scheduler.ErrMissingCredits):
		return &app.PlanError{Code: app.PlanErrDataIntegrity, Message: err.Error(), Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return &app.PlanError{Code: app.PlanErrInternal, Message: err.Error(), Err: err}
}
