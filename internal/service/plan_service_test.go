package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/repository"
	"github.com/alexanderramin/gradeplan/internal/scheduler"
	"github.com/alexanderramin/gradeplan/internal/testutil"
)

func newPlanFixture(t *testing.T, opts ...PlanOption) (*catalogFixture, PlanService, *repository.SQLitePlanRunRepo) {
	t.Helper()
	f := newCatalogFixture(t)
	runs := repository.NewSQLitePlanRunRepo(f.db)
	return f, NewPlanService(f.service(nil), runs, opts...), runs
}

func planRequest(maxCredits int, subjects ...domain.Subject) app.PlanRequest {
	req := app.NewPlanRequest(term1s2024, subjects, maxCredits)
	now := fixedNow
	req.Now = &now
	return req
}

func assertPlanError(t *testing.T, err error, code app.PlanErrorCode) {
	t.Helper()
	var pe *app.PlanError
	require.True(t, errors.As(err, &pe), "expected *app.PlanError, got %v", err)
	assert.Equal(t, code, pe.Code)
}

func TestPlan_SpillsIntoNextTermFromPreviousTimesheet(t *testing.T) {
	f, svc, runs := newPlanFixture(t)
	f.fetcher.offer("MC102", term1s2024, 6, testutil.NewTestSection())
	f.fetcher.offer("MA111", term1s2024, 4,
		testutil.NewTestSection(testutil.WithSlot("Terça", "10:00 - 12:00")),
		testutil.NewTestSection(testutil.WithSlot("Quarta", "10:00 - 12:00")))
	fri := testutil.NewTestSection(testutil.WithSlot("Sexta", "14:00 - 16:00"))
	f.fetcher.offer("MA111", term2s2023, 4, fri)

	resp, err := svc.Plan(context.Background(), planRequest(6, mc102, ma111))
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeComplete, resp.Outcome)
	assert.Equal(t, 2, resp.Goal)
	require.Len(t, resp.Plans, 1)
	plan := resp.Plans[0]
	assert.Equal(t, 1, plan.Rank)
	require.Len(t, plan.Terms, 2)
	assert.Equal(t, term1s2024, plan.Terms[0].Term)
	assert.Contains(t, plan.Terms[0].Sections, "MC102", "MC102 has fewer sections so it is placed first")
	assert.Equal(t, domain.Term{Year: 2024, Half: 2}, plan.Terms[1].Term, "odd terms are labelled after the start")
	assert.Equal(t, fri, plan.Terms[1].Sections["MA111"], "odd terms use the previous year's timesheet")
	assert.Equal(t, 6, plan.Terms[0].Credits)
	assert.Equal(t, 4, plan.Terms[1].Credits)

	run, err := runs.GetByID(context.Background(), resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, []string{"MC102", "MA111"}, run.Subjects)
	assert.Equal(t, fixedNow, run.CreatedAt)
	assert.Equal(t, resp.Plans, run.Plans)
	assert.Equal(t, 1, run.Explored)
}

func TestPlan_ConflictsPushSecondChoiceSection(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	mon := testutil.NewTestSection()
	tue := testutil.NewTestSection(testutil.WithSlot("Terça", "10:00 - 12:00"))
	f.fetcher.offer("MC102", term1s2024, 6, mon)
	f.fetcher.offer("MA111", term1s2024, 4, mon, tue)

	resp, err := svc.Plan(context.Background(), planRequest(24, mc102, ma111))
	require.NoError(t, err)
	require.Len(t, resp.Plans, 1)
	require.Len(t, resp.Plans[0].Terms, 1)
	assert.Equal(t, tue, resp.Plans[0].Terms[0].Sections["MA111"])
	assert.Greater(t, resp.Plans[0].Score, 0.0)
}

func TestPlan_RanksBranchesAndHonoursTop(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	var sections []domain.Section
	for _, day := range []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"} {
		sections = append(sections, testutil.NewTestSection(testutil.WithSlot(day, "08:00 - 10:00")))
	}
	f.fetcher.offer("MC102", term1s2024, 6, sections...)

	req := planRequest(24, mc102)
	req.Top = 3
	resp, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Plans, 3)
	assert.Equal(t, 6, resp.Explored)
	for i, p := range resp.Plans {
		assert.Equal(t, i+1, p.Rank)
	}
}

func TestPlan_DuplicatePreviousSectionsAreDeduplicated(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	mon := testutil.NewTestSection()
	f.fetcher.offer("MC102", term1s2024, 6, mon, mon, mon)

	resp, err := svc.Plan(context.Background(), planRequest(24, mc102))
	require.NoError(t, err)
	assert.Len(t, resp.Plans, 1)
}

func TestPlan_InvalidRequests(t *testing.T) {
	_, svc, _ := newPlanFixture(t)
	ctx := context.Background()

	_, err := svc.Plan(ctx, planRequest(0, mc102))
	assertPlanError(t, err, app.PlanErrInvalidRequest)

	_, err = svc.Plan(ctx, planRequest(24))
	assertPlanError(t, err, app.PlanErrInvalidRequest)

	dup := domain.Subject{Code: "MC102", Institute: "IMECC"}
	_, err = svc.Plan(ctx, planRequest(24, mc102, dup))
	assertPlanError(t, err, app.PlanErrInvalidRequest)

	req := planRequest(24, mc102)
	req.StartTerm = domain.Term{}
	_, err = svc.Plan(ctx, req)
	assertPlanError(t, err, app.PlanErrInvalidRequest)
}

func TestPlan_MissingCreditsIsDataIntegrity(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	f.fetcher.offer("MC102", term1s2024, 0, testutil.NewTestSection())

	_, err := svc.Plan(context.Background(), planRequest(24, mc102))
	assertPlanError(t, err, app.PlanErrDataIntegrity)
	assert.ErrorIs(t, err, scheduler.ErrMissingCredits)
}

func TestPlan_UnofferedSubjectWithoutCreditsIsInfeasible(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	f.fetcher.offer("MC102", term1s2024, 6, testutil.NewTestSection())

	req := planRequest(24, mc102, ma111)
	req.MaxTerms = 2
	_, err := svc.Plan(context.Background(), req)
	assertPlanError(t, err, app.PlanErrNoFeasible)
	assert.NotErrorIs(t, err, scheduler.ErrMissingCredits)

	var nf *scheduler.NoFeasiblePlanError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"MA111"}, nf.Uncovered)
}

func TestPlan_NeverOfferedSubjectIsInfeasible(t *testing.T) {
	f, svc, runs := newPlanFixture(t)
	require.NoError(t, f.credits.Upsert(context.Background(), "MC999", 4))

	req := planRequest(24, domain.Subject{Code: "MC999", Institute: "IC"})
	req.MaxTerms = 2
	_, err := svc.Plan(context.Background(), req)
	assertPlanError(t, err, app.PlanErrNoFeasible)
	assert.ErrorIs(t, err, scheduler.ErrNoFeasiblePlan)

	var nf *scheduler.NoFeasiblePlanError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"MC999"}, nf.Uncovered)

	list, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list, "failed searches are not recorded")
}

func TestPlan_PartialResultWarns(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	f.fetcher.offer("MA111", term1s2024, 4,
		testutil.NewTestSection(),
		testutil.NewTestSection(testutil.WithSlot("Terça", "08:00 - 10:00")))
	// Both MC102 sections clash with the Monday MA111 branch, which would
	// need a second term.
	f.fetcher.offer("MC102", term1s2024, 6,
		testutil.NewTestSection(testutil.WithSlot("Segunda", "09:00 - 11:00")),
		testutil.NewTestSection(testutil.WithSlot("Segunda", "08:00 - 09:00")))

	req := planRequest(24, mc102, ma111)
	req.MaxTerms = 1
	resp, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePartial, resp.Outcome)
	require.Len(t, resp.Plans, 2)
	assert.Equal(t, 1, resp.Abandoned)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[len(resp.Warnings)-1], "term_limit")
}

func TestPlan_FetchFailureIsInternal(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	f.fetcher.failOn = "MC102"

	_, err := svc.Plan(context.Background(), planRequest(24, mc102))
	assertPlanError(t, err, app.PlanErrInternal)
}

func TestPlan_OfflineUsesCacheOnly(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	ctx := context.Background()
	_, err := f.service(nil).ImportCatalog(ctx, "../importer/testdata/catalog.yaml")
	require.NoError(t, err)

	req := planRequest(24, mc102, ma111)
	req.Offline = true
	resp, err := svc.Plan(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, f.fetcher.totalCalls())
	require.NotEmpty(t, resp.Plans)
	for _, p := range resp.Plans {
		require.Len(t, p.Terms, 2, "MA111 is only offered in the second half")
		assert.Contains(t, p.Terms[1].Sections, "MA111")
	}
	assert.NotEmpty(t, resp.Warnings, "MC102 has no 2s2023 entry")
}

func TestPlan_ObservesOutcome(t *testing.T) {
	obs := &recordingObserver{}
	f, svc, _ := newPlanFixture(t, WithPlanObserver(obs))
	f.fetcher.offer("MC102", term1s2024, 6, testutil.NewTestSection())

	_, err := svc.Plan(context.Background(), planRequest(24, mc102))
	require.NoError(t, err)

	events := obs.named("plan")
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, "complete", events[0].Fields["outcome"])
}

func TestGetRun_NotFound(t *testing.T) {
	_, svc, _ := newPlanFixture(t)
	_, err := svc.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	f, svc, _ := newPlanFixture(t)
	f.fetcher.offer("MC102", term1s2024, 6, testutil.NewTestSection())
	ctx := context.Background()

	first, err := svc.Plan(ctx, planRequest(24, mc102))
	require.NoError(t, err)
	req := planRequest(24, mc102)
	later := fixedNow.Add(time.Second)
	req.Now = &later
	second, err := svc.Plan(ctx, req)
	require.NoError(t, err)

	runs, err := svc.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].ID)
	assert.Equal(t, first.RunID, runs[1].ID)
}
