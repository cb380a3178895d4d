package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRunRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := testutil.NewTestPlanRun(testutil.WithRunOutcome(domain.OutcomePartial, 3, "F 128", "MA111"))
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StartTerm, got.StartTerm)
	assert.Equal(t, run.Subjects, got.Subjects)
	assert.Equal(t, domain.OutcomePartial, got.Outcome)
	assert.Equal(t, 3, got.Abandoned)
	assert.Equal(t, []string{"F 128", "MA111"}, got.Uncovered)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.Plans, got.Plans)
}

func TestPlanRunRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRunRepo_List_NewestFirstWithLimit(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		run := testutil.NewTestPlanRun(testutil.WithRunCreatedAt(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, repo.Create(ctx, run))
		ids = append(ids, run.ID)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
