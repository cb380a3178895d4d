package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRepo_UpsertGetList(t *testing.T) {
	repo := NewSQLiteSubjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Subject{Code: "MC102", Institute: "IC"}))
	require.NoError(t, repo.Upsert(ctx, domain.Subject{Code: "MA111", Institute: "IMECC"}))
	require.NoError(t, repo.Upsert(ctx, domain.Subject{Code: "MC102", Institute: "FEEC"}))

	got, err := repo.Get(ctx, "MC102")
	require.NoError(t, err)
	assert.Equal(t, "FEEC", got.Institute)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Subject{
		{Code: "MA111", Institute: "IMECC"},
		{Code: "MC102", Institute: "FEEC"},
	}, all)
}

func TestSubjectRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteSubjectRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "MC102")
	assert.ErrorIs(t, err, ErrNotFound)
}
