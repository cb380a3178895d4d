package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/repository"
	"github.com/alexanderramin/gradeplan/internal/testutil"
)

var term = domain.Term{Year: 2024, Half: 1}

func TestSectionCache_NilClientPassesThrough(t *testing.T) {
	repo := repository.NewSQLiteSectionRepo(testutil.NewTestDB(t))
	c := NewSectionCache(repo, NewStore(nil, nil), 0)
	ctx := context.Background()

	_, err := c.Get(ctx, "MC102", term)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	sections := []domain.Section{testutil.NewTestSection()}
	require.NoError(t, c.Save(ctx, "MC102", term, sections, time.Now()))

	got, err := c.Get(ctx, "MC102", term)
	require.NoError(t, err)
	assert.Equal(t, sections, got)
}

func TestSectionCache_UnreachableRedisFallsBack(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	core, logs := observer.New(zap.WarnLevel)
	repo := repository.NewSQLiteSectionRepo(testutil.NewTestDB(t))
	c := NewSectionCache(repo, NewStore(client, zap.New(core)), time.Minute)
	ctx := context.Background()

	sections := []domain.Section{testutil.NewTestSection(testutil.WithSlot("Quarta", "14:00 - 16:00"))}
	require.NoError(t, c.Save(ctx, "MC102", term, sections, time.Now()))

	got, err := c.Get(ctx, "MC102", term)
	require.NoError(t, err)
	assert.Equal(t, sections, got)

	assert.Equal(t, 1, logs.FilterMessage("section cache invalidation failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("section cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("section cache fill failed").Len())
}

func TestSectionCache_WithRebindsRepository(t *testing.T) {
	first := repository.NewSQLiteSectionRepo(testutil.NewTestDB(t))
	second := repository.NewSQLiteSectionRepo(testutil.NewTestDB(t))
	c := NewSectionCache(first, NewStore(nil, nil), 0)
	ctx := context.Background()

	require.NoError(t, c.With(second).Save(ctx, "MC102", term, nil, time.Now()))

	_, err := c.Get(ctx, "MC102", term)
	assert.ErrorIs(t, err, repository.ErrNotFound, "original binding is untouched")
	got, err := c.With(second).Get(ctx, "MC102", term)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSectionKey(t *testing.T) {
	assert.Equal(t, "gradeplan:sections:1s2024:F 128", sectionKey("F 128", term))
}

func TestStore_NilClientMisses(t *testing.T) {
	s := NewStore(nil, nil)
	var dest []domain.Section
	assert.ErrorIs(t, s.Get(context.Background(), "k", &dest), ErrCacheMiss)
	assert.NoError(t, s.Set(context.Background(), "k", dest, time.Minute))
	assert.NoError(t, s.Delete(context.Background(), "k"))
	assert.NoError(t, s.Close())
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Addr: "localhost:6379"}.Enabled())
}
