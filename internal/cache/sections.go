package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/repository"
)

const DefaultTTL = 24 * time.Hour

// SectionCache is a read-through repository.SectionRepo. Redis failures are
// logged and fall back to the wrapped repository.
type SectionCache struct {
	repo  repository.SectionRepo
	store *Store
	ttl   time.Duration
}

var _ repository.SectionRepo = (*SectionCache)(nil)

func NewSectionCache(repo repository.SectionRepo, store *Store, ttl time.Duration) *SectionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SectionCache{repo: repo, store: store, ttl: ttl}
}

// With binds the same cache to another repository, typically one scoped
// to a transaction.
func (c *SectionCache) With(repo repository.SectionRepo) *SectionCache {
	cp := *c
	cp.repo = repo
	return &cp
}

func sectionKey(code string, term domain.Term) string {
	return fmt.Sprintf("gradeplan:sections:%s:%s", term, code)
}

func (c *SectionCache) Get(ctx context.Context, code string, term domain.Term) ([]domain.Section, error) {
	key := sectionKey(code, term)

	var cached []domain.Section
	err := c.store.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.store.logger.Warn("section cache read failed", zap.String("key", key), zap.Error(err))
	}

	sections, err := c.repo.Get(ctx, code, term)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, sections, c.ttl); err != nil {
		c.store.logger.Warn("section cache fill failed", zap.String("key", key), zap.Error(err))
	}
	return sections, nil
}

func (c *SectionCache) Save(ctx context.Context, code string, term domain.Term, sections []domain.Section, fetchedAt time.Time) error {
	if err := c.repo.Save(ctx, code, term, sections, fetchedAt); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, sectionKey(code, term)); err != nil {
		c.store.logger.Warn("section cache invalidation failed", zap.String("code", code), zap.Error(err))
	}
	return nil
}

func (c *SectionCache) ListByCode(ctx context.Context, code string) ([]domain.Offering, error) {
	return c.repo.ListByCode(ctx, code)
}
