package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/gradeplan/internal/cache"
	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/repository"
	"github.com/alexanderramin/gradeplan/internal/testutil"
)

var fixedNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

type pageKey struct {
	code string
	term domain.Term
}

// fakeFetcher serves offerings from memory. Unknown pages come back as not
// offered, the way a 404 does.
type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[pageKey]domain.Offering
	failOn string
	calls  map[pageKey]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[pageKey]domain.Offering{},
		calls: map[pageKey]int{},
	}
}

func (f *fakeFetcher) offer(code string, term domain.Term, credits int, sections ...domain.Section) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[pageKey{code, term}] = domain.Offering{Offered: true, Credits: credits, Sections: sections}
}

func (f *fakeFetcher) Fetch(ctx context.Context, subject domain.Subject, term domain.Term) (*domain.Offering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pageKey{subject.Code, term}
	f.calls[key]++
	if subject.Code == f.failOn {
		return nil, errors.New("connection reset")
	}
	off, ok := f.pages[key]
	if !ok {
		return &domain.Offering{Subject: subject, Term: term, FetchedAt: fixedNow}, nil
	}
	off.Subject = subject
	off.Term = term
	off.FetchedAt = fixedNow
	return &off, nil
}

func (f *fakeFetcher) callCount(code string, term domain.Term) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pageKey{code, term}]
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type catalogFixture struct {
	db       *sql.DB
	sections *repository.SQLiteSectionRepo
	credits  *repository.SQLiteCreditRepo
	subjects *repository.SQLiteSubjectRepo
	fetcher  *fakeFetcher
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &catalogFixture{
		db:       database,
		sections: repository.NewSQLiteSectionRepo(database),
		credits:  repository.NewSQLiteCreditRepo(database),
		subjects: repository.NewSQLiteSubjectRepo(database),
		fetcher:  newFakeFetcher(),
	}
}

func (f *catalogFixture) service(uow db.UnitOfWork, opts ...CatalogOption) CatalogService {
	if uow == nil {
		uow = testutil.NewTestUoW(f.db)
	}
	sections := cache.NewSectionCache(f.sections, cache.NewStore(nil, nil), 0)
	opts = append([]CatalogOption{WithCatalogClock(func() time.Time { return fixedNow })}, opts...)
	return NewCatalogService(f.credits, sections, uow, f.fetcher, opts...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

var (
	term1s2024 = domain.Term{Year: 2024, Half: 1}
	term2s2023 = domain.Term{Year: 2023, Half: 2}
	mc102      = domain.Subject{Code: "MC102", Institute: "IC"}
	ma111      = domain.Subject{Code: "MA111", Institute: "IMECC"}
)
