package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

type SQLiteSectionRepo struct {
	db db.DBTX
}

func NewSQLiteSectionRepo(conn db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: conn}
}

func (r *SQLiteSectionRepo) Get(ctx context.Context, code string, term domain.Term) ([]domain.Section, error) {
	var offered int
	err := r.db.QueryRowContext(ctx,
		`SELECT offered FROM offerings WHERE code = ? AND term = ?`, code, term.String()).Scan(&offered)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sections of %s in %s: %w", code, term, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning offering: %w", err)
	}

	sections, err := r.loadSections(ctx, code, term)
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []domain.Section{}
	}
	return sections, nil
}

func (r *SQLiteSectionRepo) loadSections(ctx context.Context, code string, term domain.Term) ([]domain.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slots_json FROM sections WHERE code = ? AND term = ? ORDER BY position`, code, term.String())
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}
	defer rows.Close()

	var out []domain.Section
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		var slots []domain.Slot
		if err := json.Unmarshal([]byte(raw), &slots); err != nil {
			return nil, fmt.Errorf("decoding slots of %s in %s: %w", code, term, err)
		}
		out = append(out, domain.Section{Slots: slots})
	}
	return out, rows.Err()
}

// Save issues several statements; run it inside a UnitOfWork.
func (r *SQLiteSectionRepo) Save(ctx context.Context, code string, term domain.Term, sections []domain.Section, fetchedAt time.Time) error {
	ts := formatTime(fetchedAt)
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM offerings WHERE code = ? AND term = ?`, code, term.String()); err != nil {
		return fmt.Errorf("clearing sections of %s in %s: %w", code, term, err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO offerings (code, term, offered, fetched_at) VALUES (?, ?, ?, ?)`,
		code, term.String(), boolToInt(len(sections) > 0), ts); err != nil {
		return fmt.Errorf("inserting offering %s in %s: %w", code, term, err)
	}
	for i, s := range sections {
		raw, err := json.Marshal(s.Slots)
		if err != nil {
			return fmt.Errorf("encoding section %d of %s: %w", i, code, err)
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO sections (code, term, position, slots_json, fetched_at) VALUES (?, ?, ?, ?, ?)`,
			code, term.String(), i, string(raw), ts); err != nil {
			return fmt.Errorf("inserting section %d of %s in %s: %w", i, code, term, err)
		}
	}
	return nil
}

// ListByCode returns every stored term of a subject, oldest first.
func (r *SQLiteSectionRepo) ListByCode(ctx context.Context, code string) ([]domain.Offering, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT term, offered, fetched_at FROM offerings WHERE code = ?`, code)
	if err != nil {
		return nil, fmt.Errorf("listing offerings of %s: %w", code, err)
	}

	var out []domain.Offering
	for rows.Next() {
		var term, fetched string
		var offered int
		if err := rows.Scan(&term, &offered, &fetched); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning offering: %w", err)
		}
		t, err := domain.ParseTerm(term)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("offering of %s: %w", code, err)
		}
		out = append(out, domain.Offering{
			Subject:   domain.Subject{Code: code},
			Term:      t,
			Offered:   intToBool(offered),
			FetchedAt: parseTime(fetched),
		})
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Sections are loaded after the offerings cursor is closed; an in-memory
	// database has a single connection.
	for i := range out {
		sections, err := r.loadSections(ctx, code, out[i].Term)
		if err != nil {
			return nil, err
		}
		out[i].Sections = sections
	}
	slices.SortFunc(out, func(a, b domain.Offering) int {
		switch {
		case a.Term.Before(b.Term):
			return -1
		case b.Term.Before(a.Term):
			return 1
		}
		return 0
	})
	return out, nil
}
