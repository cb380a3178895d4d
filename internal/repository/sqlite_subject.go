package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

func (r *SQLiteSubjectRepo) Upsert(ctx context.Context, s domain.Subject) error {
	query := `INSERT INTO subjects (code, institute, created_at) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET institute = excluded.institute`
	if _, err := r.db.ExecContext(ctx, query, s.Code, s.Institute, nowUTC()); err != nil {
		return fmt.Errorf("upserting subject %s: %w", s.Code, err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) Get(ctx context.Context, code string) (*domain.Subject, error) {
	var s domain.Subject
	err := r.db.QueryRowContext(ctx, `SELECT code, institute FROM subjects WHERE code = ?`, code).
		Scan(&s.Code, &s.Institute)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, institute FROM subjects ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var out []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.Code, &s.Institute); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
