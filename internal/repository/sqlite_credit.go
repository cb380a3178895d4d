package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

type SQLiteCreditRepo struct {
	db db.DBTX
}

func NewSQLiteCreditRepo(conn db.DBTX) *SQLiteCreditRepo {
	return &SQLiteCreditRepo{db: conn}
}

func (r *SQLiteCreditRepo) Upsert(ctx context.Context, code string, credits int) error {
	query := `INSERT INTO credits (code, credits, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET credits = excluded.credits, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, code, credits, nowUTC()); err != nil {
		return fmt.Errorf("upserting credits for %s: %w", code, err)
	}
	return nil
}

func (r *SQLiteCreditRepo) Get(ctx context.Context, code string) (int, error) {
	var credits int
	err := r.db.QueryRowContext(ctx, `SELECT credits FROM credits WHERE code = ?`, code).Scan(&credits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("credits for %s: %w", code, ErrNotFound)
		}
		return 0, fmt.Errorf("scanning credits: %w", err)
	}
	return credits, nil
}

func (r *SQLiteCreditRepo) GetMany(ctx context.Context, codes []string) (domain.CreditMap, error) {
	out := make(domain.CreditMap, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(codes)), ",")
	args := make([]any, len(codes))
	for i, c := range codes {
		args[i] = c
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, credits FROM credits WHERE code IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("loading credits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var credits int
		if err := rows.Scan(&code, &credits); err != nil {
			return nil, fmt.Errorf("scanning credits: %w", err)
		}
		out[code] = credits
	}
	return out, rows.Err()
}
