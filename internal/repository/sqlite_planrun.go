package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

type SQLitePlanRunRepo struct {
	db db.DBTX
}

func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

const planRunColumns = `id, start_term, subjects, max_credits, goal, outcome, explored,
	abandoned, uncovered, plans_json, created_at`

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	plans, err := json.Marshal(run.Plans)
	if err != nil {
		return fmt.Errorf("encoding plans of run %s: %w", run.ID, err)
	}
	query := `INSERT INTO plan_runs (` + planRunColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.StartTerm.String(),
		joinCodes(run.Subjects),
		run.MaxCredits,
		run.Goal,
		string(run.Outcome),
		run.Explored,
		run.Abandoned,
		joinCodes(run.Uncovered),
		string(plans),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

func (r *SQLitePlanRunRepo) GetByID(ctx context.Context, id string) (*domain.PlanRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planRunColumns+` FROM plan_runs WHERE id = ?`, id)
	run, err := scanPlanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan run %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs first. A non-positive limit lists all.
func (r *SQLitePlanRunRepo) List(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planRunColumns+` FROM plan_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlanRun
	for rows.Next() {
		run, err := scanPlanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlanRun(s scanner) (*domain.PlanRun, error) {
	var (
		run                         domain.PlanRun
		term, subjects, outcome     string
		uncovered, plans, createdAt string
	)
	err := s.Scan(
		&run.ID,
		&term,
		&subjects,
		&run.MaxCredits,
		&run.Goal,
		&outcome,
		&run.Explored,
		&run.Abandoned,
		&uncovered,
		&plans,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan run: %w", err)
	}

	if run.StartTerm, err = domain.ParseTerm(term); err != nil {
		return nil, fmt.Errorf("plan run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(plans), &run.Plans); err != nil {
		return nil, fmt.Errorf("decoding plans of run %s: %w", run.ID, err)
	}
	run.Subjects = splitCodes(subjects)
	run.Uncovered = splitCodes(uncovered)
	run.Outcome = domain.Outcome(outcome)
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
