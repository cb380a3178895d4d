package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/gradeplan/internal/db"
)

// FailingUoW runs the callback in a real transaction but makes writes fail:
// the Nth ExecContext call (counting from 1) when FailOn is set, or any
// statement containing FailMatch. Reads pass through.
type FailingUoW struct {
	DB        *sql.DB
	FailOn    int32
	FailMatch string
	Err       error

	// Calls counts ExecContext calls across every transaction.
	Calls atomic.Int32
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, &failingTx{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.Calls.Add(1)
	if n == f.uow.FailOn || (f.uow.FailMatch != "" && strings.Contains(query, f.uow.FailMatch)) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
