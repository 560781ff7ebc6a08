// Package db provides the persistence operations for e-board entities.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/timez"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repository provides persistence operations for all models. A Repository
// returned by InTx is bound to that transaction; the root one runs each
// statement on its own.
type Repository struct {
	db *sql.DB
	q  Querier
	tx *sql.Tx

	// Prepared statements for hot lookups, shared with transaction-bound
	// copies.
	stmtCache *sync.Map // map[string]*sql.Stmt
}

// NewRepository creates a new Repository instance.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, q: db, stmtCache: &sync.Map{}}
}

// InTx runs fn inside a single transaction and commits when fn returns nil.
// Nested calls reuse the outer transaction.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to begin transaction", err)
	}
	bound := &Repository{db: r.db, q: tx, tx: tx, stmtCache: r.stmtCache}

	if err := fn(bound); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "failed to commit transaction", err)
	}
	return nil
}

// prepared gets or creates a cached prepared statement. Inside a
// transaction a cached statement is rebound to it; an uncached one is
// prepared on the transaction itself, since the pool's only connection
// is held by it.
func (r *Repository) prepared(ctx context.Context, query string) (*sql.Stmt, error) {
	if cached, ok := r.stmtCache.Load(query); ok {
		stmt := cached.(*sql.Stmt)
		if r.tx != nil {
			return r.tx.StmtContext(ctx, stmt), nil
		}
		return stmt, nil
	}
	if r.tx != nil {
		stmt, err := r.tx.PrepareContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare statement: %w", err)
		}
		return stmt, nil
	}

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		stmt.Close()
	}
	return actual.(*sql.Stmt), nil
}

// Close closes all cached prepared statements.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value interface{}) bool {
		if err := value.(*sql.Stmt).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.stmtCache.Delete(key)
		return true
	})
	return firstErr
}

// =====================================================
// Scan and bind helpers
// =====================================================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// unixTime scans an INTEGER column of unix seconds.
type unixTime int64

func (u unixTime) Time() time.Time {
	return timez.FromUnix(int64(u))
}

func unix(t time.Time) int64 {
	return t.UTC().Unix()
}

// nullable stores "" as NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// notFound maps sql.ErrNoRows to a NOT_FOUND AppError.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(what)
	}
	return dbError(err)
}

// dbError classifies driver errors. Constraint violations come from input
// the caller controls, so they are reported as such.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return apperrors.Wrap(apperrors.ErrDuplicate, "duplicate value", err)
	case strings.Contains(msg, "constraint failed"):
		return apperrors.Wrap(apperrors.ErrConstraint, "constraint violation", err)
	}
	return apperrors.Wrap(apperrors.ErrDatabase, "database error", err)
}

// mustAffect turns an UPDATE/DELETE that matched nothing into NOT_FOUND.
func mustAffect(result sql.Result, err error, what string) error {
	if err != nil {
		return dbError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return dbError(err)
	}
	if n == 0 {
		return apperrors.NotFound(what)
	}
	return nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
