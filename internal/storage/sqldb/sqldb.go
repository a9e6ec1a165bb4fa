// Package sqldb implements storage.Store on top of database/sql.
// The sqlite and postgres packages open the connection and apply their
// schema; the queries here are shared and rebound to each driver's
// placeholder style.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/motoledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Placeholder is the bind-parameter style of a driver.
type Placeholder int

const (
	// Question binds parameters as ?, ?, ... (SQLite).
	Question Placeholder = iota
	// Dollar binds parameters as $1, $2, ... (PostgreSQL).
	Dollar
)

// Store implements storage.Store using a *sql.DB.
type Store struct {
	db          *sql.DB
	placeholder Placeholder
}

// New wraps an open database whose schema is already in place.
func New(db *sql.DB, placeholder Placeholder) *Store {
	return &Store{db: db, placeholder: placeholder}
}

// DB exposes the underlying sql.DB for tests and health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders for the store's driver.
// Queries in this package never contain a literal question mark.
func (s *Store) rebind(query string) string {
	if s.placeholder == Question {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, q querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q querier, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q querier, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.rebind(query), args...)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// expectAffected maps an UPDATE/DELETE that touched no rows to ErrNotFound.
func expectAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}
