// Package runner executes compiled SQL against a SQLite database and
// renders the results.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// sqlite driver for executing compiled queries.
	_ "modernc.org/sqlite"
)

// Runner executes SQL statements against one database handle.
type Runner struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens a SQLite database. An empty path opens an in-memory database.
func Open(path string, log *slog.Logger) (*Runner, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return New(db, log), nil
}

// New wraps an existing database handle.
func New(db *sql.DB, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{db: db, log: log}
}

// Query runs a statement and collects the full result set.
func (r *Runner) Query(ctx context.Context, sqlText string) (*Result, error) {
	r.log.Debug("executing query", "sql", sqlText)

	rows, err := r.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collect(rows)
}

// Exec runs a statement that returns no rows.
func (r *Runner) Exec(ctx context.Context, sqlText string) error {
	r.log.Debug("executing statement", "sql", sqlText)
	_, err := r.db.ExecContext(ctx, sqlText)
	return err
}

// Close releases the database handle.
func (r *Runner) Close() error {
	return r.db.Close()
}

// Result is a fully materialized result set.
type Result struct {
	Columns []string
	Rows    [][]any
}

func collect(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := &Result{Columns: cols}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// []byte columns read better as strings
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}
