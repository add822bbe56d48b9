// Package store owns the sentiment_reports table in SQLite.
//
// The table is produced by the bulk loader (cmd/seed) with one TEXT column
// per input header field, so reads come back untyped: each row is a
// map[column]value and typing happens in the analytics normalization step.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"

	"hr-insights-go/internal/logger"
)

const Table = "sentiment_reports"

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

// Open opens the SQLite database at path and verifies connectivity,
// retrying the ping with exponential backoff before giving up.
func Open(path string, log *logger.Logger) (*Store, error) {
	entry := log.WithComponent("store").WithField("db_path", path)

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second
	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return db.PingContext(ctx)
	}
	if err := backoff.Retry(ping, bo); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	entry.Info("database connection established")
	return &Store{db: db, log: entry}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// FetchAll reads every row of the feedback table. NULL columns are omitted
// from the row map so callers can tell absent from empty.
func (s *Store) FetchAll(ctx context.Context) ([]map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+Table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var out []map[string]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			if vals[i].Valid {
				row[c] = vals[i].String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Replace drops and recreates the feedback table from a tabular input,
// one TEXT column per header field, and inserts every row in one
// transaction. Used by the bulk loader.
func (s *Store) Replace(ctx context.Context, header []string, data [][]string) error {
	if len(header) == 0 {
		return fmt.Errorf("empty header")
	}

	cols := make([]string, len(header))
	marks := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h)
		marks[i] = "?"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+Table); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s TEXT)", Table, strings.Join(cols, " TEXT, "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range data {
		args := make([]any, len(header))
		for i := range header {
			if i < len(rec) {
				args[i] = rec[i]
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.WithField("rows", len(data)).Info("feedback table replaced")
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, ``) + `"`
}
