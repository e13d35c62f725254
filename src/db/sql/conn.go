package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Conn is satisfied by *sql.DB and *sql.Tx.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var ErrNotFound = errors.New("not found")

// IsUniqueViolation reports whether err comes from a UNIQUE constraint, for
// either SQLite or Postgres.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps anything else.
func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// timestamp scans a column that SQLite may hand back as text and Postgres as time.Time.
type timestamp struct{ dst *time.Time }

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts.dst = time.Time{}
	case time.Time:
		*ts.dst = v.UTC()
	case string:
		t, err := parseTimestamp(v)
		if err != nil {
			return err
		}
		*ts.dst = t.UTC()
	case []byte:
		return ts.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
	return nil
}

type nullTimestamp struct{ dst **time.Time }

func (ts nullTimestamp) Scan(src any) error {
	if src == nil {
		*ts.dst = nil
		return nil
	}
	var t time.Time
	if err := (timestamp{&t}).Scan(src); err != nil {
		return err
	}
	*ts.dst = &t
	return nil
}

// money scans NUMERIC values and rounds them to cents; SQLite sums REAL values.
type money struct{ dst *decimal.Decimal }

func (m money) Scan(src any) error {
	var d decimal.Decimal
	if src == nil {
		*m.dst = decimal.Zero
		return nil
	}
	if err := d.Scan(src); err != nil {
		return err
	}
	*m.dst = d.Round(2)
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
