package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect Dialect
	// DSN is what database/sql receives: a file path for SQLite, the URL for Postgres.
	DSN string
}

// ParseURL accepts sqlite://<path>, file paths, and postgres:// or postgresql:// URLs.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Target{}, fmt.Errorf("empty database url")
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		if _, err := url.Parse(raw); err != nil {
			return Target{}, fmt.Errorf("parse postgres url: %w", err)
		}
		return Target{Dialect: Postgres, DSN: raw}, nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return Target{}, fmt.Errorf("sqlite url has no path")
		}
		return Target{Dialect: SQLite, DSN: path}, nil
	case strings.Contains(raw, "://"):
		return Target{}, fmt.Errorf("unsupported database url scheme in %q", raw)
	default:
		return Target{Dialect: SQLite, DSN: raw}, nil
	}
}

func (t Target) driverName() string {
	if t.Dialect == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// dataSource adds the per-connection pragmas SQLite needs for cascading deletes.
func (t Target) dataSource() string {
	if t.Dialect == Postgres {
		return t.DSN
	}
	return "file:" + t.DSN + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Connect opens the database, verifies it answers, and applies pending migrations.
func Connect(ctx context.Context, rawURL string) (*sql.DB, Dialect, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, "", err
	}

	if target.Dialect == SQLite {
		if err := os.MkdirAll(filepath.Dir(target.DSN), 0o755); err != nil {
			return nil, "", fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sql.Open(target.driverName(), target.dataSource())
	if err != nil {
		return nil, "", fmt.Errorf("open %s database: %w", target.Dialect, err)
	}

	if target.Dialect == Postgres {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	// Test connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(target); err != nil {
		conn.Close()
		return nil, "", err
	}

	return conn, target.Dialect, nil
}
