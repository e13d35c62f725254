package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw     string
		dialect Dialect
		dsn     string
		wantErr bool
	}{
		{raw: "sqlite://./budgetly.db", dialect: SQLite, dsn: "./budgetly.db"},
		{raw: "sqlite:///var/lib/budgetly/app.db", dialect: SQLite, dsn: "/var/lib/budgetly/app.db"},
		{raw: "data/budgetly.db", dialect: SQLite, dsn: "data/budgetly.db"},
		{raw: "postgres://u:p@localhost:5432/budgetly", dialect: Postgres, dsn: "postgres://u:p@localhost:5432/budgetly"},
		{raw: "postgresql://localhost/budgetly?sslmode=disable", dialect: Postgres, dsn: "postgresql://localhost/budgetly?sslmode=disable"},
		{raw: "", wantErr: true},
		{raw: "sqlite://", wantErr: true},
		{raw: "mysql://localhost/budgetly", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			target, err := ParseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, target.Dialect)
			assert.Equal(t, tt.dsn, target.DSN)
		})
	}
}

func TestConnectSQLiteMigratesAndSeeds(t *testing.T) {
	ctx := context.Background()
	url := "sqlite://" + filepath.Join(t.TempDir(), "nested", "budgetly.db")

	conn, dialect, err := Connect(ctx, url)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, SQLite, dialect)

	var categories, lessons int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE user_id IS NULL`).Scan(&categories))
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&lessons))
	assert.Equal(t, 14, categories)
	assert.Equal(t, 6, lessons)

	// Reconnecting must not reapply the seed.
	again, _, err := Connect(ctx, url)
	require.NoError(t, err)
	defer again.Close()
	require.NoError(t, again.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&lessons))
	assert.Equal(t, 6, lessons)
}

func TestConnectSQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	conn, _, err := Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.ExecContext(ctx, `INSERT INTO budgets (user_id, monthly_income) VALUES ($1, $2)`, 999, 100)
	assert.Error(t, err)
}

func TestConnectPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("budgetly"),
		postgres.WithUsername("budgetly"),
		postgres.WithPassword("budgetly"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, dialect, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, Postgres, dialect)

	var categories int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE user_id IS NULL`).Scan(&categories))
	assert.Equal(t, 14, categories)
}
