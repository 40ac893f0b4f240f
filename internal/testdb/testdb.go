// Package testdb provides helpers for running store tests against a real
// PostgreSQL database. Tests that use it skip themselves when no database
// URL is configured, so the default `go test ./...` run stays green without
// external services.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/teachme-api/internal/platform/postgres/migrations"
)

// Timeout bounds individual database operations inside tests.
const Timeout = 5 * time.Second

var migrateOnce sync.Once

// URL returns the database URL for integration tests. It checks
// DATABASE_URL first and falls back to TEACHME_TEST_DB_URL; an empty result
// means no integration database is available.
func URL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("TEACHME_TEST_DB_URL")
}

// ShouldSkip reports whether database-backed tests should be skipped
// because no database URL is configured.
func ShouldSkip() bool {
	return URL() == ""
}

// Get opens a connection to the integration database, applies the embedded
// migrations once per test binary, and registers cleanup on t. Call
// ShouldSkip before Get; Get fails the test when no URL is configured.
func Get(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	require.NotEmpty(t, url, "no integration database URL configured")

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("failed to close test database: %v", closeErr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	migrateOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		goose.SetLogger(gooseLogger{t: t})
		err := goose.SetDialect("postgres")
		if err == nil {
			err = goose.Up(db, ".")
		}
		require.NoError(t, err, "failed to migrate test database")
	})

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so each
// test sees a migrated schema and leaves no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			t.Errorf("failed to roll back test transaction: %v", rollbackErr)
		}
	}()

	fn(t, tx)
}

// gooseLogger routes goose output through the test log.
type gooseLogger struct {
	t *testing.T
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
