package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/platform/logger"
	"github.com/kmazurek/teachme-api/internal/store"
)

// PostgresPreferenceStore implements the store.PreferenceStore interface
// over a simple key/value table of booleans.
type PostgresPreferenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPreferenceStore creates a new PostgreSQL implementation of the
// PreferenceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPreferenceStore(db store.DBTX, logger *slog.Logger) *PostgresPreferenceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPreferenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "preference_store")),
	}
}

// Ensure PostgresPreferenceStore implements store.PreferenceStore interface
var _ store.PreferenceStore = (*PostgresPreferenceStore)(nil)

// GetBool implements store.PreferenceStore.GetBool
// A key that has never been written yields defaultValue, not an error.
func (s *PostgresPreferenceStore) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var value bool
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return defaultValue, nil
		}
		log.Error("failed to read preference",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return defaultValue, MapError(err)
	}

	return value, nil
}

// SetBool implements store.PreferenceStore.SetBool
// It upserts the value so first writes and overwrites take the same path.
func (s *PostgresPreferenceStore) SetBool(ctx context.Context, key string, value bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO preferences (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		log.Error("failed to write preference",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return MapError(err)
	}

	log.Info("preference updated",
		slog.String("key", key),
		slog.Bool("value", value))
	return nil
}
