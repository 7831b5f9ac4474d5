package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for store settings
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSettingsRepository implements portsrepo.SettingsRepositoryFacade
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSetting retrieves one setting value by key.
func (r *PgxSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to read setting "+key, err)
	}
	return value, nil
}

// GetSettings retrieves all settings as a key/value map.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT key, value FROM settings;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settings", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan setting row", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating setting rows", err)
	}

	return settings, nil
}

// UpsertSetting creates or replaces a setting value.
func (r *PgxSettingsRepository) UpsertSetting(ctx context.Context, key, value string, updatedBy string) error {
	query := `
		INSERT INTO settings (key, value, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, key, value, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert setting "+key, err)
	}

	return nil
}
