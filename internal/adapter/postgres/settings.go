package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
)

// Settings live in a single row; the pricing table is stored as jsonb.
type SettingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) SaveSettings(ctx context.Context, settings models.Settings) error {
	q := TxorDB(ctx, r.db)

	pricing, err := json.Marshal(settings.Pricing)
	if err != nil {
		return fmt.Errorf("settings repo: SaveSettings (marshal pricing): %w", err)
	}

	query := `INSERT INTO settings (id, site_name, view_mode, username, password_hash, pricing)
              VALUES (1, $1, $2, $3, $4, $5)
              ON CONFLICT (id) DO UPDATE
              SET site_name = EXCLUDED.site_name,
                  view_mode = EXCLUDED.view_mode,
                  username = EXCLUDED.username,
                  password_hash = EXCLUDED.password_hash,
                  pricing = EXCLUDED.pricing,
                  updated_at = now();`

	_, err = q.Exec(ctx, query,
		settings.SiteName, settings.ViewMode.String(),
		settings.Credentials.Username, settings.Credentials.PasswordHash, pricing)
	if err != nil {
		return fmt.Errorf("settings repo: SaveSettings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) FetchSettings(ctx context.Context) (models.Settings, error) {
	q := TxorDB(ctx, r.db)

	query := `SELECT site_name, view_mode, username, password_hash, pricing
              FROM settings WHERE id = 1;`

	var (
		settings models.Settings
		viewMode string
		pricing  []byte
	)
	err := q.QueryRow(ctx, query).Scan(
		&settings.SiteName, &viewMode,
		&settings.Credentials.Username, &settings.Credentials.PasswordHash, &pricing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Settings{}, types.ErrSettingsNotFound
		}
		return models.Settings{}, fmt.Errorf("settings repo: FetchSettings: %w", err)
	}

	settings.ViewMode = types.ViewMode(viewMode)
	if err := json.Unmarshal(pricing, &settings.Pricing); err != nil {
		return models.Settings{}, fmt.Errorf("settings repo: FetchSettings (unmarshal pricing): %w", err)
	}
	return settings, nil
}
