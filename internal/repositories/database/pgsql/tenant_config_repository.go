package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/shopdesk_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTenantConfigRepository stores the tenant configuration as one jsonb document.
// Until the first save, Load falls back to the seed source.
type PgxTenantConfigRepository struct {
	BaseRepository
	tenantID string
	seed     portsrepo.ConfigSource
}

func newPgxTenantConfigRepository(pool *pgxpool.Pool, tenantID string, seed portsrepo.ConfigSource) *PgxTenantConfigRepository {
	return &PgxTenantConfigRepository{BaseRepository: BaseRepository{Pool: pool}, tenantID: tenantID, seed: seed}
}

var _ portsrepo.ConfigSource = (*PgxTenantConfigRepository)(nil)

func (r *PgxTenantConfigRepository) Load(ctx context.Context) (*domain.TenantConfig, error) {
	query := `
		SELECT tenant_id, document, version, last_updated_at
		FROM tenant_configs
		WHERE tenant_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, r.tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant configuration %s: %w", r.tenantID, err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TenantConfig])
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to read tenant configuration %s: %w", r.tenantID, err)
		}
		if r.seed == nil {
			return nil, fmt.Errorf("tenant configuration %s: %w", r.tenantID, apperrors.ErrNotFound)
		}
		cfg, err := r.seed.Load(ctx)
		if err != nil {
			return nil, err
		}
		cfg.Version = 0
		return cfg, nil
	}

	cfg := &domain.TenantConfig{}
	if err := json.Unmarshal(row.Document, cfg); err != nil {
		return nil, fmt.Errorf("%w: stored tenant configuration %s is not valid: %v", apperrors.ErrValidation, r.tenantID, err)
	}
	cfg.Version = row.Version
	return cfg, nil
}

// Save inserts the first version and afterwards updates only the row at the preceding version.
func (r *PgxTenantConfigRepository) Save(ctx context.Context, cfg *domain.TenantConfig) error {
	document, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode tenant configuration: %w", err)
	}

	var query string
	if cfg.Version == 1 {
		query = `
			INSERT INTO tenant_configs (tenant_id, document, version, last_updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (tenant_id) DO NOTHING;
		`
	} else {
		query = `
			UPDATE tenant_configs
			SET document = $2, version = $3, last_updated_at = NOW()
			WHERE tenant_id = $1 AND version = $3 - 1;
		`
	}
	cmdTag, err := r.Pool.Exec(ctx, query, r.tenantID, document, cfg.Version)
	if err != nil {
		return fmt.Errorf("failed to save tenant configuration %s: %w", r.tenantID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tenant configuration %s was changed by another writer", apperrors.ErrConflict, r.tenantID)
	}
	return nil
}
