package repositories

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
)

// ConfigSource loads and saves a tenant configuration as an opaque document.
// Load returns apperrors.ErrNotFound when nothing has been persisted yet.
// Save expects cfg.Version to be exactly one above the stored version and returns
// apperrors.ErrConflict otherwise.
type ConfigSource interface {
	Load(ctx context.Context) (*domain.TenantConfig, error)
	Save(ctx context.Context, cfg *domain.TenantConfig) error
}
