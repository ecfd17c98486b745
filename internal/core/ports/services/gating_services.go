package services

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
)

// GatingSvc answers module and feature visibility. Queries never fail: anything
// unknown is reported as disabled.
type GatingSvc interface {
	IsModuleEnabled(moduleID string) bool
	IsFeatureEnabled(featureID string) bool
	VisibleModules() []domain.ModuleConfig
	ToggleModule(ctx context.Context, moduleID string, enabled bool) error
	ToggleFeature(ctx context.Context, featureID string, enabled bool) error
}
