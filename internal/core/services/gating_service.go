package services

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
)

// GatingService answers module and feature visibility from the current config snapshot.
type GatingService struct {
	BaseService
	store portssvc.ConfigStoreSvcFacade
}

// NewGatingService creates a new GatingService.
func NewGatingService(store portssvc.ConfigStoreSvcFacade) *GatingService {
	return &GatingService{store: store}
}

var _ portssvc.GatingSvc = (*GatingService)(nil)

// IsModuleEnabled holds when the module exists, is enabled and the operation mode lets it through.
func (s *GatingService) IsModuleEnabled(moduleID string) bool {
	return moduleEnabled(s.store.Snapshot(), moduleID)
}

// IsFeatureEnabled additionally requires the owning module to pass the module gate, so a
// feature is never visible when its module is not.
func (s *GatingService) IsFeatureEnabled(featureID string) bool {
	cfg := s.store.Snapshot()
	feature, ok := cfg.Feature(featureID)
	if !ok || !feature.Enabled {
		return false
	}
	return moduleEnabled(cfg, feature.Module)
}

func (s *GatingService) VisibleModules() []domain.ModuleConfig {
	cfg := s.store.Snapshot()
	visible := []domain.ModuleConfig{}
	for _, m := range cfg.Modules {
		if moduleEnabled(cfg, m.ID) {
			visible = append(visible, m)
		}
	}
	return visible
}

func (s *GatingService) ToggleModule(ctx context.Context, moduleID string, enabled bool) error {
	return s.store.SetModuleEnabled(ctx, moduleID, enabled)
}

func (s *GatingService) ToggleFeature(ctx context.Context, featureID string, enabled bool) error {
	return s.store.SetFeatureEnabled(ctx, featureID, enabled)
}

func moduleEnabled(cfg *domain.TenantConfig, moduleID string) bool {
	module, ok := cfg.Module(moduleID)
	return ok && module.Enabled && cfg.OperationMode.Allows(moduleID)
}
