package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
)

// ConfigStore holds the tenant configuration as a copy-on-write snapshot. Readers
// take the current pointer; writers clone, mutate, validate and swap.
type ConfigStore struct {
	BaseService
	source   portsrepo.ConfigSource
	validate *validator.Validate

	mu      sync.RWMutex
	current *domain.TenantConfig

	// writeMu serializes writers so a failed save can restore the snapshot it replaced.
	writeMu sync.Mutex
}

// NewConfigStore creates a store over source. Until Load succeeds the snapshot is an
// empty configuration, which gates everything off.
func NewConfigStore(source portsrepo.ConfigSource) *ConfigStore {
	return &ConfigStore{
		source:   source,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		current:  &domain.TenantConfig{OperationMode: domain.ModeFullERP},
	}
}

var _ portssvc.ConfigStoreSvcFacade = (*ConfigStore)(nil)

func (s *ConfigStore) Snapshot() *domain.TenantConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *ConfigStore) swap(cfg *domain.TenantConfig) {
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
}

// Load replaces the snapshot with the configuration read from the source.
func (s *ConfigStore) Load(ctx context.Context) error {
	cfg, err := s.source.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no tenant configuration available", apperrors.ErrConfigNotFound)
		}
		s.LogError(ctx, err, "Failed to load tenant configuration")
		return apperrors.NewPersistenceError("failed to load tenant configuration", err)
	}
	if err := s.check(cfg); err != nil {
		s.LogError(ctx, err, "Loaded tenant configuration is invalid")
		return err
	}

	s.writeMu.Lock()
	s.swap(cfg)
	s.writeMu.Unlock()

	s.LogInfo(ctx, "Tenant configuration loaded",
		slog.String("tenant_id", cfg.TenantID),
		slog.String("operation_mode", string(cfg.OperationMode)),
		slog.Int("modules", len(cfg.Modules)),
		slog.Int("workflows", len(cfg.Workflows)),
		slog.Int("approval_rules", len(cfg.ApprovalRules)))
	return nil
}

func (s *ConfigStore) check(cfg *domain.TenantConfig) error {
	if err := s.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return cfg.Validate()
}

// update applies fn to a clone of the snapshot and publishes it before persisting.
// When the save fails the previous snapshot is restored and a persistence error returned.
func (s *ConfigStore) update(ctx context.Context, op string, fn func(cfg *domain.TenantConfig) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.Snapshot()
	next := prev.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.check(next); err != nil {
		return err
	}
	next.Version = prev.Version + 1

	s.swap(next)
	if err := s.source.Save(ctx, next); err != nil {
		s.swap(prev)
		s.LogError(ctx, err, "Failed to persist tenant configuration, change reverted", slog.String("operation", op))
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("tenant configuration changed concurrently: %w", err)
		}
		return apperrors.NewPersistenceError("failed to persist tenant configuration", err)
	}

	s.LogInfo(ctx, "Tenant configuration updated", slog.String("operation", op), slog.Int("version", next.Version))
	return nil
}

func (s *ConfigStore) SetModuleEnabled(ctx context.Context, moduleID string, enabled bool) error {
	return s.update(ctx, "set_module_enabled", func(cfg *domain.TenantConfig) error {
		for i := range cfg.Modules {
			if cfg.Modules[i].ID == moduleID {
				cfg.Modules[i].Enabled = enabled
				return nil
			}
		}
		return fmt.Errorf("module %q: %w", moduleID, apperrors.ErrConfigNotFound)
	})
}

func (s *ConfigStore) SetFeatureEnabled(ctx context.Context, featureID string, enabled bool) error {
	return s.update(ctx, "set_feature_enabled", func(cfg *domain.TenantConfig) error {
		for i := range cfg.Features {
			if cfg.Features[i].ID == featureID {
				cfg.Features[i].Enabled = enabled
				return nil
			}
		}
		return fmt.Errorf("feature %q: %w", featureID, apperrors.ErrConfigNotFound)
	})
}

func (s *ConfigStore) SetOperationMode(ctx context.Context, mode domain.OperationMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown operation mode %q", apperrors.ErrValidation, mode)
	}
	return s.update(ctx, "set_operation_mode", func(cfg *domain.TenantConfig) error {
		cfg.OperationMode = mode
		return nil
	})
}

// UpsertWorkflow replaces the definition for the workflow's entity type or adds it.
func (s *ConfigStore) UpsertWorkflow(ctx context.Context, workflow domain.WorkflowDefinition) error {
	workflow = workflow.Clone()
	return s.update(ctx, "upsert_workflow", func(cfg *domain.TenantConfig) error {
		for i := range cfg.Workflows {
			if cfg.Workflows[i].EntityType == workflow.EntityType {
				cfg.Workflows[i] = workflow
				return nil
			}
		}
		cfg.Workflows = append(cfg.Workflows, workflow)
		return nil
	})
}

// UpsertApprovalRule replaces the rule with the same id or appends it.
func (s *ConfigStore) UpsertApprovalRule(ctx context.Context, rule domain.ApprovalRule) error {
	rule.ApproverRoles = slices.Clone(rule.ApproverRoles)
	return s.update(ctx, "upsert_approval_rule", func(cfg *domain.TenantConfig) error {
		for i := range cfg.ApprovalRules {
			if cfg.ApprovalRules[i].ID == rule.ID {
				cfg.ApprovalRules[i] = rule
				return nil
			}
		}
		cfg.ApprovalRules = append(cfg.ApprovalRules, rule)
		return nil
	})
}

func (s *ConfigStore) SetLocalization(ctx context.Context, localization domain.Localization) error {
	return s.update(ctx, "set_localization", func(cfg *domain.TenantConfig) error {
		cfg.Localization = localization
		return nil
	})
}
