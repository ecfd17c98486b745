package services

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
)

// ConfigStoreReaderSvc exposes the current tenant configuration snapshot.
type ConfigStoreReaderSvc interface {
	// Snapshot returns the current immutable snapshot. Callers must not modify it.
	Snapshot() *domain.TenantConfig
}

// ConfigStoreWriterSvc defines the explicit update calls. Each one validates, swaps the
// snapshot and persists; a failed save restores the previous snapshot.
type ConfigStoreWriterSvc interface {
	Load(ctx context.Context) error
	SetModuleEnabled(ctx context.Context, moduleID string, enabled bool) error
	SetFeatureEnabled(ctx context.Context, featureID string, enabled bool) error
	SetOperationMode(ctx context.Context, mode domain.OperationMode) error
	UpsertWorkflow(ctx context.Context, workflow domain.WorkflowDefinition) error
	UpsertApprovalRule(ctx context.Context, rule domain.ApprovalRule) error
	SetLocalization(ctx context.Context, localization domain.Localization) error
}

// ConfigStoreSvcFacade combines all config store operations.
type ConfigStoreSvcFacade interface {
	ConfigStoreReaderSvc
	ConfigStoreWriterSvc
}
