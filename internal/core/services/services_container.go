package services

import (
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The config store comes first; every other engine reads its snapshot.
	store := NewConfigStore(repos.ConfigSource)
	container.Config = store

	container.Gating = NewGatingService(store)
	container.Workflow = NewWorkflowService(store)
	container.Rules = NewApprovalRuleEvaluator(store)

	lifecycleOpts := []ApprovalLifecycleOption{WithRefreshInterval(cfg.ApprovalRefreshInterval)}
	if repos.Profiles != nil {
		lifecycleOpts = append(lifecycleOpts, WithProfileDirectory(repos.Profiles))
	}
	if repos.ChangeFeed != nil {
		lifecycleOpts = append(lifecycleOpts, WithChangeFeed(repos.ChangeFeed))
	}
	container.Approvals = NewApprovalLifecycleService(repos.ApprovalRepo, store, lifecycleOpts...)

	container.Authorization = NewAuthorizationService(
		container.Gating,
		container.Workflow,
		container.Rules,
		container.Approvals,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ConfigStoreSvcFacade       = (*ConfigStore)(nil)
	_ portssvc.GatingSvc                  = (*GatingService)(nil)
	_ portssvc.ApprovalLifecycleSvcFacade = (*ApprovalLifecycleService)(nil)
)
