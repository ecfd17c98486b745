package services

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
)

// AuthorizationSvc is the single query boundary used by consumers.
type AuthorizationSvc interface {
	CanAccessModule(moduleID string, callerRoles, requiredRoles []string) bool
	CanAccessFeature(featureID string, callerRoles, requiredRoles []string) bool
	ResolveNextActions(entityType, currentStatus string, callerRoles []string) []domain.NextAction
	CheckApprovalRequired(ctx context.Context, entityType string, data map[string]any) domain.ApprovalCheck
	// GuardMutation must be called before committing an entity write. When sign-off is
	// required it raises the approval request and reports Proceed=false.
	GuardMutation(ctx context.Context, caller domain.Caller, req dto.GuardMutationRequest) (*domain.MutationDecision, error)
	RequestTransition(ctx context.Context, caller domain.Caller, req dto.TransitionRequest) (*domain.MutationDecision, error)
}
