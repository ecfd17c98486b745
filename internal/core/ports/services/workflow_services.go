package services

import "github.com/SscSPs/shopdesk_backend/internal/core/domain"

// WorkflowSvc answers which status transitions are legal for a caller.
type WorkflowSvc interface {
	GetWorkflow(entityType string) (*domain.WorkflowDefinition, bool)
	// GetValidTransitions never returns nil; an empty slice means no action is available.
	GetValidTransitions(entityType, currentStatus string, callerRoles []string) []domain.Transition
	// Stepper returns the statuses of the entity type ordered for progress display.
	Stepper(entityType string) []domain.WorkflowStatus
}
