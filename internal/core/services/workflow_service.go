package services

import (
	"slices"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
)

// WorkflowService resolves legal status transitions from the current config snapshot.
type WorkflowService struct {
	BaseService
	store portssvc.ConfigStoreReaderSvc
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(store portssvc.ConfigStoreReaderSvc) *WorkflowService {
	return &WorkflowService{store: store}
}

var _ portssvc.WorkflowSvc = (*WorkflowService)(nil)

func (s *WorkflowService) GetWorkflow(entityType string) (*domain.WorkflowDefinition, bool) {
	wf, ok := s.store.Snapshot().Workflow(entityType)
	if !ok {
		return nil, false
	}
	clone := wf.Clone()
	return &clone, true
}

// GetValidTransitions keeps definition order and returns every matching transition,
// including duplicates of the same from/to pair.
func (s *WorkflowService) GetValidTransitions(entityType, currentStatus string, callerRoles []string) []domain.Transition {
	valid := []domain.Transition{}
	wf, ok := s.store.Snapshot().Workflow(entityType)
	if !ok {
		return valid
	}
	for _, t := range wf.TransitionsFrom(currentStatus) {
		if !t.AllowedFor(callerRoles) {
			continue
		}
		t.RequiredRoles = slices.Clone(t.RequiredRoles)
		valid = append(valid, t)
	}
	return valid
}

func (s *WorkflowService) Stepper(entityType string) []domain.WorkflowStatus {
	wf, ok := s.store.Snapshot().Workflow(entityType)
	if !ok {
		return []domain.WorkflowStatus{}
	}
	return wf.OrderedStatuses()
}
