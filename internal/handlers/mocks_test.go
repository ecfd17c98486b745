package handlers_test

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthorizationService ---
type MockAuthorizationService struct {
	mock.Mock
}

func (m *MockAuthorizationService) CanAccessModule(moduleID string, callerRoles, requiredRoles []string) bool {
	args := m.Called(moduleID, callerRoles, requiredRoles)
	return args.Bool(0)
}

func (m *MockAuthorizationService) CanAccessFeature(featureID string, callerRoles, requiredRoles []string) bool {
	args := m.Called(featureID, callerRoles, requiredRoles)
	return args.Bool(0)
}

func (m *MockAuthorizationService) ResolveNextActions(entityType, currentStatus string, callerRoles []string) []domain.NextAction {
	args := m.Called(entityType, currentStatus, callerRoles)
	return args.Get(0).([]domain.NextAction)
}

func (m *MockAuthorizationService) CheckApprovalRequired(ctx context.Context, entityType string, data map[string]any) domain.ApprovalCheck {
	args := m.Called(ctx, entityType, data)
	return args.Get(0).(domain.ApprovalCheck)
}

func (m *MockAuthorizationService) GuardMutation(ctx context.Context, caller domain.Caller, req dto.GuardMutationRequest) (*domain.MutationDecision, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationDecision), args.Error(1)
}

func (m *MockAuthorizationService) RequestTransition(ctx context.Context, caller domain.Caller, req dto.TransitionRequest) (*domain.MutationDecision, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationDecision), args.Error(1)
}

var _ portssvc.AuthorizationSvc = (*MockAuthorizationService)(nil)

// --- Mock ApprovalLifecycleService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) CreateApprovalRequest(ctx context.Context, caller domain.Caller, req dto.CreateApprovalRequest) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) RaiseApprovalRequest(ctx context.Context, caller domain.Caller, draft domain.ApprovalDraft) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, caller, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) ApproveRequest(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, caller, requestID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) RejectRequest(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, caller, requestID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) GetApprovalRequest(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) List(ctx context.Context) ([]domain.PendingApproval, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingApproval), args.Error(1)
}

func (m *MockApprovalService) Pending() []domain.PendingApproval {
	args := m.Called()
	return args.Get(0).([]domain.PendingApproval)
}

func (m *MockApprovalService) History(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) ListDecided(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.ApprovalRequest), token, args.Error(2)
}

func (m *MockApprovalService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockApprovalService) Watch(ctx context.Context) <-chan []domain.PendingApproval {
	args := m.Called(ctx)
	return args.Get(0).(<-chan []domain.PendingApproval)
}

func (m *MockApprovalService) Start(ctx context.Context) (func(), error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

var _ portssvc.ApprovalLifecycleSvcFacade = (*MockApprovalService)(nil)

// --- Mock GatingService ---
type MockGatingService struct {
	mock.Mock
}

func (m *MockGatingService) IsModuleEnabled(moduleID string) bool {
	return m.Called(moduleID).Bool(0)
}

func (m *MockGatingService) IsFeatureEnabled(featureID string) bool {
	return m.Called(featureID).Bool(0)
}

func (m *MockGatingService) VisibleModules() []domain.ModuleConfig {
	return m.Called().Get(0).([]domain.ModuleConfig)
}

func (m *MockGatingService) ToggleModule(ctx context.Context, moduleID string, enabled bool) error {
	return m.Called(ctx, moduleID, enabled).Error(0)
}

func (m *MockGatingService) ToggleFeature(ctx context.Context, featureID string, enabled bool) error {
	return m.Called(ctx, featureID, enabled).Error(0)
}

var _ portssvc.GatingSvc = (*MockGatingService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) GetWorkflow(entityType string) (*domain.WorkflowDefinition, bool) {
	args := m.Called(entityType)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.WorkflowDefinition), args.Bool(1)
}

func (m *MockWorkflowService) GetValidTransitions(entityType, currentStatus string, callerRoles []string) []domain.Transition {
	return m.Called(entityType, currentStatus, callerRoles).Get(0).([]domain.Transition)
}

func (m *MockWorkflowService) Stepper(entityType string) []domain.WorkflowStatus {
	return m.Called(entityType).Get(0).([]domain.WorkflowStatus)
}

var _ portssvc.WorkflowSvc = (*MockWorkflowService)(nil)

// --- Mock ConfigStore ---
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) Snapshot() *domain.TenantConfig {
	return m.Called().Get(0).(*domain.TenantConfig)
}

func (m *MockConfigStore) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockConfigStore) SetModuleEnabled(ctx context.Context, moduleID string, enabled bool) error {
	return m.Called(ctx, moduleID, enabled).Error(0)
}

func (m *MockConfigStore) SetFeatureEnabled(ctx context.Context, featureID string, enabled bool) error {
	return m.Called(ctx, featureID, enabled).Error(0)
}

func (m *MockConfigStore) SetOperationMode(ctx context.Context, mode domain.OperationMode) error {
	return m.Called(ctx, mode).Error(0)
}

func (m *MockConfigStore) UpsertWorkflow(ctx context.Context, workflow domain.WorkflowDefinition) error {
	return m.Called(ctx, workflow).Error(0)
}

func (m *MockConfigStore) UpsertApprovalRule(ctx context.Context, rule domain.ApprovalRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockConfigStore) SetLocalization(ctx context.Context, localization domain.Localization) error {
	return m.Called(ctx, localization).Error(0)
}

var _ portssvc.ConfigStoreSvcFacade = (*MockConfigStore)(nil)
