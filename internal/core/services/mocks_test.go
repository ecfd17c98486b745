package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
)

// MockConfigSource is a mock type for the ConfigSource interface
type MockConfigSource struct {
	mock.Mock
}

func (m *MockConfigSource) Load(ctx context.Context) (*domain.TenantConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantConfig), args.Error(1)
}

func (m *MockConfigSource) Save(ctx context.Context, cfg *domain.TenantConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockApprovalRepository is a mock type for the ApprovalRepositoryFacade interface
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) FindApprovalRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) ListPendingApprovalRequests(ctx context.Context) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) ListApprovalRequestsByEntity(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) ListDecidedApprovalRequests(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error) {
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

func (m *MockApprovalRepository) SaveApprovalRequest(ctx context.Context, request domain.ApprovalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockApprovalRepository) DecideApprovalRequest(ctx context.Context, requestID string, decision domain.ApprovalDecision) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, requestID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

// MockProfileDirectory is a mock type for the ProfileDirectory interface
type MockProfileDirectory struct {
	mock.Mock
}

func (m *MockProfileDirectory) FindProfilesByIDs(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.UserProfile), args.Error(1)
}

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	var (
		mu sync.Mutex
		n  int
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

// newTestConfigStore returns a store loaded with testTenantConfig whose saves succeed.
func newTestConfigStore(ctx context.Context) (*services.ConfigStore, error) {
	source := new(MockConfigSource)
	source.On("Load", mock.Anything).Return(testTenantConfig(), nil)
	source.On("Save", mock.Anything, mock.Anything).Return(nil)
	store := services.NewConfigStore(source)
	return store, store.Load(ctx)
}

// testTenantConfig builds a small but complete configuration shared by the suites.
func testTenantConfig() *domain.TenantConfig {
	return &domain.TenantConfig{
		TenantID:      "t1",
		OperationMode: domain.ModeFullERP,
		Modules: []domain.ModuleConfig{
			{ID: domain.ModuleDashboard, Name: "Dashboard", Enabled: true},
			{ID: domain.ModulePOS, Name: "Point of Sale", Enabled: true},
			{ID: domain.ModuleInventory, Name: "Inventory", Enabled: true},
			{ID: domain.ModuleRepairs, Name: "Repairs", Enabled: true},
			{ID: "reports", Name: "Reports", Enabled: false},
			{ID: domain.ModuleSettings, Name: "Settings", Enabled: true},
		},
		Features: []domain.FeatureToggle{
			{ID: "pos_discounts", Module: domain.ModulePOS, Enabled: true},
			{ID: "pos_split_payment", Module: domain.ModulePOS, Enabled: false},
			{ID: "inventory_batches", Module: domain.ModuleInventory, Enabled: true},
			{ID: "repairs_estimates", Module: domain.ModuleRepairs, Enabled: true},
			{ID: "reports_export", Module: "reports", Enabled: true},
		},
		Workflows: []domain.WorkflowDefinition{
			{
				EntityType: domain.EntityPurchaseOrder,
				Name:       "Purchase order",
				Statuses: []domain.WorkflowStatus{
					{ID: "draft", Name: "Draft", Order: 1},
					{ID: "cancelled", Name: "Cancelled", Order: 9},
					{ID: "submitted", Name: "Submitted", Order: 2},
					{ID: "approved", Name: "Approved", Order: 4},
				},
				Transitions: []domain.Transition{
					{From: "draft", To: "submitted", Label: "Submit"},
					{From: "draft", To: "cancelled", Label: "Cancel"},
					{From: "draft", To: "cancelled", Label: "Discard", RequiredRoles: []string{"manager"}},
					{From: "submitted", To: "approved", Label: "Approve", RequiredRoles: []string{"manager", "admin"}, RequiresApproval: true},
					{From: "submitted", To: "draft", Label: "Send back", RequiredRoles: []string{"manager"}},
				},
			},
			{
				EntityType: domain.EntityInvoice,
				Name:       "Invoice",
				Statuses: []domain.WorkflowStatus{
					{ID: "draft", Order: 1},
					{ID: "issued", Order: 2},
				},
				Transitions: []domain.Transition{
					{From: "draft", To: "issued", Label: "Issue", RequiredRoles: []string{"cashier", "manager"}},
				},
			},
		},
		ApprovalRules: []domain.ApprovalRule{
			{
				ID: "po_total_over_5000", Name: "amount > 5000", EntityType: domain.EntityPurchaseOrder,
				Condition:     domain.Condition{Field: "total", Operator: domain.OpGreaterThan, Value: domain.IntValue(5000)},
				ApproverRoles: []string{"admin", "manager"}, Enabled: true,
			},
			{
				ID: "po_total_text", EntityType: domain.EntityPurchaseOrder,
				Condition:     domain.Condition{Field: "total", Operator: domain.OpGreaterThan, Value: domain.StringValue("abc")},
				ApproverRoles: []string{"auditor"}, Enabled: true,
			},
			{
				ID: "po_new_supplier", Name: "New supplier", EntityType: domain.EntityPurchaseOrder,
				Condition:     domain.Condition{Field: "newSupplier", Operator: domain.OpEqual, Value: domain.BoolValue(true)},
				ApproverRoles: []string{"purchase_lead"}, Enabled: true,
			},
			{
				ID: "invoice_amount_over_1000", Name: "amount > 1000", EntityType: domain.EntityInvoice,
				Condition:     domain.Condition{Field: "amount", Operator: domain.OpGreaterThan, Value: domain.IntValue(1000)},
				ApproverRoles: []string{"accountant"}, Enabled: true,
			},
			{
				ID: "invoice_any_amount", EntityType: domain.EntityInvoice,
				Condition:     domain.Condition{Field: "amount", Operator: domain.OpGreaterThan, Value: domain.IntValue(0)},
				ApproverRoles: []string{"owner"}, Enabled: false,
			},
		},
		Localization: domain.Localization{Locale: "en-IN", Currency: "INR", Timezone: "Asia/Kolkata"},
	}
}
