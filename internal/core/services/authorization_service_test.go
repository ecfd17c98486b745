package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/core/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type AuthorizationServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *services.ConfigStore
	approvals *services.ApprovalLifecycleService
	service   *services.AuthorizationService
}

func (suite *AuthorizationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	store, err := newTestConfigStore(suite.ctx)
	suite.Require().NoError(err)
	suite.store = store

	suite.approvals = services.NewApprovalLifecycleService(memory.NewApprovalRepository(nil), suite.store,
		services.WithProfileDirectory(memory.NewProfileDirectory(domain.UserProfile{UserID: cashier.UserID, Name: "Priya Cashier"})))
	suite.service = services.NewAuthorizationService(
		services.NewGatingService(suite.store),
		services.NewWorkflowService(suite.store),
		services.NewApprovalRuleEvaluator(suite.store),
		suite.approvals,
	)
}

func (suite *AuthorizationServiceTestSuite) TestCanAccessModule() {
	suite.True(suite.service.CanAccessModule(domain.ModulePOS, []string{"cashier"}, nil))
	suite.True(suite.service.CanAccessModule(domain.ModulePOS, []string{"cashier"}, []string{"cashier", "manager"}))
	suite.False(suite.service.CanAccessModule(domain.ModulePOS, []string{"technician"}, []string{"cashier", "manager"}))
	suite.False(suite.service.CanAccessModule("reports", []string{"admin"}, nil), "disabled module")

	suite.Require().NoError(suite.store.SetOperationMode(suite.ctx, domain.ModePOSOnly))
	suite.False(suite.service.CanAccessModule(domain.ModuleInventory, []string{"admin"}, nil))
}

func (suite *AuthorizationServiceTestSuite) TestCanAccessFeature() {
	suite.True(suite.service.CanAccessFeature("pos_discounts", []string{"cashier"}, []string{"cashier"}))
	suite.False(suite.service.CanAccessFeature("pos_discounts", nil, []string{"manager"}))
	suite.False(suite.service.CanAccessFeature("reports_export", []string{"admin"}, nil), "module of the feature is disabled")
}

func (suite *AuthorizationServiceTestSuite) TestResolveNextActions_FlagsApproval() {
	actions := suite.service.ResolveNextActions(domain.EntityPurchaseOrder, "submitted", []string{"manager"})

	suite.Require().Len(actions, 2)
	suite.Equal("approved", actions[0].To)
	suite.True(actions[0].NeedsApproval)
	suite.False(actions[1].NeedsApproval)

	suite.Empty(suite.service.ResolveNextActions(domain.EntityPurchaseOrder, "submitted", []string{"cashier"}))
}

func (suite *AuthorizationServiceTestSuite) TestGuardMutation_BelowThresholdProceeds() {
	decision, err := suite.service.GuardMutation(suite.ctx, cashier, dto.GuardMutationRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", Data: map[string]any{"total": 4000},
	})

	suite.Require().NoError(err)
	suite.True(decision.Proceed)
	suite.Nil(decision.Request)
	suite.Empty(suite.approvals.Pending())
}

// A cashier's 6000 purchase order is held, a manager signs it off and it leaves the queue.
func (suite *AuthorizationServiceTestSuite) TestGuardMutation_EndToEndApproval() {
	decision, err := suite.service.GuardMutation(suite.ctx, cashier, dto.GuardMutationRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-42", Data: map[string]any{"total": 6000},
	})

	suite.Require().NoError(err)
	suite.False(decision.Proceed)
	suite.Require().NotNil(decision.Request)
	request := decision.Request
	suite.Equal("amount > 5000", request.RuleName)
	suite.Equal("po_total_over_5000", request.RuleID)
	suite.ElementsMatch([]string{"admin", "manager"}, request.ApproverRoles)
	suite.Equal(cashier.UserID, request.RequestedBy)
	suite.Equal("mutation", request.Metadata["action"])

	pending, err := suite.approvals.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("Priya Cashier", pending[0].RequesterName)

	comment := "ok"
	approved, err := suite.approvals.ApproveRequest(suite.ctx, manager, request.ID, &comment)
	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalApproved, approved.Status)
	suite.Equal(manager.UserID, *approved.ReviewedBy)
	suite.Equal("ok", *approved.Comment)

	pending, err = suite.approvals.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *AuthorizationServiceTestSuite) TestGuardMutation_ConfigChangeAppliesToNextCheck() {
	rule := suite.store.Snapshot().RulesFor(domain.EntityPurchaseOrder)[0]
	rule.Enabled = false
	suite.Require().NoError(suite.store.UpsertApprovalRule(suite.ctx, rule))

	decision, err := suite.service.GuardMutation(suite.ctx, cashier, dto.GuardMutationRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", Data: map[string]any{"total": 6000},
	})

	suite.Require().NoError(err)
	suite.True(decision.Proceed)
}

func (suite *AuthorizationServiceTestSuite) TestRequestTransition_PlainTransitionProceeds() {
	decision, err := suite.service.RequestTransition(suite.ctx, cashier, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "draft", To: "submitted",
		Data: map[string]any{"total": 100},
	})

	suite.Require().NoError(err)
	suite.True(decision.Proceed)
}

func (suite *AuthorizationServiceTestSuite) TestRequestTransition_FlaggedTransitionRaisesRequest() {
	decision, err := suite.service.RequestTransition(suite.ctx, manager, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "submitted", To: "approved",
		Data: map[string]any{"total": 100},
	})

	suite.Require().NoError(err)
	suite.False(decision.Proceed)
	suite.Require().NotNil(decision.Request)
	suite.Equal("transition:submitted->approved", decision.Request.RuleID)
	suite.Equal("Approve", decision.Request.RuleName)
	suite.Equal([]string{"admin", "manager"}, decision.Request.ApproverRoles)
	suite.Equal("transition", decision.Request.Metadata["action"])
	suite.Equal("approved", decision.Request.Metadata["to"])
}

func (suite *AuthorizationServiceTestSuite) TestRequestTransition_RuleAndFlagUnionRoles() {
	decision, err := suite.service.RequestTransition(suite.ctx, manager, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "submitted", To: "approved",
		Data: map[string]any{"total": 9000, "newSupplier": true},
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(decision.Request)
	suite.Equal("po_total_over_5000", decision.Request.RuleID)
	suite.Equal([]string{"po_total_over_5000", "po_new_supplier"}, decision.Request.MatchedRuleIDs)
	suite.Equal([]string{"admin", "manager", "purchase_lead"}, decision.Request.ApproverRoles)
}

func (suite *AuthorizationServiceTestSuite) TestRequestTransition_RoleNotAllowed() {
	_, err := suite.service.RequestTransition(suite.ctx, cashier, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "submitted", To: "approved",
	})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthorizationServiceTestSuite) TestRequestTransition_UnknownTransition() {
	_, err := suite.service.RequestTransition(suite.ctx, admin, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "draft", To: "approved",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RequestTransition(suite.ctx, admin, dto.TransitionRequest{
		EntityType: "delivery_note", EntityID: "dn-1", From: "draft", To: "sent",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuthorizationServiceTestSuite) TestWithTransitionApprovers() {
	service := services.NewAuthorizationService(
		services.NewGatingService(suite.store),
		services.NewWorkflowService(suite.store),
		services.NewApprovalRuleEvaluator(suite.store),
		suite.approvals,
		services.WithTransitionApprovers("owner"),
	)

	decision, err := service.RequestTransition(suite.ctx, admin, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-7", From: "submitted", To: "approved",
	})

	suite.Require().NoError(err)
	suite.Equal([]string{"owner"}, decision.Request.ApproverRoles)
}

func TestAuthorizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthorizationServiceTestSuite))
}
