package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WorkflowServiceTestSuite struct {
	suite.Suite
	store   *services.ConfigStore
	service *services.WorkflowService
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	source := new(MockConfigSource)
	source.On("Load", mock.Anything).Return(testTenantConfig(), nil)
	suite.store = services.NewConfigStore(source)
	suite.Require().NoError(suite.store.Load(context.Background()))
	suite.service = services.NewWorkflowService(suite.store)
}

func labels(ts []domain.Transition) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Label)
	}
	return out
}

func (suite *WorkflowServiceTestSuite) TestGetValidTransitions_ManagerSeesRestricted() {
	got := suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "submitted", []string{"manager"})

	suite.Equal([]string{"Approve", "Send back"}, labels(got))
	suite.True(got[0].RequiresApproval)
}

func (suite *WorkflowServiceTestSuite) TestGetValidTransitions_CashierSeesNothing() {
	got := suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "submitted", []string{"cashier"})

	suite.NotNil(got)
	suite.Empty(got)
}

func (suite *WorkflowServiceTestSuite) TestGetValidTransitions_UnrestrictedForAnyone() {
	got := suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "draft", nil)

	suite.Equal([]string{"Submit", "Cancel"}, labels(got))
}

func (suite *WorkflowServiceTestSuite) TestGetValidTransitions_DuplicatePairsAllSurface() {
	got := suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "draft", []string{"manager"})

	suite.Equal([]string{"Submit", "Cancel", "Discard"}, labels(got))
	suite.Equal(got[1].To, got[2].To)
}

func (suite *WorkflowServiceTestSuite) TestGetValidTransitions_UnknownEntityOrStatus() {
	suite.Empty(suite.service.GetValidTransitions("delivery_note", "draft", []string{"admin"}))
	suite.Empty(suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "archived", []string{"admin"}))
}

func (suite *WorkflowServiceTestSuite) TestGetValidTransitions_ResultIsACopy() {
	got := suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "submitted", []string{"manager"})
	got[0].RequiredRoles[0] = "intruder"

	again := suite.service.GetValidTransitions(domain.EntityPurchaseOrder, "submitted", []string{"manager"})
	suite.Equal([]string{"manager", "admin"}, again[0].RequiredRoles)
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflow() {
	wf, ok := suite.service.GetWorkflow(domain.EntityInvoice)
	suite.Require().True(ok)
	suite.Equal("Invoice", wf.Name)

	_, ok = suite.service.GetWorkflow("delivery_note")
	suite.False(ok)
}

func (suite *WorkflowServiceTestSuite) TestStepper_OrdersByOrderToleratingGaps() {
	steps := suite.service.Stepper(domain.EntityPurchaseOrder)

	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ID)
	}
	suite.Equal([]string{"draft", "submitted", "approved", "cancelled"}, ids)
	suite.Empty(suite.service.Stepper("delivery_note"))
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
