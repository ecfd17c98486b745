package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalsHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	approvals    *MockApprovalService
	authz        *MockAuthorizationService
	cashierToken string
	managerToken string
}

func (suite *ApprovalsHandlerTestSuite) SetupTest() {
	suite.approvals = new(MockApprovalService)
	suite.authz = new(MockAuthorizationService)

	router, v1 := newTestRouter()
	handlers.RegisterApprovalRoutes(v1, suite.approvals, suite.authz, nil)
	suite.router = router
	suite.cashierToken = generateTestToken(suite.T(), "user-cashier", "cashier")
	suite.managerToken = generateTestToken(suite.T(), "user-manager", "manager")
}

func (suite *ApprovalsHandlerTestSuite) TearDownTest() {
	suite.approvals.AssertExpectations(suite.T())
	suite.authz.AssertExpectations(suite.T())
}

var (
	cashierCaller = domain.Caller{UserID: "user-cashier", Roles: []string{"cashier"}}
	managerCaller = domain.Caller{UserID: "user-manager", Roles: []string{"manager"}}
)

func pendingRequest(id string) *domain.ApprovalRequest {
	return &domain.ApprovalRequest{
		ID:            id,
		EntityType:    domain.EntityPurchaseOrder,
		EntityID:      "po-42",
		RuleID:        "po_total_over_5000",
		RuleName:      "amount > 5000",
		ApproverRoles: []string{"admin", "manager"},
		RequestedBy:   cashierCaller.UserID,
		RequestedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:        domain.ApprovalPending,
	}
}

func (suite *ApprovalsHandlerTestSuite) TestCheckApprovalRequired() {
	check := domain.ApprovalCheck{
		Required:      true,
		Rules:         []domain.ApprovalRule{{ID: "invoice_amount_over_1000", EntityType: domain.EntityInvoice}},
		ApproverRoles: []string{"accountant"},
	}
	suite.authz.On("CheckApprovalRequired", mock.Anything, domain.EntityInvoice, mock.Anything).Return(check).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/check", suite.cashierToken, dto.CheckApprovalRequest{
		EntityType: domain.EntityInvoice,
		Data:       map[string]any{"amount": 1500},
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ApprovalCheckResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Required)
	suite.Equal([]string{"accountant"}, resp.ApproverRoles)
}

func (suite *ApprovalsHandlerTestSuite) TestGuardMutation_HeldForApproval() {
	decision := &domain.MutationDecision{
		Proceed: false,
		Check:   domain.ApprovalCheck{Required: true, ApproverRoles: []string{"admin", "manager"}},
		Request: pendingRequest("apr-1"),
	}
	suite.authz.On("GuardMutation", mock.Anything, cashierCaller, mock.MatchedBy(func(req dto.GuardMutationRequest) bool {
		return req.EntityID == "po-42" && req.Data["total"] == float64(6000)
	})).Return(decision, nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/guard", suite.cashierToken, dto.GuardMutationRequest{
		EntityType: domain.EntityPurchaseOrder,
		EntityID:   "po-42",
		Data:       map[string]any{"total": 6000},
	})

	suite.Equal(http.StatusAccepted, w.Code)
	var resp dto.MutationDecisionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Proceed)
	suite.Require().NotNil(resp.Approval)
	suite.Equal("apr-1", resp.Approval.ID)
}

func (suite *ApprovalsHandlerTestSuite) TestGuardMutation_Proceeds() {
	suite.authz.On("GuardMutation", mock.Anything, cashierCaller, mock.Anything).
		Return(&domain.MutationDecision{Proceed: true, Check: domain.ApprovalCheck{Rules: []domain.ApprovalRule{}}}, nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/guard", suite.cashierToken, dto.GuardMutationRequest{
		EntityType: domain.EntityPurchaseOrder,
		EntityID:   "po-1",
		Data:       map[string]any{"total": 100},
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"proceed":true`)
	suite.NotContains(w.Body.String(), `"approval"`)
}

func (suite *ApprovalsHandlerTestSuite) TestGuardMutation_InvalidBody() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/guard", suite.cashierToken, map[string]any{"entityType": "invoice"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestRequestTransition_Forbidden() {
	suite.authz.On("RequestTransition", mock.Anything, cashierCaller, mock.Anything).
		Return(nil, apperrors.NewForbiddenError("role not allowed for transition")).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/transition", suite.cashierToken, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "submitted", To: "approved",
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestRequestTransition_UnknownTransition() {
	suite.authz.On("RequestTransition", mock.Anything, managerCaller, mock.Anything).
		Return(nil, apperrors.NewValidationFailedError("no transition from draft to approved")).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/transition", suite.managerToken, dto.TransitionRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-1", From: "draft", To: "approved",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestCreateApproval() {
	req := dto.CreateApprovalRequest{
		EntityType: domain.EntityPurchaseOrder,
		EntityID:   "po-42",
		RuleID:     "po_total_over_5000",
	}
	suite.approvals.On("CreateApprovalRequest", mock.Anything, cashierCaller, req).Return(pendingRequest("apr-9"), nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals", suite.cashierToken, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ApprovalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("apr-9", resp.ID)
	suite.Equal(domain.ApprovalPending, resp.Status)
	suite.Equal([]string{"admin", "manager"}, resp.ApproverRoles)
}

func (suite *ApprovalsHandlerTestSuite) TestCreateApproval_ClientRolesAreDropped() {
	expected := dto.CreateApprovalRequest{
		EntityType: domain.EntityPurchaseOrder,
		EntityID:   "po-42",
		RuleID:     "po_total_over_5000",
	}
	suite.approvals.On("CreateApprovalRequest", mock.Anything, cashierCaller, expected).Return(pendingRequest("apr-10"), nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals", suite.cashierToken, map[string]any{
		"entityType":    domain.EntityPurchaseOrder,
		"entityId":      "po-42",
		"ruleId":        "po_total_over_5000",
		"approverRoles": []string{"cashier"},
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.approvals.AssertExpectations(suite.T())
}

func (suite *ApprovalsHandlerTestSuite) TestCreateApproval_UnknownRule() {
	suite.approvals.On("CreateApprovalRequest", mock.Anything, cashierCaller, mock.Anything).
		Return(nil, apperrors.NewValidationFailedError(`unknown approval rule "made_up"`)).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals", suite.cashierToken, dto.CreateApprovalRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-42", RuleID: "made_up",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestCreateApproval_StorageUnavailable() {
	suite.approvals.On("CreateApprovalRequest", mock.Anything, cashierCaller, mock.Anything).
		Return(nil, apperrors.NewPersistenceError("insert approval request", fmt.Errorf("connection refused"))).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals", suite.cashierToken, dto.CreateApprovalRequest{
		EntityType: domain.EntityPurchaseOrder, EntityID: "po-42", RuleID: "po_total_over_5000",
	})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("1", w.Header().Get("Retry-After"))
	suite.Contains(w.Body.String(), `"retryable":true`)
}

func (suite *ApprovalsHandlerTestSuite) TestListPending() {
	list := []domain.PendingApproval{{ApprovalRequest: *pendingRequest("apr-1"), RequesterName: "Priya Cashier"}}
	suite.approvals.On("List", mock.Anything).Return(list, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/approvals", suite.managerToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListApprovalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Approvals, 1)
	suite.Equal("Priya Cashier", resp.Approvals[0].RequesterName)
}

func (suite *ApprovalsHandlerTestSuite) TestApprove_WithComment() {
	comment := "looks fine"
	decided := pendingRequest("apr-1")
	decided.Status = domain.ApprovalApproved
	decided.ReviewedBy = &managerCaller.UserID
	decided.Comment = &comment
	suite.approvals.On("ApproveRequest", mock.Anything, managerCaller, "apr-1", &comment).Return(decided, nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/apr-1/approve", suite.managerToken, dto.DecideApprovalRequest{Comment: &comment})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ApprovalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ApprovalApproved, resp.Status)
	suite.Equal("looks fine", *resp.Comment)
}

func (suite *ApprovalsHandlerTestSuite) TestReject_WithoutBody() {
	decided := pendingRequest("apr-1")
	decided.Status = domain.ApprovalRejected
	suite.approvals.On("RejectRequest", mock.Anything, managerCaller, "apr-1", (*string)(nil)).Return(decided, nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/apr-1/reject", suite.managerToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"rejected"`)
}

func (suite *ApprovalsHandlerTestSuite) TestApprove_AlreadyDecided() {
	suite.approvals.On("ApproveRequest", mock.Anything, managerCaller, "apr-1", (*string)(nil)).
		Return(nil, apperrors.ErrApprovalConflict).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/apr-1/approve", suite.managerToken, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.JSONEq(`{"error":"Approval request already decided","refresh":true}`, w.Body.String())
}

func (suite *ApprovalsHandlerTestSuite) TestApprove_NotAnApprover() {
	suite.approvals.On("ApproveRequest", mock.Anything, cashierCaller, "apr-1", (*string)(nil)).
		Return(nil, apperrors.NewForbiddenError("caller is not an approver")).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/approvals/apr-1/approve", suite.cashierToken, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestGetApproval_NotFound() {
	suite.approvals.On("GetApprovalRequest", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("approval request missing")).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/approvals/missing", suite.managerToken, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestEntityHistory() {
	history := []domain.ApprovalRequest{*pendingRequest("apr-2"), *pendingRequest("apr-1")}
	suite.approvals.On("History", mock.Anything, domain.EntityPurchaseOrder, "po-42").Return(history, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/approvals/entity/purchase_order/po-42", suite.managerToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListApprovalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Approvals, 2)
	suite.Nil(resp.NextToken)
}

func (suite *ApprovalsHandlerTestSuite) TestListDecided_PassesPaging() {
	token := "cursor-1"
	next := "cursor-2"
	suite.approvals.On("ListDecided", mock.Anything, 5, &token).Return([]domain.ApprovalRequest{}, &next, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/approvals/decided?limit=5&nextToken=cursor-1", suite.managerToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListApprovalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("cursor-2", *resp.NextToken)
}

func (suite *ApprovalsHandlerTestSuite) TestListDecided_BadLimit() {
	w := doRequest(suite.router, http.MethodGet, "/api/v1/approvals/decided?limit=abc", suite.managerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/approvals/decided?limit=-1", suite.managerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ApprovalsHandlerTestSuite) TestListDecided_BadToken() {
	token := "garbage"
	suite.approvals.On("ListDecided", mock.Anything, 0, &token).
		Return(nil, nil, apperrors.NewValidationFailedError("invalid next token")).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/approvals/decided?nextToken=garbage", suite.managerToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// The stream ends once the watch channel closes, so the full body can be read.
func (suite *ApprovalsHandlerTestSuite) TestStreamPending() {
	updates := make(chan []domain.PendingApproval, 1)
	updates <- []domain.PendingApproval{{ApprovalRequest: *pendingRequest("apr-1"), RequesterName: "Priya Cashier"}}
	close(updates)
	suite.approvals.On("Watch", mock.Anything).Return((<-chan []domain.PendingApproval)(updates)).Once()

	server := httptest.NewServer(suite.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		server.URL+"/api/v1/approvals/stream?access_token="+suite.managerToken, nil)
	suite.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.True(strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"))
	suite.Contains(string(body), "event:pending")
	suite.Contains(string(body), `"requesterName":"Priya Cashier"`)
}

func TestApprovalsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalsHandlerTestSuite))
}
