package dto

import (
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
)

// --- Approval DTOs ---

// CreateApprovalRequest defines data for raising an approval request directly.
// Approver roles are not accepted from clients; they come from the named rules.
type CreateApprovalRequest struct {
	EntityType   string         `json:"entityType" binding:"required"`
	EntityID     string         `json:"entityId" binding:"required"`
	RuleID       string         `json:"ruleId" binding:"required"`
	RuleName     string         `json:"ruleName"`
	MatchedRules []string       `json:"matchedRuleIds"`
	Metadata     map[string]any `json:"metadata"`
}

// DecideApprovalRequest carries the optional reviewer comment for approve/reject.
type DecideApprovalRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// CheckApprovalRequest asks whether a mutation of the given entity data needs sign-off.
type CheckApprovalRequest struct {
	EntityType string         `json:"entityType" binding:"required"`
	Data       map[string]any `json:"data" binding:"required"`
}

// GuardMutationRequest is sent by entity-mutation flows before committing a write.
type GuardMutationRequest struct {
	EntityType string         `json:"entityType" binding:"required"`
	EntityID   string         `json:"entityId" binding:"required"`
	Data       map[string]any `json:"data" binding:"required"`
}

// TransitionRequest asks to move an entity between two workflow statuses.
type TransitionRequest struct {
	EntityType string         `json:"entityType" binding:"required"`
	EntityID   string         `json:"entityId" binding:"required"`
	From       string         `json:"from" binding:"required"`
	To         string         `json:"to" binding:"required"`
	Data       map[string]any `json:"data"`
}

// ApprovalResponse defines data returned for an approval request.
type ApprovalResponse struct {
	ID             string                `json:"id"`
	EntityType     string                `json:"entityType"`
	EntityID       string                `json:"entityId"`
	RuleID         string                `json:"ruleId"`
	RuleName       string                `json:"ruleName"`
	MatchedRuleIDs []string              `json:"matchedRuleIds,omitempty"`
	ApproverRoles  []string              `json:"approverRoles"`
	RequestedBy    string                `json:"requestedBy"`
	RequesterName  string                `json:"requesterName,omitempty"`
	RequestedAt    time.Time             `json:"requestedAt"`
	Status         domain.ApprovalStatus `json:"status"`
	ReviewedBy     *string               `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time            `json:"reviewedAt,omitempty"`
	Comment        *string               `json:"comment,omitempty"`
	Metadata       map[string]any        `json:"metadata,omitempty"`
}

// ToApprovalResponse converts domain.ApprovalRequest to DTO.
func ToApprovalResponse(r *domain.ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{
		ID:             r.ID,
		EntityType:     r.EntityType,
		EntityID:       r.EntityID,
		RuleID:         r.RuleID,
		RuleName:       r.RuleName,
		MatchedRuleIDs: r.MatchedRuleIDs,
		ApproverRoles:  r.ApproverRoles,
		RequestedBy:    r.RequestedBy,
		RequestedAt:    r.RequestedAt,
		Status:         r.Status,
		ReviewedBy:     r.ReviewedBy,
		ReviewedAt:     r.ReviewedAt,
		Comment:        r.Comment,
		Metadata:       r.Metadata,
	}
}

// ListApprovalsResponse wraps a list of approval requests.
type ListApprovalsResponse struct {
	Approvals []ApprovalResponse `json:"approvals"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListApprovalsResponse converts plain requests to DTO.
func ToListApprovalsResponse(rs []domain.ApprovalRequest, nextToken *string) ListApprovalsResponse {
	list := make([]ApprovalResponse, len(rs))
	for i := range rs {
		list[i] = ToApprovalResponse(&rs[i])
	}
	return ListApprovalsResponse{Approvals: list, NextToken: nextToken}
}

// ToPendingApprovalsResponse converts the enriched pending queue to DTO.
func ToPendingApprovalsResponse(ps []domain.PendingApproval) ListApprovalsResponse {
	list := make([]ApprovalResponse, len(ps))
	for i := range ps {
		list[i] = ToApprovalResponse(&ps[i].ApprovalRequest)
		list[i].RequesterName = ps[i].RequesterName
	}
	return ListApprovalsResponse{Approvals: list}
}

// ApprovalCheckResponse is the outcome of CheckApprovalRequest.
type ApprovalCheckResponse struct {
	Required      bool                  `json:"required"`
	Rules         []domain.ApprovalRule `json:"rules"`
	ApproverRoles []string              `json:"approverRoles"`
}

func ToApprovalCheckResponse(c domain.ApprovalCheck) ApprovalCheckResponse {
	return ApprovalCheckResponse{Required: c.Required, Rules: c.Rules, ApproverRoles: c.ApproverRoles}
}

// MutationDecisionResponse tells a mutation flow whether to commit or wait for sign-off.
type MutationDecisionResponse struct {
	Proceed  bool                  `json:"proceed"`
	Check    ApprovalCheckResponse `json:"check"`
	Approval *ApprovalResponse     `json:"approval,omitempty"`
}

func ToMutationDecisionResponse(d *domain.MutationDecision) MutationDecisionResponse {
	resp := MutationDecisionResponse{Proceed: d.Proceed, Check: ToApprovalCheckResponse(d.Check)}
	if d.Request != nil {
		approval := ToApprovalResponse(d.Request)
		resp.Approval = &approval
	}
	return resp
}
