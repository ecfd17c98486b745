package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
)

// ApprovalStatus is the lifecycle state of an approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// ApprovalRequest tracks one sign-off for a triggering action on an entity.
// ApproverRoles is the union of the matched rules' roles at creation time.
type ApprovalRequest struct {
	ID             string         `json:"id"`
	EntityType     string         `json:"entityType"`
	EntityID       string         `json:"entityId"`
	RuleID         string         `json:"ruleId"`
	RuleName       string         `json:"ruleName"`
	MatchedRuleIDs []string       `json:"matchedRuleIds,omitempty"`
	ApproverRoles  []string       `json:"approverRoles"`
	RequestedBy    string         `json:"requestedBy"`
	RequestedAt    time.Time      `json:"requestedAt"`
	Status         ApprovalStatus `json:"status"`
	ReviewedBy     *string        `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewedAt,omitempty"`
	Comment        *string        `json:"comment,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// CanBeReviewedBy reports whether a caller with roles may decide the request.
// A request without approver roles can be decided by nobody.
func (r *ApprovalRequest) CanBeReviewedBy(roles []string) bool {
	if len(r.ApproverRoles) == 0 {
		return false
	}
	return HasAnyRole(roles, r.ApproverRoles)
}

// ApprovalDraft is a request about to be raised whose reviewer roles were already
// resolved from configuration by the engine.
type ApprovalDraft struct {
	EntityType     string
	EntityID       string
	RuleID         string
	RuleName       string
	MatchedRuleIDs []string
	ApproverRoles  []string
	Metadata       map[string]any
}

// ApprovalDecision is the terminal outcome recorded on a request.
type ApprovalDecision struct {
	Status     ApprovalStatus
	ReviewedBy string
	ReviewedAt time.Time
	Comment    *string
}

// Apply records the decision. It fails with ErrApprovalConflict if the request is
// already terminal and never overwrites an earlier decision.
func (r *ApprovalRequest) Apply(d ApprovalDecision) error {
	if !d.Status.IsTerminal() {
		return fmt.Errorf("%w: %q is not a decision", apperrors.ErrValidation, d.Status)
	}
	if r.Status != ApprovalPending {
		return fmt.Errorf("approval request %s is %s: %w", r.ID, r.Status, apperrors.ErrApprovalConflict)
	}
	reviewedBy := d.ReviewedBy
	reviewedAt := d.ReviewedAt
	r.Status = d.Status
	r.ReviewedBy = &reviewedBy
	r.ReviewedAt = &reviewedAt
	r.Comment = d.Comment
	return nil
}

// PendingApproval is a pending request enriched with the requester's display identity.
type PendingApproval struct {
	ApprovalRequest
	RequesterName string `json:"requesterName"`
}

// ChangeOp is the kind of row change reported by the approval store.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "insert"
	ChangeUpdate ChangeOp = "update"
	ChangeDelete ChangeOp = "delete"
)

// ChangeEvent is a notification that an approval request changed in storage.
type ChangeEvent struct {
	Op        ChangeOp `json:"op"`
	RequestID string   `json:"id"`
}

// MutationDecision tells an entity-mutation flow whether it may commit directly.
// When Proceed is false, Request is the approval request raised in its place.
type MutationDecision struct {
	Proceed bool
	Check   ApprovalCheck
	Request *ApprovalRequest
}
