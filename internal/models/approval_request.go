package models

import "time"

// ApprovalRequest is a row of the approval_requests table.
type ApprovalRequest struct {
	ApprovalID     string         `db:"approval_id"`
	EntityType     string         `db:"entity_type"`
	EntityID       string         `db:"entity_id"`
	RuleID         string         `db:"rule_id"`
	RuleName       string         `db:"rule_name"`
	MatchedRuleIDs []string       `db:"matched_rule_ids"`
	ApproverRoles  []string       `db:"approver_roles"`
	RequestedBy    string         `db:"requested_by"`
	RequestedAt    time.Time      `db:"requested_at"`
	Status         string         `db:"status"`
	ReviewedBy     *string        `db:"reviewed_by"`
	ReviewedAt     *time.Time     `db:"reviewed_at"`
	Comment        *string        `db:"comment"`
	Metadata       map[string]any `db:"metadata"`
}
