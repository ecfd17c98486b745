package mapping

import (
	"slices"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/models"
)

// ToModelApprovalRequest converts a domain ApprovalRequest to a model ApprovalRequest
func ToModelApprovalRequest(d domain.ApprovalRequest) models.ApprovalRequest {
	matched := slices.Clone(d.MatchedRuleIDs)
	if matched == nil {
		matched = []string{}
	}
	roles := slices.Clone(d.ApproverRoles)
	if roles == nil {
		roles = []string{}
	}
	return models.ApprovalRequest{
		ApprovalID:     d.ID,
		EntityType:     d.EntityType,
		EntityID:       d.EntityID,
		RuleID:         d.RuleID,
		RuleName:       d.RuleName,
		MatchedRuleIDs: matched,
		ApproverRoles:  roles,
		RequestedBy:    d.RequestedBy,
		RequestedAt:    d.RequestedAt,
		Status:         string(d.Status),
		ReviewedBy:     d.ReviewedBy,
		ReviewedAt:     d.ReviewedAt,
		Comment:        d.Comment,
		Metadata:       d.Metadata,
	}
}

// ToDomainApprovalRequest converts a model ApprovalRequest to a domain ApprovalRequest
func ToDomainApprovalRequest(m models.ApprovalRequest) domain.ApprovalRequest {
	return domain.ApprovalRequest{
		ID:             m.ApprovalID,
		EntityType:     m.EntityType,
		EntityID:       m.EntityID,
		RuleID:         m.RuleID,
		RuleName:       m.RuleName,
		MatchedRuleIDs: m.MatchedRuleIDs,
		ApproverRoles:  m.ApproverRoles,
		RequestedBy:    m.RequestedBy,
		RequestedAt:    m.RequestedAt.UTC(),
		Status:         domain.ApprovalStatus(m.Status),
		ReviewedBy:     m.ReviewedBy,
		ReviewedAt:     m.ReviewedAt,
		Comment:        m.Comment,
		Metadata:       m.Metadata,
	}
}

// ToDomainApprovalRequestSlice converts a slice of model ApprovalRequests
func ToDomainApprovalRequestSlice(ms []models.ApprovalRequest) []domain.ApprovalRequest {
	ds := make([]domain.ApprovalRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalRequest(m)
	}
	return ds
}
