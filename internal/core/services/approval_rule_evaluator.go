package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
)

// ApprovalRuleEvaluator matches enabled approval rules against entity field values.
type ApprovalRuleEvaluator struct {
	BaseService
	store portssvc.ConfigStoreReaderSvc
}

// NewApprovalRuleEvaluator creates a new ApprovalRuleEvaluator.
func NewApprovalRuleEvaluator(store portssvc.ConfigStoreReaderSvc) *ApprovalRuleEvaluator {
	return &ApprovalRuleEvaluator{store: store}
}

var _ portssvc.ApprovalRuleEvaluatorSvc = (*ApprovalRuleEvaluator)(nil)

// GetApplicableRules returns matching rules in configuration order. A rule whose
// condition cannot be evaluated is logged and skipped without affecting the others.
func (s *ApprovalRuleEvaluator) GetApplicableRules(ctx context.Context, entityType string, data map[string]any) []domain.ApprovalRule {
	matched := []domain.ApprovalRule{}
	for _, rule := range s.store.Snapshot().RulesFor(entityType) {
		if !rule.Enabled {
			continue
		}
		ok, err := rule.Condition.Evaluate(data)
		if err != nil {
			s.LogWarn(ctx, err, "Approval rule condition could not be evaluated, treating as non-matching",
				slog.String("rule_id", rule.ID),
				slog.String("entity_type", entityType),
				slog.String("field", rule.Condition.Field),
				slog.String("operator", string(rule.Condition.Operator)))
			continue
		}
		if ok {
			matched = append(matched, rule)
		}
	}
	return matched
}

func (s *ApprovalRuleEvaluator) CheckApprovalRequired(ctx context.Context, entityType string, data map[string]any) domain.ApprovalCheck {
	check := domain.NewApprovalCheck(s.GetApplicableRules(ctx, entityType, data))
	if check.Required {
		s.LogDebug(ctx, "Approval required",
			slog.String("entity_type", entityType),
			slog.Any("rule_ids", check.RuleIDs()),
			slog.Any("approver_roles", check.ApproverRoles))
	}
	return check
}
