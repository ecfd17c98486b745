package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
)

var defaultTransitionApprovers = []string{"admin", "manager"}

// AuthorizationService composes gating, workflow and approval checks behind one query
// surface for UI and mutation flows.
type AuthorizationService struct {
	BaseService
	gating    portssvc.GatingSvc
	workflow  portssvc.WorkflowSvc
	rules     portssvc.ApprovalRuleEvaluatorSvc
	approvals portssvc.ApprovalWriterSvc

	transitionApprovers []string
}

// AuthorizationOption configures an AuthorizationService.
type AuthorizationOption func(*AuthorizationService)

// WithTransitionApprovers sets who signs off a transition flagged as requiring approval
// when no approval rule matched the entity data.
func WithTransitionApprovers(roles ...string) AuthorizationOption {
	return func(s *AuthorizationService) {
		s.transitionApprovers = slices.Clone(roles)
	}
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(gating portssvc.GatingSvc, workflow portssvc.WorkflowSvc, rules portssvc.ApprovalRuleEvaluatorSvc, approvals portssvc.ApprovalWriterSvc, options ...AuthorizationOption) *AuthorizationService {
	s := &AuthorizationService{
		gating:              gating,
		workflow:            workflow,
		rules:               rules,
		approvals:           approvals,
		transitionApprovers: slices.Clone(defaultTransitionApprovers),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.AuthorizationSvc = (*AuthorizationService)(nil)

// CanAccessModule requires the module to be enabled and the caller to hold one of
// requiredRoles. An empty requiredRoles means any caller.
func (s *AuthorizationService) CanAccessModule(moduleID string, callerRoles, requiredRoles []string) bool {
	return s.gating.IsModuleEnabled(moduleID) && domain.HasAnyRole(callerRoles, requiredRoles)
}

func (s *AuthorizationService) CanAccessFeature(featureID string, callerRoles, requiredRoles []string) bool {
	return s.gating.IsFeatureEnabled(featureID) && domain.HasAnyRole(callerRoles, requiredRoles)
}

func (s *AuthorizationService) ResolveNextActions(entityType, currentStatus string, callerRoles []string) []domain.NextAction {
	transitions := s.workflow.GetValidTransitions(entityType, currentStatus, callerRoles)
	actions := make([]domain.NextAction, 0, len(transitions))
	for _, t := range transitions {
		actions = append(actions, domain.NextAction{Transition: t, NeedsApproval: t.RequiresApproval})
	}
	return actions
}

func (s *AuthorizationService) CheckApprovalRequired(ctx context.Context, entityType string, data map[string]any) domain.ApprovalCheck {
	return s.rules.CheckApprovalRequired(ctx, entityType, data)
}

// GuardMutation raises an approval request instead of letting the write through when
// any rule matches the entity data.
func (s *AuthorizationService) GuardMutation(ctx context.Context, caller domain.Caller, req dto.GuardMutationRequest) (*domain.MutationDecision, error) {
	check := s.rules.CheckApprovalRequired(ctx, req.EntityType, req.Data)
	if !check.Required {
		return &domain.MutationDecision{Proceed: true, Check: check}, nil
	}

	rule, _ := check.Representative()
	request, err := s.approvals.RaiseApprovalRequest(ctx, caller, domain.ApprovalDraft{
		EntityType:     req.EntityType,
		EntityID:       req.EntityID,
		RuleID:         rule.ID,
		RuleName:       rule.DisplayName(),
		ApproverRoles:  check.ApproverRoles,
		MatchedRuleIDs: check.RuleIDs(),
		Metadata: map[string]any{
			"action": "mutation",
			"data":   req.Data,
		},
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Mutation held for approval",
		slog.String("entity_type", req.EntityType),
		slog.String("entity_id", req.EntityID),
		slog.String("approval_id", request.ID))
	return &domain.MutationDecision{Proceed: false, Check: check, Request: request}, nil
}

// RequestTransition checks that the caller may take the transition and raises an
// approval request when the transition or the entity data requires sign-off.
func (s *AuthorizationService) RequestTransition(ctx context.Context, caller domain.Caller, req dto.TransitionRequest) (*domain.MutationDecision, error) {
	transition, err := s.findTransition(req.EntityType, req.From, req.To, caller.Roles)
	if err != nil {
		s.LogWarn(ctx, err, "Transition refused",
			slog.String("entity_type", req.EntityType),
			slog.String("from", req.From),
			slog.String("to", req.To))
		return nil, err
	}

	check := s.rules.CheckApprovalRequired(ctx, req.EntityType, req.Data)
	if !transition.RequiresApproval && !check.Required {
		return &domain.MutationDecision{Proceed: true, Check: check}, nil
	}

	draft := domain.ApprovalDraft{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Metadata: map[string]any{
			"action": "transition",
			"from":   req.From,
			"to":     req.To,
			"data":   req.Data,
		},
	}
	if rule, ok := check.Representative(); ok {
		draft.RuleID = rule.ID
		draft.RuleName = rule.DisplayName()
		draft.ApproverRoles = check.ApproverRoles
		draft.MatchedRuleIDs = check.RuleIDs()
	} else {
		draft.RuleID = fmt.Sprintf("transition:%s->%s", transition.From, transition.To)
		draft.RuleName = transition.Label
		draft.ApproverRoles = s.transitionApprovers
	}
	if transition.RequiresApproval && check.Required {
		draft.ApproverRoles = domain.UnionRoles(check.ApproverRoles, s.transitionApprovers)
	}

	request, err := s.approvals.RaiseApprovalRequest(ctx, caller, draft)
	if err != nil {
		return nil, err
	}
	return &domain.MutationDecision{Proceed: false, Check: check, Request: request}, nil
}

// findTransition distinguishes a transition that does not exist from one the caller's
// roles do not allow.
func (s *AuthorizationService) findTransition(entityType, from, to string, roles []string) (domain.Transition, error) {
	wf, ok := s.workflow.GetWorkflow(entityType)
	if !ok {
		return domain.Transition{}, fmt.Errorf("%w: no workflow for entity type %q", apperrors.ErrValidation, entityType)
	}
	exists := false
	for _, t := range wf.TransitionsFrom(from) {
		if t.To != to {
			continue
		}
		exists = true
		if t.AllowedFor(roles) {
			return t, nil
		}
	}
	if exists {
		return domain.Transition{}, apperrors.NewForbiddenError(fmt.Sprintf("caller may not move %s from %s to %s", entityType, from, to))
	}
	return domain.Transition{}, fmt.Errorf("%w: no transition from %q to %q for %s", apperrors.ErrValidation, from, to, entityType)
}
