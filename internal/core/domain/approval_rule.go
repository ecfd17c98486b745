package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
)

// Operator is a comparison used by an approval rule condition.
type Operator string

const (
	OpGreaterThan        Operator = "gt"
	OpLessThan           Operator = "lt"
	OpEqual              Operator = "eq"
	OpGreaterThanOrEqual Operator = "gte"
	OpLessThanOrEqual    Operator = "lte"
)

func (op Operator) IsValid() bool {
	switch op {
	case OpGreaterThan, OpLessThan, OpEqual, OpGreaterThanOrEqual, OpLessThanOrEqual:
		return true
	}
	return false
}

// Apply evaluates `left op right`.
//
//	number  x number  : gt lt eq gte lte
//	string  x string  : gt lt eq gte lte (lexicographic)
//	boolean x boolean : eq
//
// Any other pairing, and any unknown operator, is an ErrConditionEvaluation.
func (op Operator) Apply(left, right ConditionValue) (bool, error) {
	if !op.IsValid() {
		return false, fmt.Errorf("%w: unknown operator %q", apperrors.ErrConditionEvaluation, op)
	}
	if left.kind != right.kind || left.IsZero() {
		return false, fmt.Errorf("%w: cannot compare %s with %s", apperrors.ErrConditionEvaluation, kindLabel(left), kindLabel(right))
	}

	var cmp int
	switch left.kind {
	case KindNumber:
		cmp = left.num.Cmp(right.num)
	case KindString:
		cmp = strings.Compare(left.str, right.str)
	case KindBool:
		if op != OpEqual {
			return false, fmt.Errorf("%w: operator %q is not defined for booleans", apperrors.ErrConditionEvaluation, op)
		}
		return left.b == right.b, nil
	}

	switch op {
	case OpGreaterThan:
		return cmp > 0, nil
	case OpLessThan:
		return cmp < 0, nil
	case OpGreaterThanOrEqual:
		return cmp >= 0, nil
	case OpLessThanOrEqual:
		return cmp <= 0, nil
	default:
		return cmp == 0, nil
	}
}

func kindLabel(v ConditionValue) string {
	if v.IsZero() {
		return "unset value"
	}
	return string(v.kind)
}

// Condition is a single `data[Field] <Operator> Value` predicate.
type Condition struct {
	Field    string         `json:"field" yaml:"field" validate:"required"`
	Operator Operator       `json:"operator" yaml:"operator" validate:"required,oneof=gt lt eq gte lte"`
	Value    ConditionValue `json:"value" yaml:"value"`
}

// Evaluate applies the condition to entity data. A missing or null field does not match
// and is not an error.
func (c Condition) Evaluate(data map[string]any) (bool, error) {
	raw, ok := data[c.Field]
	if !ok || raw == nil {
		return false, nil
	}
	left, err := ValueOf(raw)
	if err != nil {
		return false, fmt.Errorf("field %q: %w", c.Field, err)
	}
	matched, err := c.Operator.Apply(left, c.Value)
	if err != nil {
		return false, fmt.Errorf("field %q: %w", c.Field, err)
	}
	return matched, nil
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Operator, c.Value)
}

// ApprovalRule demands sign-off from ApproverRoles when Condition holds for an entity.
type ApprovalRule struct {
	ID            string    `json:"id" yaml:"id" validate:"required"`
	Name          string    `json:"name" yaml:"name"`
	EntityType    string    `json:"entityType" yaml:"entityType" validate:"required"`
	Condition     Condition `json:"condition" yaml:"condition"`
	ApproverRoles []string  `json:"approverRoles" yaml:"approverRoles"`
	Enabled       bool      `json:"enabled" yaml:"enabled"`
}

func (r ApprovalRule) Validate() error {
	if r.Condition.Field == "" {
		return fmt.Errorf("%w: approval rule %q has no condition field", apperrors.ErrValidation, r.ID)
	}
	if !r.Condition.Operator.IsValid() {
		return fmt.Errorf("%w: approval rule %q has unknown operator %q", apperrors.ErrValidation, r.ID, r.Condition.Operator)
	}
	if r.Condition.Value.IsZero() {
		return fmt.Errorf("%w: approval rule %q has no condition value", apperrors.ErrValidation, r.ID)
	}
	if len(UniqueStrings(r.ApproverRoles)) == 0 {
		return fmt.Errorf("%w: approval rule %q names no approver roles", apperrors.ErrValidation, r.ID)
	}
	return nil
}

// DisplayName falls back to the rendered condition when the rule has no name.
func (r ApprovalRule) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Condition.String()
}

// ApprovalCheck is the outcome of evaluating every rule of an entity type.
type ApprovalCheck struct {
	Required      bool           `json:"required"`
	Rules         []ApprovalRule `json:"rules"`
	ApproverRoles []string       `json:"approverRoles"`
}

// NewApprovalCheck derives the check from the matched rules. Approver roles are the
// union across rules; any one of them may decide.
func NewApprovalCheck(matched []ApprovalRule) ApprovalCheck {
	lists := make([][]string, 0, len(matched))
	for _, r := range matched {
		lists = append(lists, r.ApproverRoles)
	}
	if matched == nil {
		matched = []ApprovalRule{}
	}
	return ApprovalCheck{
		Required:      len(matched) > 0,
		Rules:         matched,
		ApproverRoles: UnionRoles(lists...),
	}
}

// RuleIDs returns the ids of the matched rules in evaluation order.
func (c ApprovalCheck) RuleIDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		ids = append(ids, r.ID)
	}
	return ids
}

// Representative returns the first matched rule, used to label a single approval request.
func (c ApprovalCheck) Representative() (ApprovalRule, bool) {
	if len(c.Rules) == 0 {
		return ApprovalRule{}, false
	}
	return c.Rules[0], true
}
