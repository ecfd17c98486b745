package domain

import (
	"fmt"
	"slices"
	"sort"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
)

// Entity types that carry a workflow out of the box.
const (
	EntityJobCard           = "job_card"
	EntityPurchaseOrder     = "purchase_order"
	EntityInvoice           = "invoice"
	EntityStockAdjustment   = "stock_adjustment"
	EntityGoodsReceivedNote = "goods_received_note"
)

// WorkflowStatus is one state of a document lifecycle.
type WorkflowStatus struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Transition is a directed, possibly role-restricted move between two statuses.
type Transition struct {
	From             string   `json:"from" yaml:"from" validate:"required"`
	To               string   `json:"to" yaml:"to" validate:"required"`
	Label            string   `json:"label" yaml:"label"`
	RequiredRoles    []string `json:"requiredRoles,omitempty" yaml:"requiredRoles,omitempty"`
	RequiresApproval bool     `json:"requiresApproval,omitempty" yaml:"requiresApproval,omitempty"`
}

// AllowedFor reports whether any of roles satisfies the transition's role restriction.
func (t Transition) AllowedFor(roles []string) bool {
	return HasAnyRole(roles, t.RequiredRoles)
}

// WorkflowDefinition is the status graph of one entity type.
type WorkflowDefinition struct {
	EntityType  string           `json:"entityType" yaml:"entityType" validate:"required"`
	Name        string           `json:"name" yaml:"name"`
	Statuses    []WorkflowStatus `json:"statuses" yaml:"statuses" validate:"required,min=1,dive"`
	Transitions []Transition     `json:"transitions" yaml:"transitions" validate:"dive"`
}

func (w WorkflowDefinition) HasStatus(id string) bool {
	for _, s := range w.Statuses {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Validate rejects duplicate status ids and transitions pointing outside the definition.
// Gaps in status order are tolerated.
func (w WorkflowDefinition) Validate() error {
	seen := make(map[string]struct{}, len(w.Statuses))
	for _, s := range w.Statuses {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: workflow %q declares status %q twice", apperrors.ErrValidation, w.EntityType, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	for i, t := range w.Transitions {
		if _, ok := seen[t.From]; !ok {
			return fmt.Errorf("%w: workflow %q transition %d has unknown from status %q", apperrors.ErrValidation, w.EntityType, i, t.From)
		}
		if _, ok := seen[t.To]; !ok {
			return fmt.Errorf("%w: workflow %q transition %d has unknown to status %q", apperrors.ErrValidation, w.EntityType, i, t.To)
		}
	}
	return nil
}

// TransitionsFrom returns every transition leaving status, in definition order.
// Duplicate from/to pairs are all returned.
func (w WorkflowDefinition) TransitionsFrom(status string) []Transition {
	out := []Transition{}
	for _, t := range w.Transitions {
		if t.From == status {
			out = append(out, t)
		}
	}
	return out
}

// OrderedStatuses returns the statuses sorted by Order, ties keeping declaration order.
func (w WorkflowDefinition) OrderedStatuses() []WorkflowStatus {
	out := slices.Clone(w.Statuses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (w WorkflowDefinition) Clone() WorkflowDefinition {
	out := w
	out.Statuses = slices.Clone(w.Statuses)
	out.Transitions = make([]Transition, len(w.Transitions))
	for i, t := range w.Transitions {
		t.RequiredRoles = slices.Clone(t.RequiredRoles)
		out.Transitions[i] = t
	}
	return out
}

// NextAction is a transition offered to a caller, flagged when executing it needs sign-off.
type NextAction struct {
	Transition
	NeedsApproval bool `json:"needsApproval"`
}
