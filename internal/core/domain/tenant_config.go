package domain

import (
	"fmt"
	"slices"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
)

// OperationMode is the tenant-wide profile that narrows the visible module set.
type OperationMode string

const (
	ModeFullERP       OperationMode = "full_erp"
	ModePOSOnly       OperationMode = "pos_only"
	ModeInventoryOnly OperationMode = "inventory_only"
	ModeERPNoService  OperationMode = "erp_no_service"
	ModeERPNoImports  OperationMode = "erp_no_imports"
)

// Well-known module ids referenced by operation modes.
const (
	ModuleDashboard = "dashboard"
	ModulePOS       = "pos"
	ModuleInventory = "inventory"
	ModuleSuppliers = "suppliers"
	ModuleRepairs   = "repairs"
	ModuleSettings  = "config"
)

var modeAllowLists = map[OperationMode][]string{
	ModePOSOnly:       {ModuleDashboard, ModulePOS, ModuleSettings},
	ModeInventoryOnly: {ModuleDashboard, ModuleInventory, ModuleSuppliers, ModuleSettings},
}

var modeDenyLists = map[OperationMode][]string{
	ModeERPNoService: {ModuleRepairs},
}

// OperationModes lists every supported mode in declaration order.
func OperationModes() []OperationMode {
	return []OperationMode{ModeFullERP, ModePOSOnly, ModeInventoryOnly, ModeERPNoService, ModeERPNoImports}
}

func (m OperationMode) IsValid() bool {
	return slices.Contains(OperationModes(), m)
}

// Allows reports whether the mode lets moduleID through. Unknown modes allow nothing.
func (m OperationMode) Allows(moduleID string) bool {
	if !m.IsValid() {
		return false
	}
	if allow, ok := modeAllowLists[m]; ok {
		return slices.Contains(allow, moduleID)
	}
	if deny, ok := modeDenyLists[m]; ok {
		return !slices.Contains(deny, moduleID)
	}
	return true
}

// ModuleConfig is a top-level functional area of the application.
type ModuleConfig struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// FeatureToggle is a sub-capability owned by exactly one module.
type FeatureToggle struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Module  string `json:"module" yaml:"module" validate:"required"`
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Localization is carried for collaborators that format currency and dates.
type Localization struct {
	Locale     string `json:"locale" yaml:"locale"`
	Currency   string `json:"currency" yaml:"currency"`
	Timezone   string `json:"timezone" yaml:"timezone"`
	DateFormat string `json:"dateFormat" yaml:"dateFormat"`
}

// TenantConfig is the full configuration snapshot for one tenant.
type TenantConfig struct {
	TenantID      string               `json:"tenantId" yaml:"tenantId"`
	OperationMode OperationMode        `json:"operationMode" yaml:"operationMode" validate:"required,oneof=full_erp pos_only inventory_only erp_no_service erp_no_imports"`
	Modules       []ModuleConfig       `json:"modules" yaml:"modules" validate:"dive"`
	Features      []FeatureToggle      `json:"features" yaml:"features" validate:"dive"`
	Workflows     []WorkflowDefinition `json:"workflows" yaml:"workflows" validate:"dive"`
	ApprovalRules []ApprovalRule       `json:"approvalRules" yaml:"approvalRules" validate:"dive"`
	Localization  Localization         `json:"localization" yaml:"localization"`
	Version       int                  `json:"version" yaml:"-"`
}

func (c *TenantConfig) Module(id string) (ModuleConfig, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return ModuleConfig{}, false
}

func (c *TenantConfig) Feature(id string) (FeatureToggle, bool) {
	for _, f := range c.Features {
		if f.ID == id {
			return f, true
		}
	}
	return FeatureToggle{}, false
}

// Workflow returns the single definition registered for entityType.
func (c *TenantConfig) Workflow(entityType string) (WorkflowDefinition, bool) {
	for _, w := range c.Workflows {
		if w.EntityType == entityType {
			return w, true
		}
	}
	return WorkflowDefinition{}, false
}

// RulesFor returns the approval rules targeting entityType in configuration order,
// disabled ones included.
func (c *TenantConfig) RulesFor(entityType string) []ApprovalRule {
	rules := []ApprovalRule{}
	for _, r := range c.ApprovalRules {
		if r.EntityType == entityType {
			rules = append(rules, r)
		}
	}
	return rules
}

// Rule looks up an approval rule by id.
func (c *TenantConfig) Rule(id string) (ApprovalRule, bool) {
	for _, r := range c.ApprovalRules {
		if r.ID == id {
			return r, true
		}
	}
	return ApprovalRule{}, false
}

// Validate checks the cross-reference invariants that struct tags cannot express.
func (c *TenantConfig) Validate() error {
	moduleIDs := make(map[string]struct{}, len(c.Modules))
	for _, m := range c.Modules {
		if _, dup := moduleIDs[m.ID]; dup {
			return fmt.Errorf("%w: duplicate module id %q", apperrors.ErrValidation, m.ID)
		}
		moduleIDs[m.ID] = struct{}{}
	}

	featureIDs := make(map[string]struct{}, len(c.Features))
	for _, f := range c.Features {
		if _, dup := featureIDs[f.ID]; dup {
			return fmt.Errorf("%w: duplicate feature id %q", apperrors.ErrValidation, f.ID)
		}
		if _, ok := moduleIDs[f.Module]; !ok {
			return fmt.Errorf("%w: feature %q references unknown module %q", apperrors.ErrValidation, f.ID, f.Module)
		}
		featureIDs[f.ID] = struct{}{}
	}

	entityTypes := make(map[string]struct{}, len(c.Workflows))
	for _, w := range c.Workflows {
		if _, dup := entityTypes[w.EntityType]; dup {
			return fmt.Errorf("%w: more than one workflow for entity type %q", apperrors.ErrValidation, w.EntityType)
		}
		entityTypes[w.EntityType] = struct{}{}
		if err := w.Validate(); err != nil {
			return err
		}
	}

	ruleIDs := make(map[string]struct{}, len(c.ApprovalRules))
	for _, r := range c.ApprovalRules {
		if _, dup := ruleIDs[r.ID]; dup {
			return fmt.Errorf("%w: duplicate approval rule id %q", apperrors.ErrValidation, r.ID)
		}
		ruleIDs[r.ID] = struct{}{}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy so that snapshots handed to readers are never mutated.
func (c *TenantConfig) Clone() *TenantConfig {
	out := *c
	out.Modules = slices.Clone(c.Modules)
	out.Features = slices.Clone(c.Features)
	out.Workflows = make([]WorkflowDefinition, len(c.Workflows))
	for i, w := range c.Workflows {
		out.Workflows[i] = w.Clone()
	}
	out.ApprovalRules = make([]ApprovalRule, len(c.ApprovalRules))
	for i, r := range c.ApprovalRules {
		r.ApproverRoles = slices.Clone(r.ApproverRoles)
		out.ApprovalRules[i] = r
	}
	return &out
}
