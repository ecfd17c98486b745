package dto

import "github.com/SscSPs/shopdesk_backend/internal/core/domain"

// AccessResponse answers a module or feature gate query.
type AccessResponse struct {
	ID      string `json:"id"`
	Allowed bool   `json:"allowed"`
}

// NextActionsResponse lists the transitions offered to the caller.
type NextActionsResponse struct {
	EntityType    string              `json:"entityType"`
	CurrentStatus string              `json:"currentStatus"`
	Actions       []domain.NextAction `json:"actions"`
}

// WorkflowResponse carries a workflow definition and its statuses in display order.
type WorkflowResponse struct {
	Workflow domain.WorkflowDefinition `json:"workflow"`
	Steps    []domain.WorkflowStatus   `json:"steps"`
}

// SetEnabledRequest toggles a module or feature.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetOperationModeRequest switches the tenant operation mode.
type SetOperationModeRequest struct {
	Mode domain.OperationMode `json:"mode" binding:"required,oneof=full_erp pos_only inventory_only erp_no_service erp_no_imports"`
}

// VisibleModulesResponse lists the modules currently passing the module gate.
type VisibleModulesResponse struct {
	OperationMode domain.OperationMode  `json:"operationMode"`
	Modules       []domain.ModuleConfig `json:"modules"`
}
