package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AdminRole is the role allowed to change the tenant configuration.
const AdminRole = "admin"

type configHandler struct {
	config portssvc.ConfigStoreSvcFacade
	gating portssvc.GatingSvc
}

// RegisterConfigRoutes registers tenant configuration routes. Reads are open to any
// caller; updates require AdminRole.
func RegisterConfigRoutes(rg *gin.RouterGroup, config portssvc.ConfigStoreSvcFacade, gating portssvc.GatingSvc) {
	h := &configHandler{config: config, gating: gating}

	cfg := rg.Group("/config")
	{
		cfg.GET("", h.getConfig)

		admin := cfg.Group("", middleware.RequireRoles(AdminRole))
		admin.PUT("/modules/:moduleID", h.setModuleEnabled)
		admin.PUT("/features/:featureID", h.setFeatureEnabled)
		admin.PUT("/operation-mode", h.setOperationMode)
		admin.PUT("/workflows/:entityType", h.upsertWorkflow)
		admin.PUT("/approval-rules/:ruleID", h.upsertApprovalRule)
		admin.PUT("/localization", h.setLocalization)
	}
}

// getConfig godoc
// @Summary Get tenant configuration
// @Tags config
// @Produce  json
// @Success 200 {object} domain.TenantConfig
// @Security BearerAuth
// @Router /config [get]
func (h *configHandler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.config.Snapshot())
}

// setModuleEnabled godoc
// @Summary Enable or disable a module
// @Tags config
// @Accept  json
// @Produce  json
// @Param   moduleID path string true "Module ID"
// @Param   toggle body dto.SetEnabledRequest true "New state"
// @Success 200 {object} dto.AccessResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Unknown module"
// @Failure 409 {object} map[string]string "Configuration changed concurrently"
// @Security BearerAuth
// @Router /config/modules/{moduleID} [put]
func (h *configHandler) setModuleEnabled(c *gin.Context) {
	moduleID := c.Param("moduleID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("module_id", moduleID))
	var req dto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetModuleEnabled", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.gating.ToggleModule(c.Request.Context(), moduleID, *req.Enabled); err != nil {
		respondServiceError(c, logger, err, "Failed to update module")
		return
	}
	logger.Info("Module toggled", slog.Bool("enabled", *req.Enabled))
	c.JSON(http.StatusOK, dto.AccessResponse{ID: moduleID, Allowed: h.gating.IsModuleEnabled(moduleID)})
}

// setFeatureEnabled godoc
// @Summary Enable or disable a feature
// @Tags config
// @Accept  json
// @Produce  json
// @Param   featureID path string true "Feature ID"
// @Param   toggle body dto.SetEnabledRequest true "New state"
// @Success 200 {object} dto.AccessResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Unknown feature"
// @Security BearerAuth
// @Router /config/features/{featureID} [put]
func (h *configHandler) setFeatureEnabled(c *gin.Context) {
	featureID := c.Param("featureID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("feature_id", featureID))
	var req dto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetFeatureEnabled", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.gating.ToggleFeature(c.Request.Context(), featureID, *req.Enabled); err != nil {
		respondServiceError(c, logger, err, "Failed to update feature")
		return
	}
	logger.Info("Feature toggled", slog.Bool("enabled", *req.Enabled))
	c.JSON(http.StatusOK, dto.AccessResponse{ID: featureID, Allowed: h.gating.IsFeatureEnabled(featureID)})
}

// setOperationMode godoc
// @Summary Switch the operation mode
// @Tags config
// @Accept  json
// @Produce  json
// @Param   mode body dto.SetOperationModeRequest true "Operation mode"
// @Success 200 {object} dto.VisibleModulesResponse
// @Failure 400 {object} map[string]string "Unknown mode"
// @Failure 403 {object} map[string]string "Admin role required"
// @Security BearerAuth
// @Router /config/operation-mode [put]
func (h *configHandler) setOperationMode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetOperationModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetOperationMode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.config.SetOperationMode(c.Request.Context(), req.Mode); err != nil {
		respondServiceError(c, logger, err, "Failed to update operation mode")
		return
	}
	logger.Info("Operation mode changed", slog.String("operation_mode", string(req.Mode)))
	c.JSON(http.StatusOK, dto.VisibleModulesResponse{OperationMode: req.Mode, Modules: h.gating.VisibleModules()})
}

// upsertWorkflow godoc
// @Summary Create or replace a workflow
// @Tags config
// @Accept  json
// @Produce  json
// @Param   entityType path string true "Entity type"
// @Param   workflow body domain.WorkflowDefinition true "Workflow definition"
// @Success 200 {object} domain.WorkflowDefinition
// @Failure 400 {object} map[string]string "Invalid workflow"
// @Failure 403 {object} map[string]string "Admin role required"
// @Security BearerAuth
// @Router /config/workflows/{entityType} [put]
func (h *configHandler) upsertWorkflow(c *gin.Context) {
	entityType := c.Param("entityType")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entity_type", entityType))
	var wf domain.WorkflowDefinition
	if err := c.ShouldBindJSON(&wf); err != nil {
		logger.Warn("Failed to bind JSON for UpsertWorkflow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	wf.EntityType = entityType
	if err := h.config.UpsertWorkflow(c.Request.Context(), wf); err != nil {
		respondServiceError(c, logger, err, "Failed to save workflow")
		return
	}
	logger.Info("Workflow saved")
	c.JSON(http.StatusOK, wf)
}

// upsertApprovalRule godoc
// @Summary Create or replace an approval rule
// @Tags config
// @Accept  json
// @Produce  json
// @Param   ruleID path string true "Rule ID"
// @Param   rule body domain.ApprovalRule true "Approval rule"
// @Success 200 {object} domain.ApprovalRule
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 403 {object} map[string]string "Admin role required"
// @Security BearerAuth
// @Router /config/approval-rules/{ruleID} [put]
func (h *configHandler) upsertApprovalRule(c *gin.Context) {
	ruleID := c.Param("ruleID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("rule_id", ruleID))
	var rule domain.ApprovalRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		logger.Warn("Failed to bind JSON for UpsertApprovalRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	rule.ID = ruleID
	if err := h.config.UpsertApprovalRule(c.Request.Context(), rule); err != nil {
		respondServiceError(c, logger, err, "Failed to save approval rule")
		return
	}
	logger.Info("Approval rule saved")
	c.JSON(http.StatusOK, rule)
}

// setLocalization godoc
// @Summary Update localization settings
// @Tags config
// @Accept  json
// @Produce  json
// @Param   localization body domain.Localization true "Localization"
// @Success 200 {object} domain.Localization
// @Failure 403 {object} map[string]string "Admin role required"
// @Security BearerAuth
// @Router /config/localization [put]
func (h *configHandler) setLocalization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var loc domain.Localization
	if err := c.ShouldBindJSON(&loc); err != nil {
		logger.Warn("Failed to bind JSON for SetLocalization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.config.SetLocalization(c.Request.Context(), loc); err != nil {
		respondServiceError(c, logger, err, "Failed to update localization")
		return
	}
	c.JSON(http.StatusOK, loc)
}
