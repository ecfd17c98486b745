package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type workflowHandler struct {
	workflow portssvc.WorkflowSvc
	authz    portssvc.AuthorizationSvc
}

// RegisterWorkflowRoutes registers workflow definition and next-action routes.
func RegisterWorkflowRoutes(rg *gin.RouterGroup, workflow portssvc.WorkflowSvc, authz portssvc.AuthorizationSvc) {
	h := &workflowHandler{workflow: workflow, authz: authz}

	workflows := rg.Group("/workflows")
	{
		workflows.GET("/:entityType", h.getWorkflow)
		workflows.GET("/:entityType/next-actions", h.nextActions)
	}
}

// getWorkflow godoc
// @Summary Get a workflow
// @Description Returns the workflow of an entity type with its statuses in display order
// @Tags workflows
// @Produce  json
// @Param   entityType path string true "Entity type, e.g. purchase_order"
// @Success 200 {object} dto.WorkflowResponse
// @Failure 404 {object} map[string]string "No workflow for entity type"
// @Security BearerAuth
// @Router /workflows/{entityType} [get]
func (h *workflowHandler) getWorkflow(c *gin.Context) {
	entityType := c.Param("entityType")
	wf, ok := h.workflow.GetWorkflow(entityType)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Workflow not configured")
		c.JSON(http.StatusNotFound, gin.H{"error": "No workflow configured for " + entityType})
		return
	}
	c.JSON(http.StatusOK, dto.WorkflowResponse{Workflow: *wf, Steps: h.workflow.Stepper(entityType)})
}

// nextActions godoc
// @Summary List next actions
// @Description Lists the transitions the caller may take from the given status. An empty list means no action is available.
// @Tags workflows
// @Produce  json
// @Param   entityType path string true "Entity type"
// @Param   status query string true "Current status"
// @Success 200 {object} dto.NextActionsResponse
// @Failure 400 {object} map[string]string "Missing status"
// @Security BearerAuth
// @Router /workflows/{entityType}/next-actions [get]
func (h *workflowHandler) nextActions(c *gin.Context) {
	entityType := c.Param("entityType")
	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, dto.NextActionsResponse{
		EntityType:    entityType,
		CurrentStatus: status,
		Actions:       h.authz.ResolveNextActions(entityType, status, middleware.GetRolesFromContext(c)),
	})
}
