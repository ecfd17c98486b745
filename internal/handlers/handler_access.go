package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accessHandler answers module and feature gate queries for the UI.
type accessHandler struct {
	authz  portssvc.AuthorizationSvc
	gating portssvc.GatingSvc
	config portssvc.ConfigStoreReaderSvc
}

func newAccessHandler(authz portssvc.AuthorizationSvc, gating portssvc.GatingSvc, config portssvc.ConfigStoreReaderSvc) *accessHandler {
	return &accessHandler{authz: authz, gating: gating, config: config}
}

// RegisterAccessRoutes registers the gate query routes.
func RegisterAccessRoutes(rg *gin.RouterGroup, authz portssvc.AuthorizationSvc, gating portssvc.GatingSvc, config portssvc.ConfigStoreReaderSvc) {
	h := newAccessHandler(authz, gating, config)

	access := rg.Group("/access")
	{
		access.GET("/modules", h.listVisibleModules)
		access.GET("/modules/:moduleID", h.canAccessModule)
		access.GET("/features/:featureID", h.canAccessFeature)
	}
}

// listVisibleModules godoc
// @Summary List visible modules
// @Description Lists the modules passing the module gate under the current operation mode
// @Tags access
// @Produce  json
// @Success 200 {object} dto.VisibleModulesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /access/modules [get]
func (h *accessHandler) listVisibleModules(c *gin.Context) {
	c.JSON(http.StatusOK, dto.VisibleModulesResponse{
		OperationMode: h.config.Snapshot().OperationMode,
		Modules:       h.gating.VisibleModules(),
	})
}

// canAccessModule godoc
// @Summary Check module access
// @Description Reports whether the module is enabled and the caller holds one of the required roles
// @Tags access
// @Produce  json
// @Param   moduleID path string true "Module ID"
// @Param   requiredRoles query string false "Comma separated roles, any one suffices"
// @Success 200 {object} dto.AccessResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /access/modules/{moduleID} [get]
func (h *accessHandler) canAccessModule(c *gin.Context) {
	moduleID := c.Param("moduleID")
	allowed := h.authz.CanAccessModule(moduleID, middleware.GetRolesFromContext(c), requiredRolesQuery(c))
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Module access resolved",
		slog.String("module_id", moduleID), slog.Bool("allowed", allowed))
	c.JSON(http.StatusOK, dto.AccessResponse{ID: moduleID, Allowed: allowed})
}

// canAccessFeature godoc
// @Summary Check feature access
// @Description Reports whether the feature and its module are enabled and the caller holds one of the required roles
// @Tags access
// @Produce  json
// @Param   featureID path string true "Feature ID"
// @Param   requiredRoles query string false "Comma separated roles, any one suffices"
// @Success 200 {object} dto.AccessResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /access/features/{featureID} [get]
func (h *accessHandler) canAccessFeature(c *gin.Context) {
	featureID := c.Param("featureID")
	allowed := h.authz.CanAccessFeature(featureID, middleware.GetRolesFromContext(c), requiredRolesQuery(c))
	c.JSON(http.StatusOK, dto.AccessResponse{ID: featureID, Allowed: allowed})
}

func requiredRolesQuery(c *gin.Context) []string {
	roles := []string{}
	for _, raw := range c.QueryArray("requiredRoles") {
		for _, role := range strings.Split(raw, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}
	return roles
}
