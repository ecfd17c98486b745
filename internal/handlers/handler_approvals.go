package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/middleware"
	"github.com/SscSPs/shopdesk_backend/internal/utils"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 25 * time.Second

// approvalsHandler handles the approval request lifecycle and the mutation guards that raise requests.
type approvalsHandler struct {
	approvals portssvc.ApprovalLifecycleSvcFacade
	authz     portssvc.AuthorizationSvc
	posthog   *utils.PosthogClientWrapper
}

func newApprovalsHandler(approvals portssvc.ApprovalLifecycleSvcFacade, authz portssvc.AuthorizationSvc, posthog *utils.PosthogClientWrapper) *approvalsHandler {
	return &approvalsHandler{approvals: approvals, authz: authz, posthog: posthog}
}

// RegisterApprovalRoutes registers approval routes. posthog may be nil.
func RegisterApprovalRoutes(rg *gin.RouterGroup, approvals portssvc.ApprovalLifecycleSvcFacade, authz portssvc.AuthorizationSvc, posthog *utils.PosthogClientWrapper) {
	h := newApprovalsHandler(approvals, authz, posthog)

	routes := rg.Group("/approvals")
	{
		routes.POST("/check", h.checkApprovalRequired)
		routes.POST("/guard", h.guardMutation)
		routes.POST("/transition", h.requestTransition)
		routes.POST("", h.createApproval)
		routes.GET("", h.listPending)
		routes.GET("/stream", h.streamPending)
		routes.GET("/decided", h.listDecided)
		routes.GET("/entity/:entityType/:entityID", h.entityHistory)
		routes.GET("/:requestID", h.getApproval)
		routes.POST("/:requestID/approve", h.approve)
		routes.POST("/:requestID/reject", h.reject)
	}
}

// checkApprovalRequired godoc
// @Summary Check whether sign-off is required
// @Description Evaluates the approval rules of an entity type against entity data
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   check body dto.CheckApprovalRequest true "Entity type and data"
// @Success 200 {object} dto.ApprovalCheckResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /approvals/check [post]
func (h *approvalsHandler) checkApprovalRequired(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckApprovalRequired", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	check := h.authz.CheckApprovalRequired(c.Request.Context(), req.EntityType, req.Data)
	c.JSON(http.StatusOK, dto.ToApprovalCheckResponse(check))
}

// guardMutation godoc
// @Summary Guard an entity write
// @Description Called before committing a write. When a rule matches, an approval request is raised instead and proceed is false.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   mutation body dto.GuardMutationRequest true "Entity and data about to be written"
// @Success 200 {object} dto.MutationDecisionResponse "Write may proceed"
// @Success 202 {object} dto.MutationDecisionResponse "Approval request raised"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /approvals/guard [post]
func (h *approvalsHandler) guardMutation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GuardMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GuardMutation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decision, err := h.authz.GuardMutation(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to guard mutation")
		return
	}
	h.respondDecision(c, decision)
}

// requestTransition godoc
// @Summary Request a status transition
// @Description Checks the caller may take the transition and raises an approval request when the transition or the entity data requires sign-off
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   transition body dto.TransitionRequest true "Entity and transition"
// @Success 200 {object} dto.MutationDecisionResponse "Transition may proceed"
// @Success 202 {object} dto.MutationDecisionResponse "Approval request raised"
// @Failure 400 {object} map[string]string "Unknown transition"
// @Failure 403 {object} map[string]string "Caller may not take the transition"
// @Security BearerAuth
// @Router /approvals/transition [post]
func (h *approvalsHandler) requestTransition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestTransition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decision, err := h.authz.RequestTransition(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to request transition")
		return
	}
	h.respondDecision(c, decision)
}

func (h *approvalsHandler) respondDecision(c *gin.Context, decision *domain.MutationDecision) {
	if decision.Proceed {
		c.JSON(http.StatusOK, dto.ToMutationDecisionResponse(decision))
		return
	}
	middleware.PosthogEvent(c, h.posthog, "approval_requested", map[string]any{
		"entity_type": decision.Request.EntityType,
		"rule_id":     decision.Request.RuleID,
	})
	c.JSON(http.StatusAccepted, dto.ToMutationDecisionResponse(decision))
}

// createApproval godoc
// @Summary Create an approval request
// @Description Raises one pending approval request for a triggering action. Approver roles come from the configured rules named by ruleId and matchedRuleIds.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   approval body dto.CreateApprovalRequest true "Approval request details"
// @Success 201 {object} dto.ApprovalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /approvals [post]
func (h *approvalsHandler) createApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateApproval", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.approvals.CreateApprovalRequest(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create approval request")
		return
	}
	logger.Info("Approval request created", slog.String("approval_id", request.ID))
	middleware.PosthogEvent(c, h.posthog, "approval_requested", map[string]any{
		"entity_type": request.EntityType,
		"rule_id":     request.RuleID,
	})
	c.JSON(http.StatusCreated, dto.ToApprovalResponse(request))
}

// listPending godoc
// @Summary List pending approvals
// @Description Lists pending approval requests newest first, with requester names
// @Tags approvals
// @Produce  json
// @Success 200 {object} dto.ListApprovalsResponse
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /approvals [get]
func (h *approvalsHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	list, err := h.approvals.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list pending approvals")
		return
	}
	c.JSON(http.StatusOK, dto.ToPendingApprovalsResponse(list))
}

// streamPending godoc
// @Summary Stream pending approvals
// @Description Server-sent events carrying the full pending list after every change. EventSource clients may pass the token as access_token.
// @Tags approvals
// @Produce  text/event-stream
// @Success 200 {object} dto.ListApprovalsResponse "pending events"
// @Security BearerAuth
// @Router /approvals/stream [get]
func (h *approvalsHandler) streamPending(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	updates := h.approvals.Watch(ctx)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	logger.Info("Pending approvals stream opened")
	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case list, ok := <-updates:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{Event: "pending", Data: dto.ToPendingApprovalsResponse(list)})
			return true
		case <-keepAlive.C:
			c.Render(-1, sse.Event{Event: "ping", Data: strconv.FormatInt(time.Now().Unix(), 10)})
			return true
		case <-ctx.Done():
			return false
		}
	})
	logger.Info("Pending approvals stream closed")
}

// listDecided godoc
// @Summary List decided approvals
// @Description Pages through approved and rejected requests, most recently reviewed first
// @Tags approvals
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListApprovalsResponse
// @Failure 400 {object} map[string]string "Invalid token or limit"
// @Security BearerAuth
// @Router /approvals/decided [get]
func (h *approvalsHandler) listDecided(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	requests, token, err := h.approvals.ListDecided(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list decided approvals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListApprovalsResponse(requests, token))
}

// entityHistory godoc
// @Summary Approval history of an entity
// @Description Lists every approval request raised for an entity, newest first
// @Tags approvals
// @Produce  json
// @Param   entityType path string true "Entity type"
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.ListApprovalsResponse
// @Security BearerAuth
// @Router /approvals/entity/{entityType}/{entityID} [get]
func (h *approvalsHandler) entityHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requests, err := h.approvals.History(c.Request.Context(), c.Param("entityType"), c.Param("entityID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list approval history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListApprovalsResponse(requests, nil))
}

// getApproval godoc
// @Summary Get an approval request
// @Tags approvals
// @Produce  json
// @Param   requestID path string true "Approval request ID"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 404 {object} map[string]string "Approval request not found"
// @Security BearerAuth
// @Router /approvals/{requestID} [get]
func (h *approvalsHandler) getApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("approval_id", c.Param("requestID")))
	request, err := h.approvals.GetApprovalRequest(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve approval request")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponse(request))
}

// approve godoc
// @Summary Approve a request
// @Description Approves a pending request. The caller must hold one of the request's approver roles.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Approval request ID"
// @Param   decision body dto.DecideApprovalRequest false "Optional comment"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 403 {object} map[string]string "Caller holds no approver role"
// @Failure 404 {object} map[string]string "Approval request not found"
// @Failure 409 {object} map[string]string "Already decided"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /approvals/{requestID}/approve [post]
func (h *approvalsHandler) approve(c *gin.Context) {
	h.decide(c, domain.ApprovalApproved)
}

// reject godoc
// @Summary Reject a request
// @Description Rejects a pending request. The caller must hold one of the request's approver roles.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Approval request ID"
// @Param   decision body dto.DecideApprovalRequest false "Optional comment"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 403 {object} map[string]string "Caller holds no approver role"
// @Failure 404 {object} map[string]string "Approval request not found"
// @Failure 409 {object} map[string]string "Already decided"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /approvals/{requestID}/reject [post]
func (h *approvalsHandler) reject(c *gin.Context) {
	h.decide(c, domain.ApprovalRejected)
}

func (h *approvalsHandler) decide(c *gin.Context, status domain.ApprovalStatus) {
	requestID := c.Param("requestID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("approval_id", requestID),
		slog.String("decision", string(status)))

	var req dto.DecideApprovalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for approval decision", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var (
		decided *domain.ApprovalRequest
		err     error
	)
	if status == domain.ApprovalApproved {
		decided, err = h.approvals.ApproveRequest(c.Request.Context(), caller, requestID, req.Comment)
	} else {
		decided, err = h.approvals.RejectRequest(c.Request.Context(), caller, requestID, req.Comment)
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record approval decision")
		return
	}

	logger.Info("Approval request decided")
	middleware.PosthogEvent(c, h.posthog, "approval_decided", map[string]any{
		"decision":    string(status),
		"entity_type": decided.EntityType,
		"rule_id":     decided.RuleID,
	})
	c.JSON(http.StatusOK, dto.ToApprovalResponse(decided))
}
