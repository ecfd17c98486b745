package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error to a status code and logs it at a level
// matching its cause. failureMsg is shown for unexpected errors.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Request cancelled by client")
		c.Status(499)
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Caller not permitted", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrApprovalConflict):
		logger.Warn("Approval request already decided", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Approval request already decided", "refresh": true})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting update", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsRetryable(err):
		logger.Error("Storage unavailable", slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": failureMsg, "retryable": true})
	default:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
	}
}
