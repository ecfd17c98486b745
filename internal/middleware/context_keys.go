package middleware

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and rolesKey store the resolved caller in the request context.
const (
	userIDKey = contextKey("userID")
	rolesKey  = contextKey("roles")
)

// WithCaller returns a copy of ctx carrying the caller's id and roles.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	ctx = context.WithValue(ctx, userIDKey, caller.UserID)
	return context.WithValue(ctx, rolesKey, caller.Roles)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRolesFromContext returns the caller roles resolved by AuthMiddleware.
// A caller without a roles claim has no roles.
func GetRolesFromContext(c *gin.Context) []string {
	roles, _ := c.Request.Context().Value(rolesKey).([]string)
	return roles
}

// GetCallerFromContext assembles the domain caller for service calls.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Caller{}, false
	}
	return domain.Caller{UserID: userID, Roles: GetRolesFromContext(c)}, true
}
