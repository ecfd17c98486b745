package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/shopdesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the analytics event for each tracked route template. Routes not listed
// fall back to a name derived from the template.
var routeEvents = map[string]string{
	"GET /api/v1/access/modules":                     "visible_modules_listed",
	"GET /api/v1/access/modules/:moduleID":           "module_access_checked",
	"GET /api/v1/access/features/:featureID":         "feature_access_checked",
	"GET /api/v1/workflows/:entityType/next-actions": "next_actions_resolved",
	"POST /api/v1/approvals/check":                   "approval_checked",
	"POST /api/v1/approvals/guard":                   "mutation_guarded",
	"POST /api/v1/approvals/transition":              "transition_requested",
	"PUT /api/v1/config/modules/:moduleID":           "module_toggled",
	"PUT /api/v1/config/features/:featureID":         "feature_toggled",
	"PUT /api/v1/config/operation-mode":              "operation_mode_changed",
	"PUT /api/v1/config/workflows/:entityType":       "workflow_saved",
	"PUT /api/v1/config/approval-rules/:ruleID":      "approval_rule_saved",
}

// untrackedRoutes are polled, long-lived, or reported by the handler itself (approval creation).
var untrackedRoutes = map[string]bool{
	"/health":                  true,
	"/api/v1/approvals":        true,
	"/api/v1/approvals/stream": true,
}

// PosthogMiddleware records one event per successful authenticated request.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedRoutes[c.FullPath()] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		caller, ok := GetCallerFromContext(c)
		if !ok {
			return
		}
		eventName := RouteEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := requestProperties(c)
		props["status_code"] = c.Writer.Status()
		props["roles"] = caller.Roles
		for _, param := range c.Params {
			props[paramProperty(param.Key)] = param.Value
		}
		posthogClient.Enqueue(caller.UserID, eventName, props)
	}
}

// RouteEventName maps a method and route template to its analytics event name.
// Unmatched routes (404s) have an empty template and produce no event.
func RouteEventName(method, route string) string {
	if route == "" {
		return ""
	}
	if name, ok := routeEvents[method+" "+route]; ok {
		return name
	}
	name := strings.TrimPrefix(route, "/api/v1/")
	name = strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(name)
	return strings.ToLower(method) + "_" + name
}

// paramProperty turns a route param such as entityType into entity_type.
func paramProperty(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func requestProperties(c *gin.Context) map[string]any {
	return map[string]any{
		"method": c.Request.Method,
		"route":  c.FullPath(),
	}
}

// PosthogEvent sends a domain event (approval requested or decided) on behalf of the caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}

	props := requestProperties(c)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}
