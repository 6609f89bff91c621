package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/shared/telemetry"
)

// RequestIDHeader carries the request id in both directions. The API forwards
// it to the inference endpoint so one critique shares an id across processes.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 64

// RequestID reuses a well-formed inbound id or mints a UUID, echoes it in the
// response and stores it on both the gin and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(respond.KeyRequestID, id)
		c.Request = c.Request.WithContext(telemetry.WithRequestID(c.Request.Context(), id))
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(respond.KeyRequestID)
}

// SetAnalysisID records which analysis the request acts on for request and error logs.
func SetAnalysisID(c *gin.Context, id string) {
	if id != "" {
		c.Set(respond.KeyAnalysisID, id)
	}
}

// AnalysisIDFromContext returns the id recorded by SetAnalysisID.
func AnalysisIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(respond.KeyAnalysisID)
}

// validRequestID accepts short ids of letters, digits, dots, dashes and underscores,
// keeping caller-supplied values out of log lines otherwise.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
