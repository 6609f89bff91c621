package respond

import (
	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object. RequestID echoes the
// X-Request-Id header so a client can quote it when reporting a failure.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs and sends a standardized error response, aborting the chain.
// Client errors log at warn level, server errors at error level.
func Error(c *gin.Context, status int, code, message string, details any) {
	reqID := c.GetString(KeyRequestID)
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": reqID,
	}
	if userID := c.GetString(KeyUserID); userID != "" {
		fields["user_id"] = userID
	}
	if analysisID := c.GetString(KeyAnalysisID); analysisID != "" {
		fields["analysis_id"] = analysisID
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: reqID,
		},
	})
}
