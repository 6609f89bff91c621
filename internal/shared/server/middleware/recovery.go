package middleware

import (
	"fmt"
	"html/template"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/shared/telemetry"
)

const panicPage = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Something went wrong</title></head>
<body><h1>Something went wrong</h1><p>Please go back and try again.</p><p><small>Reference: %s</small></p></body></html>`

// Recovery turns a panic into a 500. Browser page requests get a plain HTML
// page, everything else the JSON envelope. A response that already started is
// only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			reqID := RequestIDFromContext(c)
			telemetry.Error("panic", map[string]any{
				"request_id":  reqID,
				"user_id":     UserIDFromContext(c),
				"analysis_id": AnalysisIDFromContext(c),
				"error":       rec,
				"stack":       string(debug.Stack()),
				"path":        c.Request.URL.Path,
				"method":      c.Request.Method,
			})
			switch {
			case c.Writer.Written():
				c.Abort()
			case wantsPage(c):
				respond.HTML(c, http.StatusInternalServerError, []byte(fmt.Sprintf(panicPage, template.HTMLEscapeString(reqID))))
				c.Abort()
			default:
				respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
			}
		}()
		c.Next()
	}
}

// wantsPage reports a browser navigation outside the JSON API.
func wantsPage(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
