package respond

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Keys under which middleware and handlers keep request-scoped values on the gin context.
const (
	KeyRequestID  = "requestId"
	KeyUserID     = "userId"
	KeyAnalysisID = "analysisId"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 JSON response.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}

// Items writes {"items": [...]}; a nil list is sent as [].
func Items[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	OK(c, gin.H{"items": items})
}

// Attachment sends data as a download saved under fileName.
func Attachment(c *gin.Context, contentType, fileName string, data []byte) {
	name := strings.NewReplacer(`"`, "", `\`, "", "\r", "", "\n", "").Replace(fileName)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// HTML writes a rendered page.
func HTML(c *gin.Context, status int, body []byte) {
	c.Data(status, "text/html; charset=utf-8", body)
}
