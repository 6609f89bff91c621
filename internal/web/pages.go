package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/shared/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "register", "upload", "results", "history", "profile", "error"}

// page is the data every template receives. Body carries page-specific fields.
type page struct {
	Title     string
	UserEmail string
	UserName  string
	Error     string
	Notice    string
	Body      any
}

type pages map[string]*template.Template

// parsePages pairs each page template with the shared layout.
func parsePages() (pages, error) {
	out := make(pages, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}

func (h *Handler) render(c *gin.Context, status int, name string, p page) {
	tmpl, ok := h.pages[name]
	if !ok {
		c.String(http.StatusInternalServerError, "unknown page")
		return
	}
	if p.UserEmail == "" {
		p.UserEmail = middleware.UserEmailFromContext(c)
	}
	if p.UserName == "" {
		p.UserName = middleware.UserNameFromContext(c)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		telemetry.Error("web.render.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"page":       name,
			"err":        err,
		})
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	respond.HTML(c, status, buf.Bytes())
}

func (h *Handler) renderError(c *gin.Context, status int, msg string) {
	h.render(c, status, "error", page{Title: "Something went wrong", Error: msg})
}

// RateLimited renders the 429 page for throttled form posts.
func (h *Handler) RateLimited(c *gin.Context, retryAfter time.Duration) {
	msg := fmt.Sprintf("Too many requests. Please wait %d seconds and try again.", middleware.RetryAfterSeconds(retryAfter))
	h.render(c, http.StatusTooManyRequests, "error", page{Title: "Slow down", Error: msg})
}
