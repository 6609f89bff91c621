// Package web serves the HTML pages. Every user action is a form post or a
// link that ends in a redirect or a freshly rendered page.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/analyses"
	"critique-backend/internal/handoff"
	"critique-backend/internal/history"
	"critique-backend/internal/identity"
	"critique-backend/internal/profiles"
	"critique-backend/internal/uploads"
)

// Deps are the gateways the pages drive.
type Deps struct {
	Identity      *identity.Service
	Profiles      *profiles.Service
	Uploads       *uploads.Service
	Analyses      *analyses.Service
	Handoff       *handoff.Store
	History       *history.Renderer
	PageSize      int
	GoogleEnabled bool
	Location      *time.Location
	Now           func() time.Time
}

// Handler renders pages and handles their form posts.
type Handler struct {
	Deps
	pages pages
}

// NewHandler parses the page templates.
func NewHandler(deps Deps) (*Handler, error) {
	parsed, err := parsePages()
	if err != nil {
		return nil, err
	}
	if deps.PageSize < 1 {
		deps.PageSize = history.DefaultPageSize
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &Handler{Deps: deps, pages: parsed}, nil
}

// RegisterRoutes attaches sign-in pages to public and everything else to protected.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/login", h.loginForm)
	public.POST("/login", h.login)
	public.GET("/register", h.registerForm)
	public.POST("/register", h.register)
	public.GET("/logout", h.logout)
	public.POST("/logout", h.logout)

	protected.GET("/", h.home)
	protected.GET("/upload", h.uploadForm)
	protected.POST("/upload", h.upload)
	protected.GET("/results", h.results)
	protected.GET("/results/:id/report.pdf", h.report)
	protected.GET("/history", h.history)
	protected.POST("/history/:id/delete", h.deleteAnalysis)
	protected.POST("/history/:id/view", h.viewAnalysis)
	protected.GET("/profile", h.profileForm)
	protected.POST("/profile", h.updateProfile)
}

func (h *Handler) home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/upload")
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) historyOptions() history.ViewOptions {
	return history.ViewOptions{BasePath: "/history", Location: h.Location}
}
