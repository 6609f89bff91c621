package history

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/analyses"
	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
)

// maxPageSize bounds the pageSize query parameter.
const maxPageSize = 50

// Lister returns a user's records newest first.
type Lister interface {
	List(ctx context.Context, userID string) ([]analyses.Record, error)
}

// Handler serves the paged history as JSON.
type Handler struct {
	Records  Lister
	PageSize int
}

func NewHandler(records Lister, pageSize int) *Handler {
	return &Handler{Records: records, PageSize: pageSize}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.get)
}

func (h *Handler) get(c *gin.Context) {
	records, err := h.Records.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		analyses.WriteError(c, err)
		return
	}
	state := FromQuery(h.PageSize, c.Query("page"), c.Query("pageSize"), c.Query("layout"), records)
	respond.OK(c, BuildView(state, ViewOptions{BasePath: "/history"}))
}

// FromQuery builds a loaded state from raw query values. Invalid values fall
// back to defaults; a page past the end is clamped to the last page.
func FromQuery(defaultSize int, page, pageSize, layout string, records []analyses.Record) State {
	size := defaultSize
	if n, err := strconv.Atoi(pageSize); err == nil && n > 0 {
		size = n
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	state := New(size)
	if n, err := strconv.Atoi(page); err == nil && n > 1 {
		state.Page = n
	}
	if mode, ok := ParseLayout(layout); ok {
		state = state.SetLayout(mode)
	}
	return state.Load(records)
}

