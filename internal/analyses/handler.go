package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/uploads"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.submit)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
	rg.DELETE("/analyses/:id", h.delete)
}

type submitRequest struct {
	ImageKey string `json:"imageKey"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	record, err := h.Svc.Submit(c.Request.Context(), middleware.UserIDFromContext(c), req.ImageKey)
	if err != nil {
		WriteError(c, err)
		return
	}
	middleware.SetAnalysisID(c, record.ID)
	respond.Created(c, record)
}

func (h *Handler) get(c *gin.Context) {
	analysisID := c.Param("id")
	middleware.SetAnalysisID(c, analysisID)
	record, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, record)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.Items(c, records)
}

func (h *Handler) delete(c *gin.Context) {
	analysisID := c.Param("id")
	middleware.SetAnalysisID(c, analysisID)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), analysisID); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// WriteError maps analysis errors onto the JSON error envelope.
func WriteError(c *gin.Context, err error) {
	var infErr *InferenceError
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "analysis id already in use", nil)
	case errors.Is(err, uploads.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "image does not belong to user", nil)
	case errors.As(err, &infErr):
		respond.Error(c, http.StatusBadGateway, "inference_error", infErr.Error(), gin.H{"upstreamStatus": infErr.Status})
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}
