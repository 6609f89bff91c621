package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.update)
}

func (h *Handler) get(c *gin.Context) {
	profile, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load profile")
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) update(c *gin.Context) {
	var req Update
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	profile, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to update profile")
		return
	}
	respond.OK(c, profile)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
