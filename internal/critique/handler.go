package critique

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/telemetry"
)

// Handler exposes the inference endpoint.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches POST /analyze.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/analyze", h.analyze)
}

type analyzeRequest struct {
	ImageURL string `json:"image_url"`
	UserID   string `json:"user_id"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" || strings.TrimSpace(req.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	resp, err := h.Svc.Analyze(c.Request.Context(), req.ImageURL, req.UserID)
	if err != nil {
		telemetry.Error("critique.failed", map[string]any{"user_id": req.UserID, "err": err})
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	middleware.SetAnalysisID(c, resp.AnalysisID)
	c.JSON(http.StatusOK, resp)
}
