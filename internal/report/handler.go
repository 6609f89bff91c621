package report

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/analyses"
	"critique-backend/internal/shared/metrics"
	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/shared/telemetry"
)

// RecordGetter reads one of the user's analyses.
type RecordGetter interface {
	Get(ctx context.Context, userID, analysisID string) (analyses.Record, error)
}

// Handler serves report downloads.
type Handler struct {
	Records RecordGetter
	Now     func() time.Time
}

func NewHandler(records RecordGetter) *Handler {
	return &Handler{Records: records, Now: time.Now}
}

// RegisterRoutes attaches the report route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses/:id/report", h.download)
}

func (h *Handler) download(c *gin.Context) {
	analysisID := c.Param("id")
	middleware.SetAnalysisID(c, analysisID)
	rec, err := h.Records.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		analyses.WriteError(c, err)
		return
	}
	Serve(c, rec, h.Now())
}

// Serve renders rec and writes it as an attachment.
func Serve(c *gin.Context, rec analyses.Record, generatedAt time.Time) {
	data, err := Build(rec, generatedAt)
	if err != nil {
		telemetry.Error("report.build.failed", map[string]any{"analysis_id": rec.ID, "err": err})
		respond.Error(c, http.StatusInternalServerError, "report_error", "failed to generate report", nil)
		return
	}
	metrics.IncReportGenerated()
	respond.Attachment(c, ContentType, FileName(rec.ID), data)
}
