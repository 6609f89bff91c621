package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/analyses"
	"critique-backend/internal/history"
	"critique-backend/internal/report"
	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/telemetry"
	"critique-backend/internal/uploads"
)

const (
	formOverheadBytes = 1 << 20
	recentUploads     = 5
	resultDateLayout  = "Jan 2, 2006 15:04"
)

var uploadNotices = map[string]string{
	"welcome": "Account created. Upload a screenshot to get your first critique.",
}

type uploadBody struct {
	Recent []uploads.Upload
}

type resultBody struct {
	ID            string
	ShortID       string
	Date          string
	Score         string
	RatingText    string
	UIScore       string
	Elements      []string
	Palette       []string
	ColorCritique string
	OtherFeedback string
	ImageURL      string
	ReportURL     string
}

type historyBody struct {
	Fragment template.HTML
}

func (h *Handler) uploadForm(c *gin.Context) {
	h.renderUpload(c, http.StatusOK, "", uploadNotices[c.Query("notice")])
}

func (h *Handler) renderUpload(c *gin.Context, status int, errMsg, notice string) {
	userID := middleware.UserIDFromContext(c)
	recent, err := h.Uploads.List(c.Request.Context(), userID)
	if err != nil {
		telemetry.Warn("web.uploads.list_failed", map[string]any{"user_id": userID, "err": err})
		recent = nil
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > recentUploads {
		recent = recent[:recentUploads]
	}
	h.render(c, status, "upload", page{
		Title:  "Analyze a design",
		Error:  errMsg,
		Notice: notice,
		Body:   uploadBody{Recent: recent},
	})
}

// upload stores the image, runs the critique and hands the record to the
// results page. A stored image whose critique fails is left in place.
func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploads.MaxUploadBytes+formOverheadBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.renderUpload(c, http.StatusBadRequest, "File is larger than 5 MB.", "")
			return
		}
		h.renderUpload(c, http.StatusBadRequest, "Please select an image to upload.", "")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.renderUpload(c, http.StatusBadRequest, "Unable to read the selected file.", "")
		return
	}
	defer file.Close()

	up, err := h.Uploads.Upload(ctx, userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		status, msg := userMessage(err, "Upload failed. Please try again.")
		h.renderUpload(c, status, msg, "")
		return
	}

	rec, err := h.Analyses.Submit(ctx, userID, up.Key)
	if err != nil {
		status, msg := userMessage(err, "Analysis failed. Please try again.")
		h.renderUpload(c, status, msg, "")
		return
	}
	middleware.SetAnalysisID(c, rec.ID)
	h.handOff(c, rec)
	c.Redirect(http.StatusSeeOther, resultsURL(rec.ID))
}

// results prefers the handoff slot and falls back to the store when the slot
// is empty, belongs to another user or holds a different id.
func (h *Handler) results(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := strings.TrimSpace(c.Query("id"))
	middleware.SetAnalysisID(c, id)

	rec, ok, err := h.Handoff.Take(c.Writer, c.Request)
	if err != nil {
		telemetry.Warn("web.handoff.take_failed", map[string]any{"user_id": userID, "err": err})
	}
	if ok && (rec.UserID != userID || (id != "" && rec.ID != id)) {
		ok = false
	}
	if !ok {
		if id == "" {
			c.Redirect(http.StatusSeeOther, "/upload")
			return
		}
		rec, err = h.Analyses.Get(c.Request.Context(), userID, id)
		if err != nil {
			status, msg := userMessage(err, "Failed to load analysis.")
			h.renderError(c, status, msg)
			return
		}
	}

	h.render(c, http.StatusOK, "results", page{
		Title: "Analysis results",
		Body:  h.buildResult(c, rec),
	})
}

func (h *Handler) buildResult(c *gin.Context, rec analyses.Record) resultBody {
	body := resultBody{
		ID:            rec.ID,
		ShortID:       shortID(rec.ID),
		Date:          history.NotAvailable,
		Score:         history.UnknownScore,
		RatingText:    history.NotAvailable,
		ColorCritique: history.NotAvailable,
		OtherFeedback: history.NoFeedback,
		ImageURL:      rec.ImageURL,
		ReportURL:     "/results/" + url.PathEscape(rec.ID) + "/report.pdf",
	}
	if !rec.CreatedAt.IsZero() {
		body.Date = rec.CreatedAt.In(h.Location).Format(resultDateLayout)
	}
	if body.ImageURL == "" && rec.ImageKey != "" {
		if u, err := h.Uploads.PublicURL(c.Request.Context(), rec.ImageKey); err == nil {
			body.ImageURL = u
		}
	}

	res := rec.Result
	if res == nil {
		return body
	}
	if strings.TrimSpace(res.OverallRating) != "" {
		score, rest := history.ParseRating(res.OverallRating)
		body.Score = score
		if rest != "" {
			body.RatingText = rest
		}
	}
	if s := strings.TrimSpace(res.ColorCritique); s != "" {
		body.ColorCritique = s
	}
	if s := strings.TrimSpace(res.OtherFeedback); s != "" {
		body.OtherFeedback = s
	}
	for _, hex := range res.ColorPalette {
		hex = strings.TrimSpace(hex)
		if _, _, _, ok := report.ParseHex(hex); ok {
			body.Palette = append(body.Palette, strings.ToUpper(hex))
		}
	}
	if res.UIScore != nil {
		body.UIScore = fmt.Sprintf("%.1f", *res.UIScore)
	}
	body.Elements = res.Elements
	return body
}

func (h *Handler) report(c *gin.Context) {
	middleware.SetAnalysisID(c, c.Param("id"))
	rec, err := h.Analyses.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		status, msg := userMessage(err, "Failed to load analysis.")
		h.renderError(c, status, msg)
		return
	}
	report.Serve(c, rec, h.now())
}

func (h *Handler) history(c *gin.Context) {
	records, err := h.Analyses.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		status, msg := userMessage(err, "Failed to load history.")
		h.renderError(c, status, msg)
		return
	}
	state := history.FromQuery(h.PageSize, c.Query("page"), c.Query("pageSize"), c.Query("layout"), records)
	notice := ""
	if c.Query("deleted") == "1" {
		notice = "Analysis deleted."
	}
	h.renderHistory(c, http.StatusOK, state, "", notice)
}

func (h *Handler) renderHistory(c *gin.Context, status int, state history.State, errMsg, notice string) {
	fragment, err := h.History.HTML(history.BuildView(state, h.historyOptions()))
	if err != nil {
		telemetry.Error("web.history.render_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"err":        err,
		})
		h.renderError(c, http.StatusInternalServerError, "Failed to render history.")
		return
	}
	h.render(c, status, "history", page{
		Title:  "History",
		Error:  errMsg,
		Notice: notice,
		Body:   historyBody{Fragment: fragment},
	})
}

// deleteAnalysis rebuilds the page the form was posted from, deletes through
// the pager state and redirects back to the clamped page.
func (h *Handler) deleteAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	middleware.SetAnalysisID(c, c.Param("id"))
	ctx := c.Request.Context()
	records, err := h.Analyses.List(ctx, userID)
	if err != nil {
		status, msg := userMessage(err, "Failed to load history.")
		h.renderError(c, status, msg)
		return
	}
	state := history.FromQuery(h.PageSize, c.Query("page"), c.Query("pageSize"), c.Query("layout"), records)

	deleter := history.DeleterFunc(func(ctx context.Context, id string) error {
		return h.Analyses.Delete(ctx, userID, id)
	})
	next, err := state.Delete(ctx, deleter, c.Param("id"))
	if err != nil {
		status, msg := userMessage(err, "Failed to delete analysis.")
		h.renderHistory(c, status, state, msg, "")
		return
	}
	c.Redirect(http.StatusSeeOther, h.historyOptions().PageURL(next.Page, next.Layout)+"&deleted=1")
}

func (h *Handler) viewAnalysis(c *gin.Context) {
	middleware.SetAnalysisID(c, c.Param("id"))
	rec, err := h.Analyses.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		status, msg := userMessage(err, "Failed to load analysis.")
		h.renderError(c, status, msg)
		return
	}
	h.handOff(c, rec)
	c.Redirect(http.StatusSeeOther, resultsURL(rec.ID))
}

// handOff fills the slot. The results page reads from the store when this fails.
func (h *Handler) handOff(c *gin.Context, rec analyses.Record) {
	if err := h.Handoff.Put(c.Writer, c.Request, rec); err != nil {
		telemetry.Warn("web.handoff.put_failed", map[string]any{
			"user_id":     rec.UserID,
			"analysis_id": rec.ID,
			"err":         err,
		})
	}
}

func resultsURL(id string) string {
	return "/results?id=" + url.QueryEscape(id)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
