package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
)

// multipart envelope allowance on top of the file itself
const formOverheadBytes = 1 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.upload)
	rg.GET("/uploads", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+formOverheadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "file is larger than 5 MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "please select an image to upload", nil)
		return
	}
	if err := Validate(fileHeader.Filename, fileHeader.Size); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	up, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.Created(c, up)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.Items(c, items)
}

// WriteError maps upload errors onto the JSON error envelope.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadGateway, "storage_error", "failed to store image", nil)
	}
}
