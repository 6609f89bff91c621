package identity

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

// RegisterRoutes attaches sign-up and sign-in to public and the session routes to protected.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/signup", h.signUp)
	public.POST("/auth/signin", h.signIn)
	protected.POST("/auth/signout", h.signOut)
	protected.GET("/auth/session", h.session)
}

func (h *Handler) signUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	session, err := h.Svc.SignUp(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.Created(c, session)
}

func (h *Handler) signIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	session, err := h.Svc.SignIn(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, session)
}

func (h *Handler) signOut(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	if err := h.Svc.SignOut(c.Request.Context(), claims); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) session(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	user, err := h.Svc.Current(c.Request.Context(), claims)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, user)
}

// WriteError maps identity errors onto the JSON error envelope.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrEmailTaken):
		respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "authentication failed", nil)
	}
}
