package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/identity"
	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/telemetry"
)

var loginNotices = map[string]string{
	"signed_out": "You have been signed out.",
	"expired":    "Your session has ended. Please sign in again.",
}

type loginBody struct {
	Email         string
	Next          string
	GoogleEnabled bool
}

type registerBody struct {
	Email       string
	FullName    string
	DateOfBirth string
}

func (h *Handler) loginForm(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if middleware.UserIDFromContext(c) != "" {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	h.render(c, http.StatusOK, "login", page{
		Title:  "Sign in",
		Notice: loginNotices[c.Query("notice")],
		Body:   loginBody{Next: next, GoogleEnabled: h.GoogleEnabled},
	})
}

func (h *Handler) login(c *gin.Context) {
	req := identity.SignInRequest{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	next := safeNext(c.PostForm("next"))

	session, err := h.Identity.SignIn(c.Request.Context(), req)
	if err != nil {
		status, msg := userMessage(err, "Sign in failed. Please try again.")
		h.render(c, status, "login", page{
			Title: "Sign in",
			Error: msg,
			Body:  loginBody{Email: req.Email, Next: next, GoogleEnabled: h.GoogleEnabled},
		})
		return
	}
	identity.SetSessionCookie(c, session)
	c.Redirect(http.StatusSeeOther, next)
}

func (h *Handler) registerForm(c *gin.Context) {
	if middleware.UserIDFromContext(c) != "" {
		c.Redirect(http.StatusSeeOther, "/upload")
		return
	}
	h.render(c, http.StatusOK, "register", page{Title: "Create account", Body: registerBody{}})
}

func (h *Handler) register(c *gin.Context) {
	req := identity.SignUpRequest{
		Email:           strings.TrimSpace(c.PostForm("email")),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		FullName:        strings.TrimSpace(c.PostForm("full_name")),
		DateOfBirth:     strings.TrimSpace(c.PostForm("date_of_birth")),
	}

	session, err := h.Identity.SignUp(c.Request.Context(), req)
	if err != nil {
		status, msg := userMessage(err, "Registration failed. Please try again.")
		h.render(c, status, "register", page{
			Title: "Create account",
			Error: msg,
			Body:  registerBody{Email: req.Email, FullName: req.FullName, DateOfBirth: req.DateOfBirth},
		})
		return
	}
	identity.SetSessionCookie(c, session)
	c.Redirect(http.StatusSeeOther, "/upload?notice=welcome")
}

// logout revokes the session when one is present and always clears the cookie.
func (h *Handler) logout(c *gin.Context) {
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		if err := h.Identity.SignOut(c.Request.Context(), claims); err != nil {
			telemetry.Warn("web.signout.failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"user_id":    claims.Sub,
				"err":        err,
			})
		}
	}
	identity.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login?notice=signed_out")
}
