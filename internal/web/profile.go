package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/profiles"
	"critique-backend/internal/shared/server/middleware"
)

type profileBody struct {
	Email       string
	FullName    string
	DateOfBirth string
	Age         int
}

func (h *Handler) profileForm(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	profile, err := h.Profiles.Get(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, profiles.ErrNotFound) {
		status, msg := userMessage(err, "Failed to load profile.")
		h.renderError(c, status, msg)
		return
	}
	notice := ""
	if c.Query("notice") == "saved" {
		notice = "Profile updated."
	}
	h.render(c, http.StatusOK, "profile", page{
		Title:  "Profile",
		Notice: notice,
		Body:   h.profileBody(c, profile),
	})
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name := c.PostForm("full_name")
	dob := c.PostForm("date_of_birth")

	_, err := h.Profiles.Update(c.Request.Context(), userID, profiles.Update{FullName: &name, DateOfBirth: &dob})
	if err != nil {
		status, msg := userMessage(err, "Failed to update profile.")
		h.render(c, status, "profile", page{
			Title: "Profile",
			Error: msg,
			Body:  profileBody{Email: middleware.UserEmailFromContext(c), FullName: name, DateOfBirth: dob},
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile?notice=saved")
}

func (h *Handler) profileBody(c *gin.Context, p profiles.Profile) profileBody {
	body := profileBody{Email: p.Email, FullName: p.FullName, DateOfBirth: p.DateOfBirth}
	if body.Email == "" {
		body.Email = middleware.UserEmailFromContext(c)
	}
	if born, err := time.Parse(profiles.DateLayout, p.DateOfBirth); err == nil {
		body.Age = profiles.Age(born, h.now())
	}
	return body
}
