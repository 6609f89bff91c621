package web

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"critique-backend/internal/analyses"
	"critique-backend/internal/identity"
	"critique-backend/internal/profiles"
	"critique-backend/internal/uploads"
)

const validationPrefix = "validation error: "

// userMessage turns a gateway error into a status and a sentence for the page.
func userMessage(err error, fallback string) (int, string) {
	var infErr *analyses.InferenceError
	switch {
	case errors.Is(err, profiles.ErrValidation),
		errors.Is(err, uploads.ErrValidation),
		errors.Is(err, analyses.ErrValidation):
		return http.StatusBadRequest, sentence(strings.TrimPrefix(err.Error(), validationPrefix))
	case errors.Is(err, identity.ErrEmailTaken):
		return http.StatusConflict, "An account with this email already exists."
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, analyses.ErrNotFound):
		return http.StatusNotFound, "Analysis not found."
	case errors.Is(err, analyses.ErrConflict):
		return http.StatusConflict, "This analysis could not be saved. Please try again."
	case errors.Is(err, profiles.ErrNotFound):
		return http.StatusNotFound, "Profile not found."
	case errors.Is(err, uploads.ErrForbidden):
		return http.StatusForbidden, "You do not have access to this image."
	case errors.As(err, &infErr):
		if infErr.Message != "" {
			return http.StatusBadGateway, "Analysis failed: " + sentence(infErr.Message)
		}
		return http.StatusBadGateway, "Analysis failed. Please try again."
	default:
		return http.StatusInternalServerError, fallback
	}
}

// sentence capitalizes the first letter and ends the text with a period.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

// safeNext only allows local absolute paths as post-login targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/upload"
	}
	return next
}
