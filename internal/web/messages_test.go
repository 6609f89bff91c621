package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"critique-backend/internal/analyses"
	"critique-backend/internal/uploads"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", fmt.Errorf("%w: file is larger than 5 MB", uploads.ErrValidation), http.StatusBadRequest, "File is larger than 5 MB."},
		{"wrapped not found", fmt.Errorf("load: %w", analyses.ErrNotFound), http.StatusNotFound, "Analysis not found."},
		{"conflict", fmt.Errorf("save analysis: %w", analyses.ErrConflict), http.StatusConflict, "This analysis could not be saved. Please try again."},
		{"forbidden", fmt.Errorf("resolve image: %w", uploads.ErrForbidden), http.StatusForbidden, "You do not have access to this image."},
		{"inference", &analyses.InferenceError{Status: 500, Message: "boom"}, http.StatusBadGateway, "Analysis failed: Boom."},
		{"inference no body", &analyses.InferenceError{Status: 500}, http.StatusBadGateway, "Analysis failed. Please try again."},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Something failed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := userMessage(tt.err, "Something failed.")
			if status != tt.status || msg != tt.msg {
				t.Fatalf("got %d %q, want %d %q", status, msg, tt.status, tt.msg)
			}
		})
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                    "/upload",
		"/history?page=2":     "/history?page=2",
		"https://evil.test/":  "/upload",
		"//evil.test":         "/upload",
		"/\\evil.test":        "/upload",
		"results?id=1":        "/upload",
	}
	for in, want := range tests {
		if got := safeNext(in); got != want {
			t.Fatalf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}
