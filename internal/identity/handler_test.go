package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService()
	r := gin.New()
	api := r.Group("/api/v1")
	protected := api.Group("", middleware.Auth(svc.Revocations))
	NewHandler(svc).RegisterRoutes(api, protected)
	return r, svc
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAuthFlowSignUpSessionSignOut(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doJSON(r, http.MethodPost, "/api/v1/auth/signup",
		`{"email":"ada@example.com","password":"secret1","confirmPassword":"secret1","fullName":"Ada","dateOfBirth":"1990-05-01"}`, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var session Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	resp = doJSON(r, http.MethodGet, "/api/v1/auth/session", "", session.Token)
	if resp.Code != http.StatusOK {
		t.Fatalf("session expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"fullName":"Ada"`) {
		t.Fatalf("expected profile in session body, got %s", resp.Body.String())
	}

	resp = doJSON(r, http.MethodPost, "/api/v1/auth/signout", "", session.Token)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("signout expected 204, got %d", resp.Code)
	}

	resp = doJSON(r, http.MethodGet, "/api/v1/auth/session", "", session.Token)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", resp.Code)
	}
}

func TestSignUpMismatchIs400(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := doJSON(r, http.MethodPost, "/api/v1/auth/signup",
		`{"email":"ada@example.com","password":"secret1","confirmPassword":"secret2","fullName":"Ada","dateOfBirth":"1990-05-01"}`, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "passwords do not match") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestSignInWrongPasswordIs401(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/v1/auth/signup",
		`{"email":"ada@example.com","password":"secret1","confirmPassword":"secret1","fullName":"Ada","dateOfBirth":"1990-05-01"}`, "")

	resp := doJSON(r, http.MethodPost, "/api/v1/auth/signin", `{"email":"ada@example.com","password":"nope123"}`, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestGoogleStartWithoutConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService()
	r := gin.New()
	NewGoogleService("", "", "", "", svc).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("https://app.example.com/done?x=1", "tok")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	if got != "https://app.example.com/done?token=tok&x=1" {
		t.Fatalf("unexpected url %q", got)
	}
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
