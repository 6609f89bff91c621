package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/auth"
	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/shared/telemetry"
)

// SessionCookie carries the session token for browser page routes.
const SessionCookie = "critique_session"

const (
	userIDKey    = respond.KeyUserID
	userEmailKey = "userEmail"
	userNameKey  = "userName"
	claimsKey    = "sessionClaims"
)

// RevocationChecker reports whether a session id has been signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth requires a valid, unrevoked session token from the Authorization header
// or the session cookie.
func Auth(revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if !authenticate(c, revocations) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		c.Next()
	}
}

// RequirePage is Auth for HTML routes: unauthenticated visitors are redirected to loginPath.
func RequirePage(revocations RevocationChecker, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, revocations) {
			target := loginPath
			if c.Request.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			}
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth populates identity when a valid session is present and never rejects.
func OptionalAuth(revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, revocations)
		c.Next()
	}
}

func authenticate(c *gin.Context, revocations RevocationChecker) bool {
	token, ok := tokenFromRequest(c)
	if !ok {
		return false
	}

	claims, err := auth.VerifyJWT(token)
	if err != nil {
		return false
	}

	if revocations != nil && claims.ID != "" {
		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			telemetry.Error("auth.revocation_check_failed", map[string]any{
				"request_id": RequestIDFromContext(c),
				"user_id":    claims.Sub,
				"err":        err,
			})
			return false
		}
		if revoked {
			return false
		}
	}

	c.Set(userIDKey, claims.Sub)
	if claims.Email != "" {
		c.Set(userEmailKey, claims.Email)
	}
	if claims.Name != "" {
		c.Set(userNameKey, claims.Name)
	}
	c.Set(claimsKey, claims)
	return true
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		return token, token != ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(c *gin.Context) (auth.Claims, bool) {
	if c == nil {
		return auth.Claims{}, false
	}
	val, _ := c.Get(claimsKey)
	claims, ok := val.(auth.Claims)
	return claims, ok
}
