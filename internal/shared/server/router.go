package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/analyses"
	"critique-backend/internal/history"
	"critique-backend/internal/identity"
	"critique-backend/internal/profiles"
	"critique-backend/internal/report"
	"critique-backend/internal/services/health"
	"critique-backend/internal/shared/config"
	"critique-backend/internal/shared/metrics"
	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
	localstore "critique-backend/internal/shared/storage/object/local"
	"critique-backend/internal/uploads"
	"critique-backend/internal/web"
)

const (
	rateGroupSubmit  = "SUBMIT"
	rateGroupDefault = "DEFAULT"
	loginPath        = "/login"
)

// RouterDeps are the handlers mounted on the engine. Nil handlers are skipped.
type RouterDeps struct {
	Config      config.Config
	Revocations middleware.RevocationChecker
	Health      *health.Service
	Identity    *identity.Handler
	Google      *identity.GoogleService
	Profiles    *profiles.Handler
	Uploads     *uploads.Handler
	Analyses    *analyses.Handler
	History     *history.Handler
	Reports     *report.Handler
	Web         *web.Handler
	// FilesDir is served under /files when objects live on local disk.
	FilesDir   string
	RateLimits map[string]middleware.RateLimitRule
	Limiter    *middleware.RateLimiter
}

// DefaultRateLimits keeps critique submissions well below page browsing.
func DefaultRateLimits() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		rateGroupSubmit:  {Rate: 0.2, Burst: 5},
		rateGroupDefault: {Rate: 5, Burst: 30},
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	rules := deps.RateLimits
	if rules == nil {
		rules = DefaultRateLimits()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	limitCfg := middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      limiter,
	}
	limit := middleware.RateLimit(limitCfg)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.JSON(c, http.StatusOK, status)
	})
	api.GET("/metrics", metrics.Handler())

	protected := api.Group("", middleware.Auth(deps.Revocations), limit)
	if deps.Identity != nil {
		deps.Identity.RegisterRoutes(api, protected)
	}
	if deps.Google != nil {
		deps.Google.RegisterRoutes(api)
	}
	if deps.Profiles != nil {
		deps.Profiles.RegisterRoutes(protected)
	}
	if deps.Uploads != nil {
		deps.Uploads.RegisterRoutes(protected)
	}
	if deps.Analyses != nil {
		deps.Analyses.RegisterRoutes(protected)
	}
	if deps.History != nil {
		deps.History.RegisterRoutes(protected)
	}
	if deps.Reports != nil {
		deps.Reports.RegisterRoutes(protected)
	}

	if deps.FilesDir != "" {
		r.Static(localstore.FilesRoute, deps.FilesDir)
	}

	if deps.Web != nil {
		public := r.Group("", middleware.OptionalAuth(deps.Revocations))
		pageLimitCfg := limitCfg
		pageLimitCfg.OnLimited = deps.Web.RateLimited
		pages := r.Group("", middleware.RequirePage(deps.Revocations, loginPath), middleware.RateLimit(pageLimitCfg))
		deps.Web.RegisterRoutes(public, pages)
	}

	return r
}

// rateGroupFor puts every path that triggers a critique into the submit group.
func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	switch c.FullPath() {
	case "/api/v1/analyses", "/upload":
		return rateGroupSubmit
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
