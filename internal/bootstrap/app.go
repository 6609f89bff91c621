package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/analyses"
	"critique-backend/internal/handoff"
	"critique-backend/internal/history"
	"critique-backend/internal/identity"
	"critique-backend/internal/profiles"
	"critique-backend/internal/report"
	"critique-backend/internal/services/health"
	"critique-backend/internal/shared/config"
	"critique-backend/internal/shared/server"
	"critique-backend/internal/shared/storage/db"
	"critique-backend/internal/shared/storage/object"
	localstore "critique-backend/internal/shared/storage/object/local"
	s3store "critique-backend/internal/shared/storage/object/s3"
	"critique-backend/internal/shared/telemetry"
	"critique-backend/internal/uploads"
	"critique-backend/internal/web"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.ObjectStore
	Identity *identity.Service
	Profiles *profiles.Service
	Uploads  *uploads.Service
	Analyses *analyses.Service
	Handoff  *handoff.Store
	Google   *identity.GoogleService
	Web      *web.Handler
}

// Build connects storage, wires services and mounts every route.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		telemetry.Warn("bootstrap.db.fallback", map[string]any{"err": err})
		_ = sqlDB.Close()
		sqlDB = nil
	}
	if sqlDB != nil {
		if version, err := db.Version(ctx, sqlDB); err == nil {
			telemetry.Info("bootstrap.db.schema", map[string]any{"version": version})
		}
	}

	store, err := NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, Store: store}
	if err := buildServices(app); err != nil {
		return nil, err
	}
	if err := buildRouter(app); err != nil {
		return nil, err
	}
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	if isDevLike(cfg.Env) {
		opts.ConnectAttempts = 1
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.fallback", map[string]any{"err": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// NewObjectStore returns the configured object store. Local objects are
// addressed through the API's /files route.
func NewObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var (
		identityRepo identity.Repo
		revocations  identity.Revocations
		profileRepo  profiles.Repo
		analysisRepo analyses.Repo
	)
	if app.DB != nil {
		identityRepo = &identity.PGRepo{DB: app.DB}
		revocations = &identity.PGRevocations{DB: app.DB}
		profileRepo = &profiles.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		identityRepo = identity.NewMemoryRepo()
		revocations = identity.NewMemoryRevocations()
		profileRepo = profiles.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	inference, err := analyses.NewHTTPInference(app.Config.InferenceURL, time.Duration(app.Config.InferenceTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("inference client: %w", err)
	}

	app.Profiles = profiles.NewService(profileRepo)
	app.Identity = identity.NewService(identityRepo, revocations, app.Profiles)
	app.Uploads = uploads.NewService(app.Store)
	app.Analyses = analyses.NewService(analysisRepo, inference, app.Uploads)
	app.Handoff = handoff.NewFilesystemStore(app.Config.SessionDir, []byte(app.Config.SessionKey))
	app.Google = identity.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Identity,
	)
	return nil
}

func buildRouter(app *App) error {
	renderer, err := history.NewRenderer()
	if err != nil {
		return fmt.Errorf("history templates: %w", err)
	}
	app.Web, err = web.NewHandler(web.Deps{
		Identity:      app.Identity,
		Profiles:      app.Profiles,
		Uploads:       app.Uploads,
		Analyses:      app.Analyses,
		Handoff:       app.Handoff,
		History:       renderer,
		PageSize:      app.Config.HistoryPageSize,
		GoogleEnabled: app.Google.Configured(),
	})
	if err != nil {
		return fmt.Errorf("page templates: %w", err)
	}

	healthSvc := health.NewService(nil)
	if app.DB != nil {
		healthSvc = health.NewService(app.DB)
	}
	deps := server.RouterDeps{
		Config:      app.Config,
		Revocations: app.Identity.Revocations,
		Health:      healthSvc,
		Identity:    identity.NewHandler(app.Identity),
		Google:      app.Google,
		Profiles:    profiles.NewHandler(app.Profiles),
		Uploads:     uploads.NewHandler(app.Uploads),
		Analyses:    analyses.NewHandler(app.Analyses),
		History:     history.NewHandler(app.Analyses, app.Config.HistoryPageSize),
		Reports:     report.NewHandler(app.Analyses),
		Web:         app.Web,
	}
	if local, ok := app.Store.(*localstore.Store); ok {
		deps.FilesDir = local.Dir()
	}
	app.Router = server.NewRouter(deps)
	return nil
}
