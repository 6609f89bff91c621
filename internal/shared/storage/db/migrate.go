package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"critique-backend/internal/shared/telemetry"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// goose keeps its file system, dialect and logger in package globals.
var gooseMu sync.Mutex

// RunMigrations applies every pending migration. A nil database is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	return withGoose(func() error {
		return goose.UpContext(ctx, database, migrationsDir)
	})
}

// RollbackLast reverts the most recent migration.
func RollbackLast(ctx context.Context, database *sql.DB) error {
	return withGoose(func() error {
		return goose.DownContext(ctx, database, migrationsDir)
	})
}

// Version reports the schema version recorded by goose.
func Version(ctx context.Context, database *sql.DB) (int64, error) {
	var version int64
	err := withGoose(func() error {
		v, err := goose.GetDBVersionContext(ctx, database)
		version = v
		return err
	})
	return version, err
}

func withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return fn()
}

// gooseLogger sends goose output through the JSON logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

func (gooseLogger) Fatalf(format string, v ...any) {
	telemetry.Error("db.migrate.fatal", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
	os.Exit(1)
}
