package main

// Apply, inspect or roll back database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -version
//   go run ./cmd/migrate -down

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"critique-backend/internal/shared/config"
	"critique-backend/internal/shared/storage/db"
	"critique-backend/internal/shared/telemetry"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	versionOnly := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		fail("migrate.connect", err)
	}
	defer sqlDB.Close()

	switch {
	case *versionOnly:
	case *down:
		if err := db.RollbackLast(ctx, sqlDB); err != nil {
			fail("migrate.down", err, sqlDB)
		}
	default:
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			fail("migrate.up", err, sqlDB)
		}
	}

	version, err := db.Version(ctx, sqlDB)
	if err != nil {
		fail("migrate.version", err, sqlDB)
	}
	telemetry.Info("migrate.done", map[string]any{"version": version})
}

func fail(msg string, err error, open ...*sql.DB) {
	telemetry.Error(msg, map[string]any{"err": err})
	for _, d := range open {
		_ = d.Close()
	}
	os.Exit(1)
}
