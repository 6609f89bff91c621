package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("OBJECT_STORE", "")
	t.Setenv("HISTORY_PAGE_SIZE", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.HistoryPageSize != 5 {
		t.Fatalf("expected page size 5, got %d", cfg.HistoryPageSize)
	}
	if cfg.S3Bucket != "images" {
		t.Fatalf("expected bucket images, got %q", cfg.S3Bucket)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("HISTORY_PAGE_SIZE", "10")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("PUBLIC_BASE_URL", "https://critique.test/")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3, got %q", cfg.ObjectStoreType)
	}
	if cfg.HistoryPageSize != 10 {
		t.Fatalf("expected page size 10, got %d", cfg.HistoryPageSize)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.PublicBaseURL != "https://critique.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
}

func TestGetEnvIntRejectsInvalid(t *testing.T) {
	t.Setenv("HISTORY_PAGE_SIZE", "abc")
	if got := getEnvInt("HISTORY_PAGE_SIZE", 5); got != 5 {
		t.Fatalf("expected default 5, got %d", got)
	}
	t.Setenv("HISTORY_PAGE_SIZE", "-3")
	if got := getEnvInt("HISTORY_PAGE_SIZE", 5); got != 5 {
		t.Fatalf("expected default 5 for negative, got %d", got)
	}
}
