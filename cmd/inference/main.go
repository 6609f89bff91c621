package main

// Run the critique endpoint the API posts screenshots to:
//   go run ./cmd/inference

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/bootstrap"
	"critique-backend/internal/shared/config"
	"critique-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := bootstrap.BuildInference(cfg)
	if err != nil {
		log.Fatalf("inference build: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := server.Addr(cfg.InferencePort)
	log.Printf("Starting inference server on %s", addr)
	if err := server.Serve(ctx, addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
