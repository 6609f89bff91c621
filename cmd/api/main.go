package main

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

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)
	if err := server.Serve(ctx, addr, app.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
