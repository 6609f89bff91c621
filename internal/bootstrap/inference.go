package bootstrap

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/critique"
	"critique-backend/internal/llm"
	"critique-backend/internal/llm/openai"
	"critique-backend/internal/shared/config"
	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/server/respond"
	"critique-backend/internal/shared/telemetry"
)

// NewLLMClient returns the OpenRouter client, or the placeholder when no key is set.
func NewLLMClient(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
		telemetry.Warn("inference.llm.placeholder", map[string]any{"reason": "OPENROUTER_API_KEY not set"})
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(cfg.OpenRouterAPIKey, cfg.LLMModel, cfg.OpenRouterURL, time.Duration(cfg.LLMTimeout)*time.Second)
}

// BuildInference wires the critique endpoint with its own engine.
func BuildInference(cfg config.Config) (*gin.Engine, error) {
	store, err := NewObjectStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	client, err := NewLLMClient(cfg)
	if err != nil {
		return nil, err
	}
	svc := critique.NewService(critique.NewFetcher(store), client)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	critique.NewHandler(svc).RegisterRoutes(r)
	return r, nil
}
