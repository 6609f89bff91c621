package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"critique-backend/internal/shared/server/middleware"
	"critique-backend/internal/shared/telemetry"
)

// maxInferenceBody bounds how much of a response body is read.
const maxInferenceBody = 1 << 20

// Inference submits an image reference to the inference endpoint.
type Inference interface {
	Analyze(ctx context.Context, req InferenceRequest) (InferenceResponse, error)
}

// HTTPInference posts JSON to an inference endpoint over HTTP.
type HTTPInference struct {
	url        string
	httpClient *http.Client
}

// NewHTTPInference constructs an HTTPInference. A non-positive timeout means 120 seconds.
func NewHTTPInference(url string, timeout time.Duration) (*HTTPInference, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("INFERENCE_URL is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPInference{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Analyze posts the request and decodes the flat response. Non-2xx answers become *InferenceError.
// The caller's request id travels in X-Request-Id.
func (c *HTTPInference) Analyze(ctx context.Context, in InferenceRequest) (InferenceResponse, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return InferenceResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return InferenceResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := telemetry.RequestID(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return InferenceResponse{}, fmt.Errorf("inference request timeout: %w", err)
		}
		return InferenceResponse{}, fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInferenceBody))
	if err != nil {
		return InferenceResponse{}, fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return InferenceResponse{}, &InferenceError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	var parsed InferenceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return InferenceResponse{}, fmt.Errorf("inference response parse: %w", err)
	}
	if parsed.Status == "error" {
		return InferenceResponse{}, &InferenceError{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	return parsed, nil
}

// errorMessage pulls a readable message out of an error body such as
// {"error": "..."} or {"status": "error", "message": "..."}.
func errorMessage(body []byte) string {
	var parsed struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch v := parsed.Error.(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
