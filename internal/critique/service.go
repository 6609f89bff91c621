package critique

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"critique-backend/internal/analyses"
	"critique-backend/internal/llm"
	"critique-backend/internal/shared/telemetry"
)

const (
	temperature = 0.7
	maxTokens   = 800
)

// InputError is a problem with the submitted image. It maps to 400.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Service turns an image reference into a structured critique.
type Service struct {
	Images ImageSource
	LLM    llm.Client
	NewID  func() string
}

func NewService(images ImageSource, client llm.Client) *Service {
	return &Service{Images: images, LLM: client, NewID: uuid.NewString}
}

// Analyze downloads the image, measures it, asks the model for a critique and
// returns the flat response body. Nothing is persisted here.
func (s *Service) Analyze(ctx context.Context, imageURL, userID string) (analyses.InferenceResponse, error) {
	start := time.Now()
	data, err := s.Images.Fetch(ctx, imageURL)
	if err != nil {
		return analyses.InferenceResponse{}, &InputError{Message: "Download failed: " + err.Error()}
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return analyses.InferenceResponse{}, &InputError{Message: "Image processing failed: " + err.Error()}
	}

	detected := DetectTraits(Measure(img))
	score := Score(detected)
	palette := Palette(img, PaletteSize)

	reply, err := s.LLM.Complete(ctx, llm.CompletionInput{
		Messages: []llm.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: BuildPrompt(detected, palette, score)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return analyses.InferenceResponse{}, err
	}
	sections := ParseSections(reply)

	id := s.NewID()
	telemetry.Info("critique.completed", map[string]any{
		"analysis_id": id,
		"user_id":     userID,
		"format":      format,
		"ui_score":    score,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return analyses.InferenceResponse{
		Status:        "success",
		AnalysisID:    id,
		Elements:      detected,
		UIScore:       &score,
		ColorPalette:  palette,
		OverallRating: sections.OverallRating,
		ColorCritique: sections.ColorCritique,
		OtherFeedback: sections.OtherFeedback,
	}, nil
}
