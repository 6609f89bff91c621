package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"critique-backend/internal/shared/metrics"
	"critique-backend/internal/shared/telemetry"
)

// ImageResolver turns an object key owned by a user into a URL the inference endpoint can fetch.
type ImageResolver interface {
	OwnedURL(ctx context.Context, userID, key string) (string, error)
}

// Service is the analysis gateway: it submits images for critique and reads, lists and deletes records.
type Service struct {
	Repo      Repo
	Inference Inference
	Images    ImageResolver
	Now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, inference Inference, images ImageResolver) *Service {
	return &Service{Repo: repo, Inference: inference, Images: images, Now: time.Now}
}

// Submit sends the image to the inference endpoint and persists the returned critique.
// An inference failure leaves nothing persisted; a persistence failure after a
// successful inference is reported and not compensated.
func (s *Service) Submit(ctx context.Context, userID, imageKey string) (Record, error) {
	imageKey = strings.TrimSpace(imageKey)
	if userID == "" || imageKey == "" {
		return Record{}, fmt.Errorf("%w: imageKey is required", ErrValidation)
	}
	metrics.IncAnalysisSubmitted()

	imageURL, err := s.Images.OwnedURL(ctx, userID, imageKey)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Record{}, fmt.Errorf("resolve image: %w", err)
	}

	start := time.Now()
	resp, err := s.Inference.Analyze(ctx, InferenceRequest{ImageURL: imageURL, UserID: userID})
	metrics.ObserveInferenceDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.inference.failed", map[string]any{
			"user_id":   userID,
			"image_key": imageKey,
			"err":       err,
		})
		return Record{}, err
	}

	id := strings.TrimSpace(resp.AnalysisID)
	if id == "" {
		id = uuid.NewString()
	}
	record := Record{
		ID:        id,
		UserID:    userID,
		ImageKey:  imageKey,
		ImageURL:  imageURL,
		CreatedAt: s.now().UTC(),
		Result:    resp.Result(),
	}
	if err := s.Repo.Upsert(ctx, record); err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.persist.failed", map[string]any{
			"user_id":     userID,
			"analysis_id": id,
			"err":         err,
		})
		return Record{}, fmt.Errorf("save analysis: %w", err)
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"user_id":     userID,
		"analysis_id": id,
	})
	return record, nil
}

// Get returns one of the user's records. Records of other users are reported as not found.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Record, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Record{}, fmt.Errorf("%w: analysis id is required", ErrValidation)
	}
	record, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Record{}, err
	}
	if record.UserID != userID {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// List returns the user's records, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes one of the user's records.
func (s *Service) Delete(ctx context.Context, userID, analysisID string) error {
	if strings.TrimSpace(analysisID) == "" {
		return fmt.Errorf("%w: analysis id is required", ErrValidation)
	}
	if err := s.Repo.Delete(ctx, userID, analysisID); err != nil {
		return err
	}
	metrics.IncAnalysisDeleted()
	telemetry.Info("analysis.deleted", map[string]any{
		"user_id":     userID,
		"analysis_id": analysisID,
	})
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
