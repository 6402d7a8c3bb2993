package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/repository"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/service"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/metrics"
)

// Error definitions for classify usecase
var (
	ErrInvalidInput         = service.ErrInvalidInput
	ErrTextTooLong          = errors.New("text exceeds maximum length")
	ErrBatchTooLarge        = errors.New("batch exceeds maximum size")
	ErrCheckNotFound        = errors.New("check not found")
	ErrClassificationFailed = errors.New("classification failed")
)

// Default limits
const (
	DefaultMaxTextBytes = 100_000
	DefaultMaxBatchSize = 32
	DefaultRecentLimit  = 5
)

// Limits bounds the size of accepted requests
type Limits struct {
	MaxTextBytes int
	MaxBatchSize int
}

// ClassifyInput represents the input for classifying one text
type ClassifyInput struct {
	Text string `json:"text"`
}

// ClassifyBatchInput represents the input for classifying several texts
type ClassifyBatchInput struct {
	Texts []string `json:"texts" binding:"required,min=1"`
}

// ClassifyOutput represents the outcome of one classification
type ClassifyOutput struct {
	CheckID       uuid.UUID            `json:"check_id"`
	Label         string               `json:"label"`
	Confidence    float64              `json:"confidence"`
	Probabilities entity.Probabilities `json:"probabilities"`
	ModelVersion  string               `json:"model_version"`
	Cached        bool                 `json:"cached"`
	LatencyMs     int64                `json:"latency_ms"`
}

// ClassifyBatchOutput holds results in input order
type ClassifyBatchOutput struct {
	Results []*ClassifyOutput `json:"results"`
	Count   int               `json:"count"`
}

// CheckOutput represents one entry of the recent checks list
type CheckOutput struct {
	CheckID    uuid.UUID `json:"check_id"`
	Excerpt    string    `json:"excerpt"`
	Text       string    `json:"text"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	CheckedAt  string    `json:"checked_at"`
}

// ClassifyUsecase defines the interface for classification business logic
type ClassifyUsecase interface {
	Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error)
	ClassifyBatch(ctx context.Context, input *ClassifyBatchInput) (*ClassifyBatchOutput, error)
	RecentChecks(ctx context.Context, limit int) ([]*CheckOutput, error)
	GetCheck(ctx context.Context, id uuid.UUID) (*CheckOutput, error)
	ModelInfo(ctx context.Context) service.ModelInfo
}

type classifyUsecase struct {
	model   service.Model
	checks  repository.CheckRepository
	cache   repository.PredictionCache
	metrics *metrics.Metrics
	logger  *zap.Logger
	limits  Limits
}

// NewClassifyUsecase creates a new classify usecase. cache and m may be nil.
func NewClassifyUsecase(
	model service.Model,
	checks repository.CheckRepository,
	cache repository.PredictionCache,
	m *metrics.Metrics,
	logger *zap.Logger,
	limits Limits,
) ClassifyUsecase {
	if limits.MaxTextBytes <= 0 {
		limits.MaxTextBytes = DefaultMaxTextBytes
	}
	if limits.MaxBatchSize <= 0 {
		limits.MaxBatchSize = DefaultMaxBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &classifyUsecase{
		model:   model,
		checks:  checks,
		cache:   cache,
		metrics: m,
		logger:  logger,
		limits:  limits,
	}
}

func (u *classifyUsecase) Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
	if err := u.validate(input.Text); err != nil {
		u.metrics.PredictionFailed("invalid_input")
		return nil, err
	}
	out, check, err := u.classify(ctx, input.Text)
	if err != nil {
		return nil, err
	}
	u.record(ctx, check)
	return out, nil
}

func (u *classifyUsecase) ClassifyBatch(ctx context.Context, input *ClassifyBatchInput) (*ClassifyBatchOutput, error) {
	if len(input.Texts) == 0 {
		return nil, fmt.Errorf("%w: texts is empty", ErrInvalidInput)
	}
	if len(input.Texts) > u.limits.MaxBatchSize {
		return nil, ErrBatchTooLarge
	}
	for i, text := range input.Texts {
		if err := u.validate(text); err != nil {
			u.metrics.PredictionFailed("invalid_input")
			return nil, fmt.Errorf("texts[%d]: %w", i, err)
		}
	}

	results := make([]*ClassifyOutput, len(input.Texts))
	checks := make([]*entity.Check, len(input.Texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range input.Texts {
		g.Go(func() error {
			out, check, err := u.classify(gctx, text)
			if err != nil {
				return err
			}
			results[i] = out
			checks[i] = check
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A failed batch leaves history untouched.
	for _, check := range checks {
		u.record(ctx, check)
	}

	return &ClassifyBatchOutput{Results: results, Count: len(results)}, nil
}

func (u *classifyUsecase) RecentChecks(ctx context.Context, limit int) ([]*CheckOutput, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	checks, err := u.checks.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	outputs := make([]*CheckOutput, len(checks))
	for i, c := range checks {
		outputs[i] = toCheckOutput(c)
	}
	return outputs, nil
}

func (u *classifyUsecase) GetCheck(ctx context.Context, id uuid.UUID) (*CheckOutput, error) {
	check, err := u.checks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, ErrCheckNotFound
	}
	return toCheckOutput(check), nil
}

func (u *classifyUsecase) ModelInfo(_ context.Context) service.ModelInfo {
	return u.model.Info()
}

func (u *classifyUsecase) validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}
	if len(text) > u.limits.MaxTextBytes {
		return ErrTextTooLong
	}
	return nil
}

func (u *classifyUsecase) classify(ctx context.Context, text string) (*ClassifyOutput, *entity.Check, error) {
	start := time.Now()

	prediction, cached, err := u.predict(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	latency := time.Since(start)
	if !cached {
		u.metrics.ObservePrediction(string(prediction.Label), latency)
	}

	check := entity.NewCheck(text, prediction)
	return &ClassifyOutput{
		CheckID:       check.ID,
		Label:         string(prediction.Label),
		Confidence:    prediction.Confidence,
		Probabilities: prediction.Probabilities,
		ModelVersion:  prediction.ModelVersion,
		Cached:        cached,
		LatencyMs:     latency.Milliseconds(),
	}, check, nil
}

func (u *classifyUsecase) record(ctx context.Context, check *entity.Check) {
	if err := u.checks.Add(ctx, check); err != nil {
		u.logger.Warn("Failed to record check", zap.Error(err))
	}
}

// predict consults the cache, then the model. Panics raised while scoring are
// converted to ErrClassificationFailed.
func (u *classifyUsecase) predict(ctx context.Context, text string) (prediction *entity.Prediction, cached bool, err error) {
	version := u.model.Info().Version

	if u.cache != nil {
		hit, cacheErr := u.cache.Get(ctx, version, text)
		switch {
		case cacheErr != nil:
			u.metrics.CacheLookup(metrics.CacheError)
			u.logger.Warn("Prediction cache read failed", zap.Error(cacheErr))
		case hit != nil:
			u.metrics.CacheLookup(metrics.CacheHit)
			return hit, true, nil
		default:
			u.metrics.CacheLookup(metrics.CacheMiss)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			u.metrics.PredictionFailed("panic")
			u.logger.Error("Panic during classification", zap.Any("panic", r), zap.Stack("stack"))
			prediction, cached, err = nil, false, fmt.Errorf("%w: %v", ErrClassificationFailed, r)
		}
	}()

	features, err := u.model.Normalize(text)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			u.metrics.PredictionFailed("invalid_input")
			return nil, false, err
		}
		u.metrics.PredictionFailed("preprocess")
		return nil, false, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	prediction, err = u.model.Classify(ctx, features)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		u.metrics.PredictionFailed("inference")
		u.logger.Error("Classification failed", zap.Error(err))
		return nil, false, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, version, text, prediction); err != nil {
			u.logger.Warn("Prediction cache write failed", zap.Error(err))
		}
	}

	return prediction, false, nil
}

func toCheckOutput(c *entity.Check) *CheckOutput {
	out := &CheckOutput{
		CheckID:   c.ID,
		Excerpt:   c.Excerpt(entity.DefaultExcerptLength),
		Text:      c.Text,
		CheckedAt: c.CheckedAt.Format(time.RFC3339),
	}
	if c.Prediction != nil {
		out.Label = string(c.Prediction.Label)
		out.Confidence = c.Prediction.Confidence
	}
	return out
}
