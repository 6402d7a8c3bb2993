package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
)

// CheckRepository keeps the most recent checks in memory. Nothing is written
// to durable storage.
type CheckRepository interface {
	// Add records a check, evicting the oldest one when full
	Add(ctx context.Context, check *entity.Check) error

	// Recent returns up to limit checks, newest first
	Recent(ctx context.Context, limit int) ([]*entity.Check, error)

	// GetByID retrieves a check still held in memory
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Check, error)
}

// PredictionCache memoizes predictions by model version and text
type PredictionCache interface {
	// Get returns nil without error on a miss
	Get(ctx context.Context, modelVersion, text string) (*entity.Prediction, error)

	// Set stores a prediction
	Set(ctx context.Context, modelVersion, text string, prediction *entity.Prediction) error
}
