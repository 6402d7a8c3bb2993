package service

import (
	"context"
	"errors"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
)

// ErrInvalidInput is returned when text cannot be classified, e.g. it is empty
// after trimming.
var ErrInvalidInput = errors.New("invalid input")

// Preprocessor turns raw text into the feature representation the model was
// trained on
type Preprocessor interface {
	// Normalize fails with ErrInvalidInput for blank text
	Normalize(text string) (entity.FeatureVector, error)
}

// Classifier scores feature vectors
type Classifier interface {
	Classify(ctx context.Context, features entity.FeatureVector) (*entity.Prediction, error)
}

// EstimatorInfo describes one member of the loaded ensemble
type EstimatorInfo struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

// ModelInfo describes the loaded model artifact
type ModelInfo struct {
	Version    string          `json:"version"`
	Source     string          `json:"source"`
	Features   int             `json:"features"`
	NgramRange [2]int          `json:"ngram_range"`
	Estimators []EstimatorInfo `json:"estimators"`
}

// Model is a loaded, immutable text classification model
type Model interface {
	Preprocessor
	Classifier
	Info() ModelInfo
}
