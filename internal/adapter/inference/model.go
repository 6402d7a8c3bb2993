package inference

import (
	"context"
	"fmt"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/service"
)

// Model is a loaded vectorizer plus ensemble. It is never mutated after
// NewModel returns, so one instance serves all requests without locking.
type Model struct {
	version    string
	source     string
	vectorizer *Vectorizer
	ensemble   *softVote
	ngramRange [2]int
}

var _ service.Model = (*Model)(nil)

// NewModel validates the artifact and builds an immutable model from it.
// source is informational, typically the path the artifact was read from.
func NewModel(a *Artifact, source string) (*Model, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	dim := a.Dim()
	vec, err := NewVectorizer(&a.Vectorizer, dim)
	if err != nil {
		return nil, err
	}

	minN, maxN := a.Vectorizer.ngramRange()
	return &Model{
		version:    a.Version,
		source:     source,
		vectorizer: vec,
		ensemble:   newSoftVote(&a.Classifier),
		ngramRange: [2]int{minN, maxN},
	}, nil
}

// Version returns the artifact version
func (m *Model) Version() string {
	return m.version
}

// Normalize delegates to the fitted vectorizer
func (m *Model) Normalize(text string) (entity.FeatureVector, error) {
	return m.vectorizer.Normalize(text)
}

// Classify scores a feature row produced by Normalize
func (m *Model) Classify(ctx context.Context, features entity.FeatureVector) (*entity.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if features.Dim() != m.vectorizer.Dim() {
		return nil, fmt.Errorf("feature vector has dimension %d, model expects %d", features.Dim(), m.vectorizer.Dim())
	}

	probaFake, probaReal := m.ensemble.proba(features)
	prediction, err := entity.NewPrediction(probaFake, probaReal, m.version)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.version, err)
	}
	return prediction, nil
}

// ClassifyText runs the full normalize-then-classify path
func (m *Model) ClassifyText(ctx context.Context, text string) (*entity.Prediction, error) {
	features, err := m.Normalize(text)
	if err != nil {
		return nil, err
	}
	return m.Classify(ctx, features)
}

// Info describes the loaded model
func (m *Model) Info() service.ModelInfo {
	estimators := make([]service.EstimatorInfo, len(m.ensemble.members))
	for i, member := range m.ensemble.members {
		estimators[i] = service.EstimatorInfo{
			Name:   member.name,
			Kind:   member.kind,
			Weight: member.weight,
		}
	}
	return service.ModelInfo{
		Version:    m.version,
		Source:     m.source,
		Features:   m.vectorizer.Dim(),
		NgramRange: m.ngramRange,
		Estimators: estimators,
	}
}
