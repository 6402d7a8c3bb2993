package entity

import (
	"errors"
	"math"
)

// Label is the verdict assigned to a piece of news text
type Label string

const (
	LabelFake Label = "FAKE"
	LabelReal Label = "REAL"
)

// Class indices used by the trained model
const (
	ClassFake = 0
	ClassReal = 1
)

// ErrInvalidProbabilities is returned when a model emits probabilities that are
// not finite or fall outside [0, 1].
var ErrInvalidProbabilities = errors.New("invalid class probabilities")

// Probabilities holds the per-class probabilities reported by the model
type Probabilities struct {
	Fake float64 `json:"fake"`
	Real float64 `json:"real"`
}

// Prediction is the typed outcome of a single classification
type Prediction struct {
	Label         Label         `json:"label"`
	Confidence    float64       `json:"confidence"`
	Probabilities Probabilities `json:"probabilities"`
	ModelVersion  string        `json:"model_version"`
}

// NewPrediction wraps a raw [fake, real] probability pair. The arg-max class
// wins and a tie resolves to FAKE.
func NewPrediction(probaFake, probaReal float64, modelVersion string) (*Prediction, error) {
	if !validProbability(probaFake) || !validProbability(probaReal) {
		return nil, ErrInvalidProbabilities
	}

	p := &Prediction{
		Label:         LabelFake,
		Confidence:    probaFake,
		Probabilities: Probabilities{Fake: probaFake, Real: probaReal},
		ModelVersion:  modelVersion,
	}
	if probaReal > probaFake {
		p.Label = LabelReal
		p.Confidence = probaReal
	}
	return p, nil
}

// IsReal returns true if the text was judged authentic
func (p *Prediction) IsReal() bool {
	return p.Label == LabelReal
}

// ConfidencePercent returns the confidence scaled to a percentage
func (p *Prediction) ConfidencePercent() float64 {
	return p.Confidence * 100
}

// IsValid reports whether the label is known and confidence lies in [0, 1]
func (p *Prediction) IsValid() bool {
	if p.Label != LabelFake && p.Label != LabelReal {
		return false
	}
	return validProbability(p.Confidence)
}

func validProbability(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 1
}
