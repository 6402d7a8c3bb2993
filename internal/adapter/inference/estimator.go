package inference

import (
	"math"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
)

// estimator returns the probability of the REAL class for a feature row
type estimator interface {
	probaReal(x entity.FeatureVector) float64
}

type logistic struct {
	coef      []float64
	intercept float64
}

func (l *logistic) probaReal(x entity.FeatureVector) float64 {
	return sigmoid(l.intercept + x.Dot(l.coef))
}

// naiveBayes covers both multinomial and complement variants. The complement
// variant ignores the class prior when there are two classes.
type naiveBayes struct {
	classLogPrior  [2]float64
	featureLogProb [2][]float64
}

func (nb *naiveBayes) probaReal(x entity.FeatureVector) float64 {
	jllFake := nb.classLogPrior[entity.ClassFake] + x.Dot(nb.featureLogProb[entity.ClassFake])
	jllReal := nb.classLogPrior[entity.ClassReal] + x.Dot(nb.featureLogProb[entity.ClassReal])
	// softmax over two classes reduces to a sigmoid of the difference
	return sigmoid(jllReal - jllFake)
}

func newEstimator(spec *EstimatorSpec) estimator {
	switch spec.Kind {
	case KindLogistic:
		coef := make([]float64, len(spec.Coef))
		copy(coef, spec.Coef)
		return &logistic{coef: coef, intercept: spec.Intercept}
	case KindMultinomialNB, KindComplementNB:
		nb := &naiveBayes{}
		if spec.Kind == KindMultinomialNB {
			nb.classLogPrior = [2]float64{spec.ClassLogPrior[0], spec.ClassLogPrior[1]}
		}
		for c := 0; c < 2; c++ {
			row := make([]float64, len(spec.FeatureLogProb[c]))
			copy(row, spec.FeatureLogProb[c])
			nb.featureLogProb[c] = row
		}
		return nb
	}
	return nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

type weighted struct {
	name   string
	kind   string
	weight float64
	est    estimator
}

// softVote averages member probabilities by weight
type softVote struct {
	members []weighted
	total   float64
}

func newSoftVote(spec *ClassifierSpec) *softVote {
	sv := &softVote{members: make([]weighted, 0, len(spec.Estimators))}
	for i := range spec.Estimators {
		e := &spec.Estimators[i]
		w := e.weight()
		sv.members = append(sv.members, weighted{name: e.Name, kind: e.Kind, weight: w, est: newEstimator(e)})
		sv.total += w
	}
	return sv
}

// proba returns [P(FAKE), P(REAL)]
func (sv *softVote) proba(x entity.FeatureVector) (float64, float64) {
	var pReal float64
	for _, m := range sv.members {
		if m.weight == 0 {
			continue
		}
		pReal += m.weight * m.est.probaReal(x)
	}
	pReal = clamp01(pReal / sv.total)
	return 1 - pReal, pReal
}

// clamp01 absorbs rounding drift; NaN passes through for the caller to reject.
func clamp01(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
