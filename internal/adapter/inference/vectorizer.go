package inference

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/service"
)

// Vectorizer is a fitted TF-IDF transform. It is safe for concurrent use.
type Vectorizer struct {
	analyzer    *analyzer
	vocabulary  map[string]int
	idf         []float64
	useIDF      bool
	sublinearTF bool
	norm        string
	dim         int
}

// NewVectorizer builds a vectorizer from the frozen training state
func NewVectorizer(spec *VectorizerSpec, dim int) (*Vectorizer, error) {
	a, err := newAnalyzer(spec)
	if err != nil {
		return nil, err
	}

	vocab := make(map[string]int, len(spec.Vocabulary))
	for term, idx := range spec.Vocabulary {
		vocab[term] = idx
	}
	idf := make([]float64, len(spec.IDF))
	copy(idf, spec.IDF)

	return &Vectorizer{
		analyzer:    a,
		vocabulary:  vocab,
		idf:         idf,
		useIDF:      spec.useIDF(),
		sublinearTF: spec.SublinearTF,
		norm:        spec.norm(),
		dim:         dim,
	}, nil
}

// Dim returns the width of produced vectors
func (v *Vectorizer) Dim() int {
	return v.dim
}

// Normalize turns text into a TF-IDF row. Blank text is rejected with
// service.ErrInvalidInput.
func (v *Vectorizer) Normalize(text string) (entity.FeatureVector, error) {
	if strings.TrimSpace(text) == "" {
		return entity.FeatureVector{}, fmt.Errorf("%w: text is empty", service.ErrInvalidInput)
	}

	counts := make(map[int]int)
	for _, term := range v.analyzer.terms(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		tf := float64(counts[idx])
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[idx]
		}
		values[i] = tf
	}

	normalizeRow(values, v.norm)
	return entity.NewFeatureVector(v.dim, indices, values), nil
}

func normalizeRow(values []float64, norm string) {
	var total float64
	switch norm {
	case NormL2:
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
