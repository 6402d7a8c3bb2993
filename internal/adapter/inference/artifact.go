package inference

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/entity"
)

// ErrInvalidArtifact is returned when a model artifact cannot be decoded or
// fails validation
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Estimator kinds understood by the loader
const (
	KindLogistic      = "logistic"
	KindMultinomialNB = "multinomial_nb"
	KindComplementNB  = "complement_nb"
)

// Row normalizations
const (
	NormL2   = "l2"
	NormL1   = "l1"
	NormNone = "none"
)

// Accent stripping modes
const (
	AccentsUnicode = "unicode"
	AccentsASCII   = "ascii"
)

// DefaultTokenPattern keeps runs of two or more word characters
const DefaultTokenPattern = `[\p{L}\p{N}_]{2,}`

// Artifact is the serialized form of a fitted vectorizer plus classifier
type Artifact struct {
	Version    string         `json:"version" yaml:"version"`
	Vectorizer VectorizerSpec `json:"vectorizer" yaml:"vectorizer"`
	Classifier ClassifierSpec `json:"classifier" yaml:"classifier"`
}

// VectorizerSpec is the frozen TF-IDF state captured at training time
type VectorizerSpec struct {
	Lowercase    *bool          `json:"lowercase,omitempty" yaml:"lowercase,omitempty"`
	StripAccents string         `json:"strip_accents,omitempty" yaml:"strip_accents,omitempty"`
	TokenPattern string         `json:"token_pattern,omitempty" yaml:"token_pattern,omitempty"`
	StopWords    []string       `json:"stop_words,omitempty" yaml:"stop_words,omitempty"`
	NgramRange   []int          `json:"ngram_range,omitempty" yaml:"ngram_range,omitempty"`
	Vocabulary   map[string]int `json:"vocabulary" yaml:"vocabulary"`
	IDF          []float64      `json:"idf,omitempty" yaml:"idf,omitempty"`
	UseIDF       *bool          `json:"use_idf,omitempty" yaml:"use_idf,omitempty"`
	SublinearTF  bool           `json:"sublinear_tf,omitempty" yaml:"sublinear_tf,omitempty"`
	Norm         string         `json:"norm,omitempty" yaml:"norm,omitempty"`
}

// ClassifierSpec describes a soft-voting ensemble over [FAKE, REAL]
type ClassifierSpec struct {
	Voting     string          `json:"voting,omitempty" yaml:"voting,omitempty"`
	Classes    []int           `json:"classes,omitempty" yaml:"classes,omitempty"`
	Estimators []EstimatorSpec `json:"estimators" yaml:"estimators"`
}

// EstimatorSpec holds the fitted parameters of one ensemble member
type EstimatorSpec struct {
	Name           string      `json:"name" yaml:"name"`
	Kind           string      `json:"kind" yaml:"kind"`
	Weight         *float64    `json:"weight,omitempty" yaml:"weight,omitempty"`
	Coef           []float64   `json:"coef,omitempty" yaml:"coef,omitempty"`
	Intercept      float64     `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty" yaml:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty" yaml:"feature_log_prob,omitempty"`
}

// DecodeArtifact reads an artifact document. The format is picked from the
// name: .json, .yaml or .yml, each optionally followed by .gz.
func DecodeArtifact(name string, r io.Reader) (*Artifact, error) {
	base := strings.ToLower(path.Base(name))
	if strings.HasSuffix(base, ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
		}
		defer zr.Close()
		r = zr
		base = strings.TrimSuffix(base, ".gz")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var a Artifact
	switch path.Ext(base) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&a)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&a)
	default:
		return nil, fmt.Errorf("%w: unsupported artifact format %q", ErrInvalidArtifact, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Dim returns the width of the feature space
func (a *Artifact) Dim() int {
	if a.Vectorizer.useIDF() {
		return len(a.Vectorizer.IDF)
	}
	maxIndex := -1
	for _, idx := range a.Vectorizer.Vocabulary {
		if idx > maxIndex {
			maxIndex = idx
		}
	}
	return maxIndex + 1
}

// Validate checks that the vectorizer and every estimator agree on shape
func (a *Artifact) Validate() error {
	if strings.TrimSpace(a.Version) == "" {
		return invalid("version is required")
	}
	if err := a.Vectorizer.validate(); err != nil {
		return err
	}

	dim := a.Dim()
	if dim == 0 {
		return invalid("feature space is empty")
	}
	return a.Classifier.validate(dim)
}

func (v *VectorizerSpec) lowercase() bool {
	return v.Lowercase == nil || *v.Lowercase
}

func (v *VectorizerSpec) useIDF() bool {
	return v.UseIDF == nil || *v.UseIDF
}

func (v *VectorizerSpec) norm() string {
	if v.Norm == "" {
		return NormL2
	}
	return v.Norm
}

func (v *VectorizerSpec) tokenPattern() string {
	if v.TokenPattern == "" {
		return DefaultTokenPattern
	}
	return v.TokenPattern
}

func (v *VectorizerSpec) ngramRange() (int, int) {
	if len(v.NgramRange) == 0 {
		return 1, 1
	}
	return v.NgramRange[0], v.NgramRange[1]
}

func (v *VectorizerSpec) validate() error {
	if len(v.Vocabulary) == 0 {
		return invalid("vectorizer vocabulary is empty")
	}
	if len(v.NgramRange) != 0 {
		if len(v.NgramRange) != 2 {
			return invalid("ngram_range must have two elements")
		}
		if v.NgramRange[0] < 1 || v.NgramRange[0] > v.NgramRange[1] {
			return invalid("ngram_range %v is not a valid range", v.NgramRange)
		}
	}

	switch v.norm() {
	case NormL1, NormL2, NormNone:
	default:
		return invalid("unknown norm %q", v.Norm)
	}

	switch v.StripAccents {
	case "", AccentsUnicode, AccentsASCII:
	default:
		return invalid("unknown strip_accents %q", v.StripAccents)
	}

	re, err := regexp.Compile(v.tokenPattern())
	if err != nil {
		return invalid("token_pattern: %v", err)
	}
	if re.NumSubexp() > 1 {
		return invalid("token_pattern may contain at most one capture group")
	}

	if i, ok := firstNonFinite(v.IDF); ok {
		return invalid("idf[%d] is not finite", i)
	}

	seen := make(map[int]string, len(v.Vocabulary))
	for term, idx := range v.Vocabulary {
		if idx < 0 {
			return invalid("vocabulary term %q has negative column", term)
		}
		if v.useIDF() && idx >= len(v.IDF) {
			return invalid("vocabulary term %q column %d outside idf of length %d", term, idx, len(v.IDF))
		}
		if other, ok := seen[idx]; ok {
			return invalid("vocabulary terms %q and %q share column %d", other, term, idx)
		}
		seen[idx] = term
	}
	return nil
}

func (c *ClassifierSpec) validate(dim int) error {
	if c.Voting != "" && c.Voting != "soft" {
		return invalid("unsupported voting %q", c.Voting)
	}
	if len(c.Classes) != 0 && (len(c.Classes) != 2 || c.Classes[0] != entity.ClassFake || c.Classes[1] != entity.ClassReal) {
		return invalid("classes must be [0, 1], got %v", c.Classes)
	}
	if len(c.Estimators) == 0 {
		return invalid("classifier has no estimators")
	}

	var total float64
	for i := range c.Estimators {
		e := &c.Estimators[i]
		if err := e.validate(dim); err != nil {
			return err
		}
		total += e.weight()
	}
	if total <= 0 {
		return invalid("estimator weights must sum to a positive value")
	}
	return nil
}

func (e *EstimatorSpec) weight() float64 {
	if e.Weight == nil {
		return 1
	}
	return *e.Weight
}

func (e *EstimatorSpec) validate(dim int) error {
	if !isFinite(e.weight()) {
		return invalid("estimator %q weight is not finite", e.Name)
	}
	if e.weight() < 0 {
		return invalid("estimator %q has negative weight", e.Name)
	}

	switch e.Kind {
	case KindLogistic:
		if len(e.Coef) != dim {
			return invalid("estimator %q coef has %d entries, want %d", e.Name, len(e.Coef), dim)
		}
		if i, ok := firstNonFinite(e.Coef); ok {
			return invalid("estimator %q coef[%d] is not finite", e.Name, i)
		}
		if !isFinite(e.Intercept) {
			return invalid("estimator %q intercept is not finite", e.Name)
		}
	case KindMultinomialNB, KindComplementNB:
		if len(e.FeatureLogProb) != 2 {
			return invalid("estimator %q feature_log_prob must have 2 rows", e.Name)
		}
		for r, row := range e.FeatureLogProb {
			if len(row) != dim {
				return invalid("estimator %q feature_log_prob row has %d entries, want %d", e.Name, len(row), dim)
			}
			if i, ok := firstNonFinite(row); ok {
				return invalid("estimator %q feature_log_prob[%d][%d] is not finite", e.Name, r, i)
			}
		}
		if e.Kind == KindMultinomialNB && len(e.ClassLogPrior) != 2 {
			return invalid("estimator %q class_log_prior must have 2 entries", e.Name)
		}
		if i, ok := firstNonFinite(e.ClassLogPrior); ok {
			return invalid("estimator %q class_log_prior[%d] is not finite", e.Name, i)
		}
	default:
		return invalid("estimator %q has unknown kind %q", e.Name, e.Kind)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// firstNonFinite reports the index of the first NaN or infinite value
func firstNonFinite(values []float64) (int, bool) {
	for i, f := range values {
		if !isFinite(f) {
			return i, true
		}
	}
	return -1, false
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArtifact, fmt.Sprintf(format, args...))
}
