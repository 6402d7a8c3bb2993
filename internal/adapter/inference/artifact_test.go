package inference

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonArtifact = `{
  "version": "2025.1",
  "vectorizer": {
    "ngram_range": [1, 2],
    "stop_words": ["the"],
    "vocabulary": {"good": 0, "bad": 1, "good news": 2},
    "idf": [1.0, 1.5, 2.0],
    "sublinear_tf": true
  },
  "classifier": {
    "voting": "soft",
    "classes": [0, 1],
    "estimators": [
      {"name": "lr", "kind": "logistic", "coef": [1.0, -1.0, 0.5], "intercept": 0.1}
    ]
  }
}`

const yamlArtifact = `
version: "2025.1"
vectorizer:
  lowercase: true
  strip_accents: unicode
  vocabulary:
    good: 0
    bad: 1
  idf: [1.0, 1.0]
  norm: l1
classifier:
  estimators:
    - name: nb
      kind: multinomial_nb
      weight: 2
      class_log_prior: [-0.69, -0.69]
      feature_log_prob:
        - [-1.6, -0.2]
        - [-0.2, -1.6]
`

func TestDecodeArtifact(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		a, err := DecodeArtifact("model.json", strings.NewReader(jsonArtifact))

		require.NoError(t, err)
		assert.Equal(t, "2025.1", a.Version)
		assert.Equal(t, 3, a.Dim())
		assert.True(t, a.Vectorizer.SublinearTF)
		assert.Len(t, a.Classifier.Estimators, 1)
	})

	t.Run("yaml", func(t *testing.T) {
		a, err := DecodeArtifact("model.yml", strings.NewReader(yamlArtifact))

		require.NoError(t, err)
		assert.Equal(t, AccentsUnicode, a.Vectorizer.StripAccents)
		assert.Equal(t, NormL1, a.Vectorizer.Norm)
		require.Len(t, a.Classifier.Estimators, 1)
		assert.Equal(t, 2.0, a.Classifier.Estimators[0].weight())
	})

	t.Run("gzip compressed json", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(jsonArtifact))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		a, err := DecodeArtifact("s3://bucket/models/model.JSON.gz", &buf)

		require.NoError(t, err)
		assert.Equal(t, "2025.1", a.Version)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := DecodeArtifact("model.json.gz", strings.NewReader("not gzip"))

		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := DecodeArtifact("model.pkl", strings.NewReader(jsonArtifact))

		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeArtifact("model.json", strings.NewReader(`{"version": `))

		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		_, err := DecodeArtifact("model.json", strings.NewReader(`{"version": "1", "weights": []}`))

		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})

	t.Run("non-finite yaml values rejected", func(t *testing.T) {
		for _, repl := range []struct{ from, to string }{
			{"weight: 2", "weight: .inf"},
			{"weight: 2", "weight: .nan"},
			{"idf: [1.0, 1.0]", "idf: [.nan, 1.0]"},
			{"- [-1.6, -0.2]", "- [-.inf, -0.2]"},
		} {
			doc := strings.Replace(yamlArtifact, repl.from, repl.to, 1)

			_, err := DecodeArtifact("model.yaml", strings.NewReader(doc))

			assert.ErrorIs(t, err, ErrInvalidArtifact, repl.to)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := DecodeArtifact("model.yaml", strings.NewReader(""))

		assert.ErrorIs(t, err, ErrInvalidArtifact)
	})
}

func validArtifact() *Artifact {
	return &Artifact{
		Version:    "v1",
		Vectorizer: goodBadVectorizer(),
		Classifier: ClassifierSpec{Estimators: []EstimatorSpec{logisticSpec(), naiveBayesSpec(KindMultinomialNB)}},
	}
}

func TestArtifact_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Artifact)
	}{
		{name: "missing version", mutate: func(a *Artifact) { a.Version = " " }},
		{name: "empty vocabulary", mutate: func(a *Artifact) { a.Vectorizer.Vocabulary = nil }},
		{name: "column outside idf", mutate: func(a *Artifact) { a.Vectorizer.Vocabulary["ugly"] = 2 }},
		{name: "negative column", mutate: func(a *Artifact) { a.Vectorizer.Vocabulary["ugly"] = -1 }},
		{name: "shared column", mutate: func(a *Artifact) { a.Vectorizer.Vocabulary["fine"] = 0 }},
		{name: "ngram range too short", mutate: func(a *Artifact) { a.Vectorizer.NgramRange = []int{1} }},
		{name: "ngram range inverted", mutate: func(a *Artifact) { a.Vectorizer.NgramRange = []int{2, 1} }},
		{name: "ngram range zero", mutate: func(a *Artifact) { a.Vectorizer.NgramRange = []int{0, 1} }},
		{name: "unknown norm", mutate: func(a *Artifact) { a.Vectorizer.Norm = "max" }},
		{name: "unknown accent mode", mutate: func(a *Artifact) { a.Vectorizer.StripAccents = "latin" }},
		{name: "bad token pattern", mutate: func(a *Artifact) { a.Vectorizer.TokenPattern = "([a-z" }},
		{name: "two capture groups", mutate: func(a *Artifact) { a.Vectorizer.TokenPattern = `(\w)(\w+)` }},
		{name: "hard voting", mutate: func(a *Artifact) { a.Classifier.Voting = "hard" }},
		{name: "wrong classes", mutate: func(a *Artifact) { a.Classifier.Classes = []int{1, 0} }},
		{name: "no estimators", mutate: func(a *Artifact) { a.Classifier.Estimators = nil }},
		{name: "unknown kind", mutate: func(a *Artifact) { a.Classifier.Estimators[0].Kind = "svm" }},
		{name: "coef width mismatch", mutate: func(a *Artifact) { a.Classifier.Estimators[0].Coef = []float64{1} }},
		{name: "nb row count", mutate: func(a *Artifact) {
			a.Classifier.Estimators[1].FeatureLogProb = a.Classifier.Estimators[1].FeatureLogProb[:1]
		}},
		{name: "nb row width", mutate: func(a *Artifact) { a.Classifier.Estimators[1].FeatureLogProb[0] = []float64{0} }},
		{name: "nb missing prior", mutate: func(a *Artifact) { a.Classifier.Estimators[1].ClassLogPrior = nil }},
		{name: "negative weight", mutate: func(a *Artifact) { a.Classifier.Estimators[0].Weight = floatPtr(-1) }},
		{name: "nan weight", mutate: func(a *Artifact) { a.Classifier.Estimators[0].Weight = floatPtr(math.NaN()) }},
		{name: "inf weight", mutate: func(a *Artifact) { a.Classifier.Estimators[1].Weight = floatPtr(math.Inf(1)) }},
		{name: "nan coef", mutate: func(a *Artifact) { a.Classifier.Estimators[0].Coef[0] = math.NaN() }},
		{name: "inf intercept", mutate: func(a *Artifact) { a.Classifier.Estimators[0].Intercept = math.Inf(-1) }},
		{name: "nan idf", mutate: func(a *Artifact) { a.Vectorizer.IDF[1] = math.NaN() }},
		{name: "inf feature log prob", mutate: func(a *Artifact) { a.Classifier.Estimators[1].FeatureLogProb[1][0] = math.Inf(-1) }},
		{name: "nan class prior", mutate: func(a *Artifact) { a.Classifier.Estimators[1].ClassLogPrior[0] = math.NaN() }},
		{name: "zero total weight", mutate: func(a *Artifact) {
			a.Classifier.Estimators[0].Weight = floatPtr(0)
			a.Classifier.Estimators[1].Weight = floatPtr(0)
		}},
	}

	require.NoError(t, validArtifact().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArtifact()
			tt.mutate(a)

			err := a.Validate()

			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestArtifact_DimWithoutIDF(t *testing.T) {
	a := &Artifact{Vectorizer: VectorizerSpec{
		UseIDF:     boolPtr(false),
		Vocabulary: map[string]int{"a": 0, "b": 4},
	}}

	assert.Equal(t, 5, a.Dim())
}

type fakeOpener struct {
	body string
	err  error
}

func (f *fakeOpener) Open(context.Context, string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestLoad(t *testing.T) {
	t.Run("loads and builds model", func(t *testing.T) {
		m, err := Load(context.Background(), &fakeOpener{body: jsonArtifact}, "models/model.json")

		require.NoError(t, err)
		assert.Equal(t, "2025.1", m.Version())
		assert.Equal(t, "models/model.json", m.Info().Source)

		p, err := m.ClassifyText(context.Background(), "Good news, the bad is gone")
		require.NoError(t, err)
		assert.True(t, p.IsValid())
	})

	t.Run("propagates open errors", func(t *testing.T) {
		openErr := errors.New("no such file")

		m, err := Load(context.Background(), &fakeOpener{err: openErr}, "missing.json")

		assert.ErrorIs(t, err, openErr)
		assert.Nil(t, m)
	})

	t.Run("corrupt artifact", func(t *testing.T) {
		m, err := Load(context.Background(), &fakeOpener{body: "{"}, "model.json")

		assert.ErrorIs(t, err, ErrInvalidArtifact)
		assert.Nil(t, m)
	})
}
