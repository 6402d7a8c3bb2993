package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

const testArtifact = `{
  "version": "cli-test",
  "vectorizer": {
    "vocabulary": {"confirm": 0, "hoax": 1, "shocking": 2, "study": 3},
    "idf": [1, 1, 1, 1]
  },
  "classifier": {
    "estimators": [
      {"name": "lr", "kind": "logistic", "coef": [3, -3, -2, 2], "intercept": 0}
    ]
  }
}`

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(testArtifact), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_TextOutput(t *testing.T) {
	out, err := execute(t, "", "--model", writeArtifact(t), "Shocking hoax!", "Scientists confirm water is wet")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "LABEL")
	assert.True(t, strings.HasPrefix(lines[1], "FAKE"))
	assert.True(t, strings.HasPrefix(lines[2], "REAL"))
	assert.Contains(t, lines[2], "Scientists confirm water is wet")
}

func TestRoot_JSONOutputFromStdin(t *testing.T) {
	out, err := execute(t, "A new study confirms it\n", "--model", writeArtifact(t), "-o", "json")

	require.NoError(t, err)
	var result usecase.ClassifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "REAL", result.Label)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.Equal(t, "cli-test", result.ModelVersion)
}

func TestRoot_Lines(t *testing.T) {
	out, err := execute(t, "shocking hoax\n\nnew study\n", "--model", writeArtifact(t), "--lines", "-o", "json")

	require.NoError(t, err)
	var results []usecase.ClassifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "FAKE", results[0].Label)
	assert.Equal(t, "REAL", results[1].Label)
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		contains string
	}{
		{name: "blank stdin", stdin: "  \n", args: []string{"--model", "unused.json"}, contains: "please enter some text"},
		{name: "blank argument", args: []string{"--model", "unused.json", " "}, contains: "please enter some text"},
		{name: "bad output", args: []string{"-o", "xml", "text"}, contains: "unknown output format"},
		{name: "missing model", args: []string{"--model", "/nonexistent/model.json", "text"}, contains: "failed to load model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRoot_Server(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/classify/batch", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"results":[{"label":"FAKE","confidence":0.75}],"count":1},"meta":{}}`))
	}))
	defer server.Close()

	out, err := execute(t, "", "--server", server.URL, "Miracle cure exposed")

	require.NoError(t, err)
	assert.Contains(t, out, "FAKE")
	assert.Contains(t, out, "75.0%")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "a b c", excerpt("a\n b\t c", 10))
	assert.Equal(t, "abc...", excerpt("abcdef", 3))
}
