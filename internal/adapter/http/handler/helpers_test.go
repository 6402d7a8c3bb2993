package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{name: "default value", query: "", expectedLimit: DefaultCheckLimit},
		{name: "custom valid value", query: "limit=3", expectedLimit: 3},
		{name: "limit exceeds max", query: "limit=500", expectedLimit: MaxCheckLimit},
		{name: "negative limit uses default", query: "limit=-5", expectedLimit: DefaultCheckLimit},
		{name: "zero limit uses default", query: "limit=0", expectedLimit: DefaultCheckLimit},
		{name: "invalid limit uses default", query: "limit=many", expectedLimit: DefaultCheckLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			assert.Equal(t, tt.expectedLimit, ParseLimit(c))
		})
	}
}

func TestExtractUUIDParam(t *testing.T) {
	tests := []struct {
		name       string
		paramValue string
		expectErr  bool
	}{
		{
			name:       "valid UUID",
			paramValue: "550e8400-e29b-41d4-a716-446655440000",
			expectErr:  false,
		},
		{
			name:       "invalid UUID",
			paramValue: "invalid-uuid",
			expectErr:  true,
		},
		{
			name:       "empty string",
			paramValue: "",
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.paramValue}}

			id, err := ExtractUUIDParam(c, "id")

			if tt.expectErr {
				assert.Error(t, err)
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.paramValue, id.String())
			}
		})
	}
}

func TestReadPlainText(t *testing.T) {
	t.Run("reads body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("breaking news"))
		c.Request.Header.Set("Content-Type", "text/plain; charset=utf-8")

		require.True(t, isPlainText(c))
		text, err := readPlainText(c, 100)

		require.NoError(t, err)
		assert.Equal(t, "breaking news", text)
	})

	t.Run("stops one byte past the limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 50)))

		text, err := readPlainText(c, 10)

		require.NoError(t, err)
		assert.Len(t, text, 11)
	})

	t.Run("json is not plain text", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		c.Request.Header.Set("Content-Type", "application/json")

		assert.False(t, isPlainText(c))
	})
}
