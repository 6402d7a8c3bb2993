package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	router := gin.New()
	router.GET("/test", h)

	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestRespondSuccess(t *testing.T) {
	t.Run("wraps data in envelope", func(t *testing.T) {
		w, response := serve(t, func(c *gin.Context) {
			c.Set("request_id", "test-request-id")
			respondSuccess(c, http.StatusOK, map[string]string{"label": "REAL"})
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, response.Success)
		assert.Equal(t, map[string]any{"label": "REAL"}, response.Data)
		assert.Nil(t, response.Error)
		assert.Equal(t, "test-request-id", response.Meta.RequestID)
		assert.Empty(t, response.Meta.ModelVersion)
	})

	t.Run("includes model version when set", func(t *testing.T) {
		_, response := serve(t, func(c *gin.Context) {
			c.Set("model_version", "2024-05-01")
			respondSuccess(c, http.StatusOK, nil)
		})

		assert.Equal(t, "2024-05-01", response.Meta.ModelVersion)
		assert.Nil(t, response.Data)
	})
}

func TestRespondError(t *testing.T) {
	t.Run("returns error envelope", func(t *testing.T) {
		w, response := serve(t, func(c *gin.Context) {
			respondError(c, http.StatusBadRequest, "INVALID_INPUT", "please enter some text to analyze")
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, response.Success)
		assert.Nil(t, response.Data)
		require.NotNil(t, response.Error)
		assert.Equal(t, "INVALID_INPUT", response.Error.Code)
		assert.Equal(t, "please enter some text to analyze", response.Error.Message)
	})

	t.Run("generates request ID if not set", func(t *testing.T) {
		_, response := serve(t, func(c *gin.Context) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "check not found")
		})

		assert.NotEmpty(t, response.Meta.RequestID)
		assert.NotEmpty(t, response.Meta.Timestamp)
	})
}
