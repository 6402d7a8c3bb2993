package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var status HealthStatus
	if path == "/health" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	}
	return w, status
}

func TestHealthHandler_Health(t *testing.T) {
	t.Run("healthy with model and no cache", func(t *testing.T) {
		w, status := getHealth(t, NewHealthHandler(&stubModel{}, nil), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "ok", status.Components["model"])
		assert.Equal(t, "not configured", status.Components["redis"])
	})

	t.Run("healthy with reachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		w, status := getHealth(t, NewHealthHandler(&stubModel{}, client), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", status.Components["redis"])
	})

	t.Run("unhealthy when redis is down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		mr.Close()

		w, status := getHealth(t, NewHealthHandler(&stubModel{}, client), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", status.Status)
		assert.Contains(t, status.Components["redis"], "error")
	})

	t.Run("unhealthy without model", func(t *testing.T) {
		w, status := getHealth(t, NewHealthHandler(nil, nil), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "not loaded", status.Components["model"])
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready when model loaded", func(t *testing.T) {
		w, _ := getHealth(t, NewHealthHandler(&stubModel{}, nil), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "stub-v1")
	})

	t.Run("not ready without model", func(t *testing.T) {
		w, _ := getHealth(t, NewHealthHandler(nil, nil), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "model not loaded")
	})
}
