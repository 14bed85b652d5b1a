package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trove-backend/internal/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func healthRouter(h *handlers.HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/health/ready", h.Ready)
	router.GET("/health/live", h.Live)
	return router
}

func getHealth(t *testing.T, router *gin.Engine, path string) (int, handlers.HealthResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRootAndLive(t *testing.T) {
	router := healthRouter(handlers.NewHealthHandler(nil, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"trove-api","status":"ok"}`, w.Body.String())

	code, body := getHealth(t, router, "/health/live")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alive", body.Status)
	assert.Empty(t, body.Dependencies)
}

func TestHealth(t *testing.T) {
	t.Run("database up without cache", func(t *testing.T) {
		router := healthRouter(handlers.NewHealthHandler(stubPinger{}, nil))

		code, body := getHealth(t, router, "/health")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "up", body.Dependencies["database"].Status)
		assert.NotContains(t, body.Dependencies, "cache")
	})

	t.Run("cache outage only degrades", func(t *testing.T) {
		router := healthRouter(handlers.NewHealthHandler(stubPinger{}, stubPinger{err: errors.New("connection refused")}))

		code, body := getHealth(t, router, "/health")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", body.Dependencies["cache"].Status)
		assert.Equal(t, "connection refused", body.Dependencies["cache"].Error)
	})

	t.Run("database down", func(t *testing.T) {
		router := healthRouter(handlers.NewHealthHandler(stubPinger{err: errors.New("timeout")}, stubPinger{}))

		code, body := getHealth(t, router, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, "down", body.Dependencies["database"].Status)
		assert.Equal(t, "up", body.Dependencies["cache"].Status)
	})
}

func TestReady(t *testing.T) {
	code, body := getHealth(t, healthRouter(handlers.NewHealthHandler(stubPinger{}, nil)), "/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body.Status)

	code, body = getHealth(t, healthRouter(handlers.NewHealthHandler(nil, nil)), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "database not configured", body.Dependencies["database"].Error)
}
