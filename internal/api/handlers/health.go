package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dependencyUp       = "up"
	dependencyDown     = "down"
	dependencyDegraded = "degraded"

	healthCheckTimeout = 2 * time.Second
)

var errNoDatabase = errors.New("database not configured")

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type gormPinger struct{ db *gorm.DB }

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DatabasePinger adapts a gorm connection to Pinger
func DatabasePinger(db *gorm.DB) Pinger {
	return gormPinger{db: db}
}

// HealthHandler serves the root probe and the /health family
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new health handler. cache is nil when no metadata cache is
// configured.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// RootResponse is the fixed payload served at GET /
type RootResponse struct {
	Name   string `json:"name" example:"trove-api"`
	Status string `json:"status" example:"ok"`
}

// DependencyStatus reports one backing service
type DependencyStatus struct {
	Status string `json:"status" example:"up"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is returned by /health and /health/ready
type HealthResponse struct {
	Status       string                      `json:"status" example:"healthy"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// Root returns a fixed status payload
// @Summary Service probe
// @Tags health
// @Produce json
// @Success 200 {object} RootResponse "Service is up"
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{Name: "trove-api", Status: "ok"})
}

// Health reports database and cache reachability
// @Summary Health check
// @Description Database and metadata cache connectivity. A cache outage degrades but does not fail the check.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Healthy"
// @Failure 503 {object} HealthResponse "Database unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	h.respond(c, "healthy", "unhealthy")
}

// Ready reports whether the service can take traffic
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Ready"
// @Failure 503 {object} HealthResponse "Not ready"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	h.respond(c, "ready", "not_ready")
}

// Live always answers while the process is serving
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Alive"
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "alive", Timestamp: time.Now().UTC()})
}

func (h *HealthHandler) respond(c *gin.Context, okStatus, failStatus string) {
	deps, ok := h.check(c.Request.Context())

	resp := HealthResponse{Status: okStatus, Timestamp: time.Now().UTC(), Dependencies: deps}
	code := http.StatusOK
	if !ok {
		resp.Status = failStatus
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// check only fails on the database; metadata fetches fall back to the network without the cache.
func (h *HealthHandler) check(ctx context.Context) (map[string]DependencyStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	deps := make(map[string]DependencyStatus, 2)
	ok := true

	if err := ping(ctx, h.db); err != nil {
		ok = false
		deps["database"] = DependencyStatus{Status: dependencyDown, Error: err.Error()}
	} else {
		deps["database"] = DependencyStatus{Status: dependencyUp}
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			deps["cache"] = DependencyStatus{Status: dependencyDegraded, Error: err.Error()}
		} else {
			deps["cache"] = DependencyStatus{Status: dependencyUp}
		}
	}

	return deps, ok
}

func ping(ctx context.Context, p Pinger) error {
	if p == nil {
		return errNoDatabase
	}
	return p.Ping(ctx)
}
