// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// BuildInfo is served on /-/build. Version, Commit and BuildTime come from
// ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo fills GoVersion from the running binary.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthConfig wires the operational endpoints.
type HealthConfig struct {
	Registry ports.HealthRegistry
	Build    BuildInfo

	// Gatherer backs /-/metrics. Nil means the process default registry.
	Gatherer prometheus.Gatherer

	// ReadyCacheTTL reuses the last readiness result for this long. The
	// oracle check is a real upstream call, so callers should not each pay it.
	ReadyCacheTTL time.Duration
}

// HealthHandler serves the /-/ endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
	build    BuildInfo
	metrics  http.Handler
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    *ports.HealthResult
	checked time.Time
}

// NewHealthHandler creates the handler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &HealthHandler{
		registry: cfg.Registry,
		build:    cfg.Build,
		metrics:  promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		ttl:      cfg.ReadyCacheTTL,
		now:      time.Now,
	}
}

type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness reports that the process is serving. It checks nothing else.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness answers 503 only when a required check fails. A failing
// optional dependency (rating oracle, rating cache) reports "degraded" with
// 200, since submissions still succeed without it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.check(c)

	status := http.StatusOK
	if !result.Status.Ready() {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

// check serializes readiness requests so a burst of them runs the checks once.
func (h *HealthHandler) check(c *gin.Context) *ports.HealthResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if h.last != nil && now.Sub(h.checked) < h.ttl {
		return h.last
	}

	h.last = h.registry.CheckAll(c.Request.Context())
	h.checked = now

	return h.last
}

// Build serves the build information.
func (h *HealthHandler) Build(c *gin.Context) {
	c.JSON(http.StatusOK, h.build)
}

// Metrics serves the Prometheus exposition.
func (h *HealthHandler) Metrics(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}

// RegisterRoutes mounts live, ready, build and metrics on rg, which the
// router roots at /-.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.Build)
	rg.GET("/metrics", h.Metrics)
}
