package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/platform/telemetry"
)

// APIPrefix is the group holding the public content endpoints.
const APIPrefix = "/api"

// HealthPrefix holds the operational endpoints. They skip the /api timeout
// and request logging.
const HealthPrefix = "/-"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the OpenTelemetry server spans.
	ServiceName string

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// ContentHandler serves the quote and comment endpoints.
	ContentHandler *handlers.ContentHandler

	// Timeout is the deadline placed on API requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Logger injection - base logger for the ID middleware to enrich
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline on /api
//
// Route groups:
//   - /-/ (internal): Health endpoints
//   - /api/ (public API): content endpoints with CORS
//
// A known API path called with the wrong method gets 405 with the error
// envelope; unknown paths get 404.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.InjectLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger, HealthPrefix+"/"))

	// Register health endpoints (no timeout for health checks)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine.Group(HealthPrefix))
	}

	api := engine.Group(APIPrefix)
	api.Use(middleware.Timeout(cfg.Timeout))

	if cfg.ContentHandler != nil {
		cfg.ContentHandler.RegisterRoutes(api)
	}

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(methodNotAllowed(apiMethods(engine)))
	engine.NoRoute(func(c *gin.Context) {
		dto.RespondWithCode(c, dto.ErrorCodeNotFound, dto.MessageNotFound)
	})
}

// apiMethods maps each API path to its CORS method list.
func apiMethods(engine *gin.Engine) map[string]string {
	byPath := make(map[string][]string)

	for _, r := range engine.Routes() {
		if !strings.HasPrefix(r.Path, APIPrefix+"/") || r.Method == http.MethodOptions {
			continue
		}

		byPath[r.Path] = append(byPath[r.Path], r.Method)
	}

	allowed := make(map[string]string, len(byPath))
	for path, methods := range byPath {
		allowed[path] = middleware.AllowMethods(methods...)
	}

	return allowed
}

func methodNotAllowed(allowed map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if methods, ok := allowed[c.Request.URL.Path]; ok {
			middleware.SetCORSHeaders(c, methods)
			c.Header("Allow", methods)
		}

		dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed, dto.MessageMethodNotAllowed)
	}
}
