package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// InjectLogger stores logger in the request context so that the ID
// middleware enriches it rather than the process default.
func InjectLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger != nil {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		}

		c.Next()
	}
}

// Logging writes one "request completed" record per request, at warn for
// 4xx and error for 5xx. Paths under any skip prefix, such as the health
// endpoints, are not logged. The record goes to the request's logger, which
// carries the request and correlation IDs when those ran first.
func Logging(fallback *slog.Logger, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.ContainsFunc(skipPrefixes, func(p string) bool { return strings.HasPrefix(path, p) }) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := logging.FromContextOr(ctx, fallback)
		start := time.Now()

		logging.Trace(ctx, logger, "request started",
			slog.String("method", c.Request.Method),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes", max(c.Writer.Size(), 0)),
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(ctx, levelFor(status), "request completed", attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
