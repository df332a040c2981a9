// Package http provides the HTTP adapter layer using Gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quoteboard/internal/platform/config"
)

// Server runs the Gin engine behind a net/http server.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	drain  config.ServerConfig
	logger *slog.Logger
}

// ModeForEnvironment picks the Gin mode for an application environment.
// Only local runs get Gin's debug route dump.
func ModeForEnvironment(env string) string {
	switch env {
	case "local":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// New builds a server listening on cfg.Host:cfg.Port. Reads past
// cfg.MaxRequestSize fail, which the submit handlers answer with 413.
func New(cfg *config.ServerConfig, env string, logger *slog.Logger) *Server {
	gin.SetMode(ModeForEnvironment(env))

	engine := gin.New()
	engine.Use(limitBody(cfg.MaxRequestSize))

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           engine,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		drain:  *cfg,
		logger: logger,
	}
}

// Engine is where routes are registered.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens on Addr and serves until ctx is done or serving fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	return s.RunListener(ctx, ln)
}

// RunListener serves on ln until ctx is done, then stops accepting
// connections and waits up to ShutdownTimeout for in-flight requests.
func (s *Server) RunListener(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening",
			slog.String("addr", ln.Addr().String()),
			slog.Int64("max_request_size", s.drain.MaxRequestSize),
		)

		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drain.ShutdownTimeout)
		defer cancel()

		s.logger.Info("draining http server", slog.Duration("timeout", s.drain.ShutdownTimeout))

		if err := s.srv.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}

		s.logger.Info("http server stopped")

		return nil
	})

	return g.Wait()
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}

		c.Next()
	}
}
