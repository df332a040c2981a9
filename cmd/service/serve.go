package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/quoteboard/internal/adapters/cache/rediscache"
	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/store"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
	"github.com/jsamuelsen/quoteboard/internal/platform/telemetry"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cc)
		},
	}
}

// closer releases one resource during shutdown.
type closer struct {
	name  string
	close func(ctx context.Context) error
}

func runServe(cc *commandContext) error {
	ctx := context.Background()
	cfg, logger := cc.cfg, cc.logger

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
	)

	// 1. Telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// Released in reverse order after the server stops
	closers := []closer{{name: "telemetry", close: telProvider.Shutdown}}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].close(shutdownCtx); err != nil {
				logger.Error("shutdown error", slog.String("resource", closers[i].name), slog.Any("error", err))
			}
		}
	}()

	recorder := metrics.New(prometheus.DefaultRegisterer)
	healthRegistry := ports.NewHealthRegistry()

	// 2. Content store, schema ensured on every start
	contentStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	closers = append(closers, closer{name: "store", close: contentStore.Close})

	if err := contentStore.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating store: %w", err)
	}

	if err := healthRegistry.Register(contentStore); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 3. Rating cache (optional)
	var ratingCache ports.RatingCache

	if cfg.Cache.Enabled {
		c := rediscache.New(rediscache.Config{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		closers = append(closers, closer{name: "cache", close: func(context.Context) error { return c.Close() }})

		if err := healthRegistry.Register(c); err != nil {
			return fmt.Errorf("registering cache health check: %w", err)
		}

		ratingCache = c
	}

	// 4. Rating oracle behind the instrumented client
	oracle, err := newOracle(cfg, recorder, logger)
	if err != nil {
		return err
	}

	if err := healthRegistry.Register(oracle); err != nil {
		return fmt.Errorf("registering oracle health check: %w", err)
	}

	// 5. Application services
	rater := app.NewQualityRater(app.QualityRaterConfig{
		Oracle:   oracle,
		Cache:    ratingCache,
		CacheTTL: cfg.Cache.TTL,
		Limiter:  newLimiter(cfg.Oracle),
		Metrics:  recorder,
		Logger:   logger,
	})

	counters := app.NewCounterUpdater(app.CounterUpdaterConfig{
		Store:   contentStore,
		Detach:  !cfg.Moderation.AwaitCounterUpdate,
		Timeout: cfg.Moderation.CounterUpdateTimeout,
		Metrics: recorder,
		Logger:  logger,
	})

	moderation := app.NewModerationService(app.ModerationServiceConfig{
		Store: contentStore,
		Executor: app.NewExecutor(app.ExecutorConfig{
			Rater:     rater,
			Threshold: cfg.Moderation.Threshold,
			Metrics:   recorder,
			Logger:    logger,
		}),
		Counters: counters,
	})

	feed := app.NewFeedService(app.FeedServiceConfig{
		Store:            contentStore,
		CountConcurrency: cfg.Moderation.CountConcurrency,
		Logger:           logger,
	})

	// 6. HTTP
	server := http.New(&cfg.Server, cfg.App.Environment, logger)

	health := handlers.NewHealthHandler(handlers.HealthConfig{
		Registry:      healthRegistry,
		Build:         handlers.NewBuildInfo(Version, Commit, BuildTime),
		Gatherer:      prometheus.DefaultGatherer,
		ReadyCacheTTL: cfg.Server.ReadyCacheTTL,
	})

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		ServiceName:    telemetry.ConfigFrom(cfg).ServiceName,
		HealthHandler:  health,
		ContentHandler: handlers.NewContentHandler(moderation, feed),
		Timeout:        cfg.Server.WriteTimeout,
	})

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = server.Run(sigCtx)

	// Detached counter increments finish before the store closes
	counters.Wait()

	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

func newOracle(cfg *config.Config, recorder *metrics.Recorder, logger *slog.Logger) (*acl.GeminiOracle, error) {
	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.Oracle.BaseURL,
		ServiceName: cfg.Oracle.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Metrics:     recorder,
		AuthFunc:    acl.APIKeyAuth(cfg.Oracle.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating oracle client: %w", err)
	}

	return acl.NewGeminiOracle(acl.GeminiConfig{
		Client: client,
		Model:  cfg.Oracle.Model,
		Logger: logger,
	}), nil
}

// newLimiter returns nil, meaning unlimited, when no rate is configured.
func newLimiter(cfg config.OracleConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}
