package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const defaultCounterTimeout = 5 * time.Second

// CounterUpdater bumps a quote's cached comment count after a published
// comment is stored. Failures are logged and counted, never returned: the
// counter is a display cache and the comment is already saved.
type CounterUpdater struct {
	store   ports.ContentStore
	detach  bool
	timeout time.Duration
	metrics *metrics.Recorder
	logger  *slog.Logger

	inflight sync.WaitGroup
}

// CounterUpdaterConfig configures a CounterUpdater.
type CounterUpdaterConfig struct {
	Store ports.ContentStore

	// Detach runs increments in the background on a context that outlives
	// the request. When false, Bump returns after the increment finishes.
	Detach bool

	// Timeout bounds a detached increment.
	Timeout time.Duration

	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewCounterUpdater creates a counter updater.
func NewCounterUpdater(cfg CounterUpdaterConfig) *CounterUpdater {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCounterTimeout
	}

	return &CounterUpdater{
		store:   cfg.Store,
		detach:  cfg.Detach,
		timeout: timeout,
		metrics: cfg.Metrics,
		logger:  logger.With(slog.String("component", "app.CounterUpdater")),
	}
}

// Bump increments the comment count of quoteID.
func (u *CounterUpdater) Bump(ctx context.Context, quoteID string) {
	if !u.detach {
		u.increment(ctx, quoteID)

		return
	}

	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)

	u.inflight.Go(func() {
		defer cancel()

		u.increment(bg, quoteID)
	})
}

// Wait blocks until detached increments have finished.
func (u *CounterUpdater) Wait() {
	u.inflight.Wait()
}

func (u *CounterUpdater) increment(ctx context.Context, quoteID string) {
	logger := logging.FromContextOr(ctx, u.logger)

	err := u.store.IncrementCommentCount(ctx, quoteID)
	u.metrics.ObserveCounterUpdate(err)

	if err != nil {
		logger.WarnContext(ctx, "comment count update failed",
			slog.String("quote_id", quoteID),
			slog.Any("error", err),
		)

		return
	}

	logger.DebugContext(ctx, "comment count updated", slog.String("quote_id", quoteID))
}
