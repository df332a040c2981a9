package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const defaultCountConcurrency = 8

// FeedService serves published content.
type FeedService struct {
	store            ports.ContentStore
	countConcurrency int
	logger           *slog.Logger
}

// FeedServiceConfig contains the feed service's dependencies.
type FeedServiceConfig struct {
	Store ports.ContentStore

	// CountConcurrency bounds parallel comment counts when listing quotes.
	CountConcurrency int

	Logger *slog.Logger
}

// NewFeedService creates a feed service. It panics without a store.
func NewFeedService(cfg FeedServiceConfig) *FeedService {
	if cfg.Store == nil {
		panic("app: FeedService requires a store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := cfg.CountConcurrency
	if n <= 0 {
		n = defaultCountConcurrency
	}

	return &FeedService{
		store:            cfg.Store,
		countConcurrency: n,
		logger:           logger.With(slog.String("component", "app.FeedService")),
	}
}

// ListQuotes returns published quotes, newest first, with CommentCount
// recomputed by counting rather than read from the cached field.
func (s *FeedService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.store.PublishedQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing published quotes: %w", err)
	}

	counts := MapLimit(ctx, s.countConcurrency, quotes, func(ctx context.Context, q domain.Quote) int {
		return s.CommentCount(ctx, q.ID)
	})

	for i := range quotes {
		quotes[i].CommentCount = counts[i]
	}

	return quotes, nil
}

// ListComments returns the published comments on a quote, newest first.
// An unknown quote yields an empty list.
func (s *FeedService) ListComments(ctx context.Context, quoteID string) ([]domain.Comment, error) {
	id, err := domain.ValidateQuoteID(&quoteID)
	if err != nil {
		return nil, err
	}

	comments, err := s.store.CommentsForQuote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing comments for quote %s: %w", id, err)
	}

	return comments, nil
}

// CommentCount counts the published comments on a quote. Storage errors
// are logged and reported as zero.
func (s *FeedService) CommentCount(ctx context.Context, quoteID string) int {
	n, err := s.store.CountPublishedComments(ctx, strings.TrimSpace(quoteID))
	if err != nil {
		logger := logging.FromContextOr(ctx, s.logger)

		logger.WarnContext(ctx, "counting comments failed, reporting zero",
			slog.String("quote_id", quoteID),
			slog.Any("error", err),
		)

		return 0
	}

	return n
}
