// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// ContentStore persists quotes and comments.
//
// Adapters are constructed once at startup, shared by all requests and
// closed at shutdown. Implementations must be safe for concurrent use.
type ContentStore interface {
	// SaveQuote stores a new quote with a zero comment count and a
	// store-assigned timestamp, returning the new id.
	SaveQuote(ctx context.Context, q domain.NewQuote) (string, error)

	// PublishedQuotes returns every published quote, newest first.
	PublishedQuotes(ctx context.Context) ([]domain.Quote, error)

	// SaveComment stores a new comment and returns its id. It does not
	// touch the parent quote's counter.
	SaveComment(ctx context.Context, c domain.NewComment) (string, error)

	// IncrementCommentCount atomically adds one to a quote's cached counter.
	// Returns domain.ErrNotFound if the quote does not exist.
	IncrementCommentCount(ctx context.Context, quoteID string) error

	// CommentsForQuote returns the published comments on a quote, newest first.
	CommentsForQuote(ctx context.Context, quoteID string) ([]domain.Comment, error)

	// CountPublishedComments counts published comments on a quote directly,
	// without reading the cached counter.
	CountPublishedComments(ctx context.Context, quoteID string) (int, error)

	// Migrate creates the tables, collections or indexes the store needs.
	Migrate(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}

// RatingOracle scores a prompt and returns the model's raw text answer.
// Returns domain.ErrUnavailable (wrapped) when the backend cannot answer.
type RatingOracle interface {
	Score(ctx context.Context, prompt string) (string, error)
}

// RatingCache remembers assessments of previously rated text.
// A miss is reported as (zero, false, nil); errors are reserved for
// backend failures.
type RatingCache interface {
	Get(ctx context.Context, key string) (domain.Assessment, bool, error)
	Set(ctx context.Context, key string, a domain.Assessment, ttl time.Duration) error
}
