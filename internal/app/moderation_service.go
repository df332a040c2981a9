// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate the moderation and read pipelines
//   - Coordinate between domain and infrastructure
//   - Handle cross-cutting concerns (logging, metrics, tracing)
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - Database queries (that's store adapters)
//   - Validation and rating rules (that's the domain layer)
package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// QuoteSubmission is a raw quote submission. A nil field was absent from
// the request or was not a string.
type QuoteSubmission struct {
	Text *string
}

// CommentSubmission is a raw comment submission.
type CommentSubmission struct {
	QuoteID *string
	Text    *string
}

type validComment struct {
	quoteID string
	text    string
}

// ModerationService accepts quotes and comments.
// It depends on port interfaces, not concrete implementations.
type ModerationService struct {
	store    ports.ContentStore
	exec     *Executor
	counters *CounterUpdater
}

// ModerationServiceConfig contains the service's dependencies.
type ModerationServiceConfig struct {
	Store    ports.ContentStore
	Executor *Executor
	Counters *CounterUpdater
}

// NewModerationService creates a moderation service. It panics if a
// dependency is missing.
func NewModerationService(cfg ModerationServiceConfig) *ModerationService {
	if cfg.Store == nil || cfg.Executor == nil || cfg.Counters == nil {
		panic("app: ModerationService requires a store, executor and counter updater")
	}

	return &ModerationService{
		store:    cfg.Store,
		exec:     cfg.Executor,
		counters: cfg.Counters,
	}
}

// SubmitQuote validates, rates and stores a quote.
func (s *ModerationService) SubmitQuote(ctx context.Context, in QuoteSubmission) (SubmissionResult, error) {
	return Execute(ctx, s.exec, Submission[QuoteSubmission, string]{
		Name: "SubmitQuote",
		Kind: domain.KindQuote,
		Validate: func(_ context.Context, in QuoteSubmission) (string, error) {
			return domain.ValidateContent(domain.KindQuote, in.Text)
		},
		Text: func(text string) string { return text },
		Persist: func(ctx context.Context, text string, v Verdict) (string, error) {
			id, err := s.store.SaveQuote(ctx, domain.NewQuote{
				Text:      text,
				Rating:    v.Rating,
				Published: v.Published,
			})
			if err != nil {
				return "", fmt.Errorf("saving quote: %w", err)
			}

			return id, nil
		},
	}, in)
}

// SubmitComment validates, rates and stores a comment. The quote id is
// checked before the text. A published comment bumps its quote's cached
// comment count on a best-effort basis.
func (s *ModerationService) SubmitComment(ctx context.Context, in CommentSubmission) (SubmissionResult, error) {
	return Execute(ctx, s.exec, Submission[CommentSubmission, validComment]{
		Name: "SubmitComment",
		Kind: domain.KindComment,
		Validate: func(_ context.Context, in CommentSubmission) (validComment, error) {
			quoteID, err := domain.ValidateQuoteID(in.QuoteID)
			if err != nil {
				return validComment{}, err
			}

			text, err := domain.ValidateContent(domain.KindComment, in.Text)
			if err != nil {
				return validComment{}, err
			}

			return validComment{quoteID: quoteID, text: text}, nil
		},
		Text: func(c validComment) string { return c.text },
		Persist: func(ctx context.Context, c validComment, v Verdict) (string, error) {
			id, err := s.store.SaveComment(ctx, domain.NewComment{
				QuoteID:   c.quoteID,
				Text:      c.text,
				Rating:    v.Rating,
				Published: v.Published,
			})
			if err != nil {
				return "", fmt.Errorf("saving comment: %w", err)
			}

			return id, nil
		},
		Settle: func(ctx context.Context, c validComment, v Verdict, _ string) {
			if v.Published {
				s.counters.Bump(ctx, c.quoteID)
			}
		},
	}, in)
}
