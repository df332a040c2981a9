// Package domain contains core business entities and rules.
package domain

import "time"

// ContentKind distinguishes the two kinds of moderated text.
type ContentKind string

const (
	// KindQuote is a top-level submission.
	KindQuote ContentKind = "quote"

	// KindComment is a reply attached to a quote.
	KindComment ContentKind = "comment"
)

// Maximum lengths in characters, measured after trimming.
const (
	MaxQuoteLength   = 500
	MaxCommentLength = 300
)

// MaxLength returns the character limit for the kind.
func (k ContentKind) MaxLength() int {
	if k == KindComment {
		return MaxCommentLength
	}

	return MaxQuoteLength
}

// Label returns the capitalized name used in user-facing messages.
func (k ContentKind) Label() string {
	if k == KindComment {
		return "Comment"
	}

	return "Quote"
}

// Quote is a moderated top-level submission.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	ID        string
	Text      string
	Rating    int
	Published bool
	CreatedAt time.Time

	// CommentCount is a cached tally of published replies. It only grows,
	// and may lag behind a direct count of the comments.
	CommentCount int
}

// Comment is a moderated reply. Comments are immutable once stored.
// QuoteID is not checked against existing quotes.
type Comment struct {
	ID        string
	QuoteID   string
	Text      string
	Rating    int
	Published bool
	CreatedAt time.Time
}

// NewQuote carries what the moderation pipeline decided about a quote.
// The store assigns the id and timestamp.
type NewQuote struct {
	Text      string
	Rating    int
	Published bool
}

// NewComment carries what the moderation pipeline decided about a comment.
type NewComment struct {
	QuoteID   string
	Text      string
	Rating    int
	Published bool
}
