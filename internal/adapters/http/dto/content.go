package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// Body decoding errors.
var (
	// ErrMalformedBody is returned when a request body is not a JSON object.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrBodyTooLarge is returned when the body exceeds the server limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// SubmitQuoteRequest is the body of POST /api/submit-quote.
// Fields are kept raw so a non-string value can be told apart from a
// string, and reported as missing.
type SubmitQuoteRequest struct {
	Text json.RawMessage `json:"text"`
}

// ToSubmission converts the request for the moderation service.
func (r SubmitQuoteRequest) ToSubmission() app.QuoteSubmission {
	return app.QuoteSubmission{Text: StringField(r.Text)}
}

// SubmitCommentRequest is the body of POST /api/submit-comment.
type SubmitCommentRequest struct {
	QuoteID json.RawMessage `json:"quoteId"`
	Text    json.RawMessage `json:"text"`
}

// ToSubmission converts the request for the moderation service.
func (r SubmitCommentRequest) ToSubmission() app.CommentSubmission {
	return app.CommentSubmission{
		QuoteID: StringField(r.QuoteID),
		Text:    StringField(r.Text),
	}
}

// CommentsQuery holds the query parameters of GET /api/get-comments.
// The id is checked by the feed service with the same rule submissions use.
type CommentsQuery struct {
	QuoteID string `form:"quoteId" json:"quoteId"`
}

// StringField returns the string held by a raw JSON value, or nil when the
// value is absent, null or any other JSON type.
func StringField(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	return &s
}

// BindJSONBody decodes the request body into v. An empty body decodes as
// an empty object so that every field reads as missing.
func BindJSONBody(c *gin.Context, v any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}

		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return nil
}

// SubmitQuoteResponse is returned after a quote was moderated.
type SubmitQuoteResponse struct {
	Success   bool   `json:"success"`
	QuoteID   string `json:"quoteId"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
	Published bool   `json:"published"`
	Message   string `json:"message"`
}

// NewSubmitQuoteResponse builds the response from a moderation result.
func NewSubmitQuoteResponse(r app.SubmissionResult) SubmitQuoteResponse {
	return SubmitQuoteResponse{
		Success:   true,
		QuoteID:   r.ID,
		Rating:    r.Rating,
		Feedback:  r.Feedback,
		Published: r.Published,
		Message:   r.Message,
	}
}

// SubmitCommentResponse is returned after a comment was moderated.
type SubmitCommentResponse struct {
	Success   bool   `json:"success"`
	CommentID string `json:"commentId"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
	Published bool   `json:"published"`
	Message   string `json:"message"`
}

// NewSubmitCommentResponse builds the response from a moderation result.
func NewSubmitCommentResponse(r app.SubmissionResult) SubmitCommentResponse {
	return SubmitCommentResponse{
		Success:   true,
		CommentID: r.ID,
		Rating:    r.Rating,
		Feedback:  r.Feedback,
		Published: r.Published,
		Message:   r.Message,
	}
}

// QuoteResponse is one entry of the quote feed.
type QuoteResponse struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Rating       int       `json:"rating"`
	Published    bool      `json:"published"`
	Timestamp    time.Time `json:"timestamp"`
	CommentCount int       `json:"commentCount"`
}

// CommentResponse is one entry of a quote's comment list.
type CommentResponse struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quoteId"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Published bool      `json:"published"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteListResponse is returned by GET /api/get-quotes.
type QuoteListResponse struct {
	Success bool            `json:"success"`
	Quotes  []QuoteResponse `json:"quotes"`
	Count   int             `json:"count"`
}

// CommentListResponse is returned by GET /api/get-comments.
type CommentListResponse struct {
	Success  bool              `json:"success"`
	Comments []CommentResponse `json:"comments"`
	Count    int               `json:"count"`
}

// NewQuoteListResponse converts domain quotes. The list is never null.
func NewQuoteListResponse(quotes []domain.Quote) QuoteListResponse {
	items := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, QuoteResponse{
			ID:           q.ID,
			Text:         q.Text,
			Rating:       q.Rating,
			Published:    q.Published,
			Timestamp:    q.CreatedAt.UTC(),
			CommentCount: q.CommentCount,
		})
	}

	return QuoteListResponse{Success: true, Quotes: items, Count: len(items)}
}

// NewCommentListResponse converts domain comments. The list is never null.
func NewCommentListResponse(comments []domain.Comment) CommentListResponse {
	items := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		items = append(items, CommentResponse{
			ID:        c.ID,
			QuoteID:   c.QuoteID,
			Text:      c.Text,
			Rating:    c.Rating,
			Published: c.Published,
			Timestamp: c.CreatedAt.UTC(),
		})
	}

	return CommentListResponse{Success: true, Comments: items, Count: len(items)}
}
