package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/app"
)

// ContentHandler handles the public quote and comment endpoints.
type ContentHandler struct {
	moderation *app.ModerationService
	feed       *app.FeedService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(moderation *app.ModerationService, feed *app.FeedService) *ContentHandler {
	return &ContentHandler{
		moderation: moderation,
		feed:       feed,
	}
}

// SubmitQuote handles POST /api/submit-quote.
// The quote is rated and stored whether or not it gets published.
//
// @Summary Submit a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.SubmitQuoteRequest true "Quote text"
// @Success 200 {object} dto.SubmitQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/submit-quote [post]
func (h *ContentHandler) SubmitQuote(c *gin.Context) {
	var req dto.SubmitQuoteRequest
	if !bindBody(c, &req) {
		return
	}

	result, err := h.moderation.SubmitQuote(c.Request.Context(), req.ToSubmission())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitQuoteResponse(result))
}

// SubmitComment handles POST /api/submit-comment.
//
// @Summary Submit a comment on a quote
// @Tags comments
// @Accept json
// @Produce json
// @Param body body dto.SubmitCommentRequest true "Quote id and comment text"
// @Success 200 {object} dto.SubmitCommentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/submit-comment [post]
func (h *ContentHandler) SubmitComment(c *gin.Context) {
	var req dto.SubmitCommentRequest
	if !bindBody(c, &req) {
		return
	}

	result, err := h.moderation.SubmitComment(c.Request.Context(), req.ToSubmission())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitCommentResponse(result))
}

// GetQuotes handles GET /api/get-quotes.
// Returns every published quote, newest first, with live comment counts.
//
// @Summary List published quotes
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/get-quotes [get]
func (h *ContentHandler) GetQuotes(c *gin.Context) {
	quotes, err := h.feed.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes))
}

// GetComments handles GET /api/get-comments?quoteId=.
//
// @Summary List published comments on a quote
// @Tags comments
// @Produce json
// @Param quoteId query string true "Quote ID"
// @Success 200 {object} dto.CommentListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/get-comments [get]
func (h *ContentHandler) GetComments(c *gin.Context) {
	var query dto.CommentsQuery
	if err := dto.BindQuery(c, &query); err != nil {
		var qe *dto.QueryError
		if !errors.As(err, &qe) {
			dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
			return
		}

		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, qe.Message).
			WithField(qe.Field).
			WithTraceID(dto.GetTraceID(c)))

		return
	}

	comments, err := h.feed.ListComments(c.Request.Context(), query.QuoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentListResponse(comments))
}

// Route is one content endpoint.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Routes lists the content endpoints, relative to the API group.
func (h *ContentHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/submit-quote", Handler: h.SubmitQuote},
		{Method: http.MethodPost, Path: "/submit-comment", Handler: h.SubmitComment},
		{Method: http.MethodGet, Path: "/get-quotes", Handler: h.GetQuotes},
		{Method: http.MethodGet, Path: "/get-comments", Handler: h.GetComments},
	}
}

// RegisterRoutes registers the content endpoints on the given group, each
// with CORS headers and an OPTIONS preflight route.
func (h *ContentHandler) RegisterRoutes(rg gin.IRoutes) {
	for _, r := range h.Routes() {
		cors := middleware.CORS(r.Method)

		rg.Handle(r.Method, r.Path, cors, r.Handler)
		rg.OPTIONS(r.Path, cors)
	}
}

// bindBody decodes the JSON body, writing the error response on failure.
func bindBody(c *gin.Context, v any) bool {
	err := dto.BindJSONBody(c, v)
	if err == nil {
		return true
	}

	if errors.Is(err, dto.ErrBodyTooLarge) {
		dto.RespondWithCode(c, dto.ErrorCodePayloadTooLarge, dto.MessageBodyTooLarge)
		return false
	}

	dto.RespondWithCode(c, dto.ErrorCodeBadRequest, dto.MessageInvalidJSON)

	return false
}
