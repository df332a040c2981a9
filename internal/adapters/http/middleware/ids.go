// Package middleware holds the gin middleware chain in front of the API.
package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// The request ID names one HTTP exchange. The correlation ID follows a
// submission through the service and into the rating call.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// Gin context keys. They double as log attribute names.
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIncomingIDLength caps caller-supplied IDs before they reach logs.
const maxIncomingIDLength = 128

type ctxKey string

// idKind describes one propagated ID.
type idKind struct {
	header string
	key    string
}

var (
	requestIDKind     = idKind{header: HeaderRequestID, key: ContextKeyRequestID}
	correlationIDKind = idKind{header: HeaderCorrelationID, key: ContextKeyCorrelationID}
)

// RequestID accepts a well-formed X-Request-ID or mints a UUID, echoes it on
// the response, and attaches it to the request context and its logger.
func RequestID() gin.HandlerFunc {
	return requestIDKind.middleware()
}

// CorrelationID does the same for X-Correlation-ID. A caller without one
// starts a new correlation here.
func CorrelationID() gin.HandlerFunc {
	return correlationIDKind.middleware()
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	return requestIDKind.from(ctx)
}

// CorrelationIDFromContext returns the correlation ID, or "" outside a request.
func CorrelationIDFromContext(ctx context.Context) string {
	return correlationIDKind.from(ctx)
}

// ContextWithRequestID attaches a request ID without touching the logger.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return requestIDKind.with(ctx, id)
}

// ContextWithCorrelationID attaches a correlation ID without touching the logger.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return correlationIDKind.with(ctx, id)
}

func (k idKind) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(k.header)
		if !validIncomingID(id) {
			id = uuid.NewString()
		}

		c.Set(k.key, id)
		c.Header(k.header, id)

		ctx := k.with(c.Request.Context(), id)
		ctx = logging.WithAttrs(ctx, slog.String(k.key, id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (k idKind) with(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey(k.key), id)
}

func (k idKind) from(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(ctxKey(k.key)).(string)

	return id
}

// validIncomingID accepts non-empty printable ASCII up to maxIncomingIDLength.
func validIncomingID(id string) bool {
	if id == "" || len(id) > maxIncomingIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}
