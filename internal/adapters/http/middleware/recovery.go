package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// Recovery answers a panicking handler with the generic 500 envelope and
// logs the panic with its stack. It belongs first in the chain.
//
// http.ErrAbortHandler is re-raised so net/http drops the connection.
func Recovery(fallback *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				recovered(c, fallback, r)
			}
		}()

		c.Next()
	}
}

func recovered(c *gin.Context, fallback *slog.Logger, r any) {
	if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
		panic(r)
	}

	ctx := c.Request.Context()
	traceID := dto.GetTraceID(c)

	logging.FromContextOr(ctx, fallback).LogAttrs(ctx, slog.LevelError, "panic recovered",
		slog.Any("panic", r),
		slog.String("method", c.Request.Method),
		slog.String("route", c.FullPath()),
		slog.String("trace_id", traceID),
		slog.String("stack", string(debug.Stack())),
	)

	c.Abort()

	// Too late for an envelope once the status line is out
	if c.Writer.Written() {
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrorCodeInternal, dto.MessageInternal).WithTraceID(traceID))
}
