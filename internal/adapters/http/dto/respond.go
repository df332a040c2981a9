package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Validation messages are passed through to the client. Every other failure
// gets the generic internal message so storage details never leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		code := string(validationErr.Reason)
		if code == "" {
			code = ErrorCodeBadRequest
		}

		return http.StatusBadRequest, NewErrorResponse(code, validationErr.Message).
			WithField(validationErr.Field)

	case domain.IsValidation(err):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, err.Error())

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, MessageNotFound)

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, MessageInternal)
	}
}

// HandleError writes the error response for err. Internal errors are
// logged with full details; the client only sees the generic message.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.WithTraceID(GetTraceID(c))

	if status == http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithCode writes an error response with a specific error code.
// Use this for adapter-level errors (e.g., malformed JSON) that don't
// originate from domain errors.
func RespondWithCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// AbortWithCode aborts the request chain with a specific error code.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
