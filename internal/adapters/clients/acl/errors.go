package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// Status names from the model API's error envelope.
const (
	statusInvalidArgument   = "INVALID_ARGUMENT"
	statusUnauthenticated   = "UNAUTHENTICATED"
	statusPermissionDenied  = "PERMISSION_DENIED"
	statusNotFound          = "NOT_FOUND"
	statusResourceExhausted = "RESOURCE_EXHAUSTED"
	statusUnavailable       = "UNAVAILABLE"
)

// maxErrorBody caps how much of a failed reply is read for the envelope.
const maxErrorBody = 64 << 10

// statusForCode names bare HTTP failures in the envelope's vocabulary so a
// single table maps both.
var statusForCode = map[int]string{
	http.StatusBadRequest:         statusInvalidArgument,
	http.StatusUnauthorized:       statusUnauthenticated,
	http.StatusForbidden:          statusPermissionDenied,
	http.StatusNotFound:           statusNotFound,
	http.StatusTooManyRequests:    statusResourceExhausted,
	http.StatusServiceUnavailable: statusUnavailable,
}

// errorEnvelope is the body of a failed call:
//
//	{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// readEnvelope returns the envelope's status and message. Bodies that are
// not an envelope yield empty strings.
func readEnvelope(body io.Reader) (status, message string) {
	if body == nil {
		return "", ""
	}

	var env errorEnvelope
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&env); err != nil {
		return "", ""
	}

	return env.Error.Status, env.Error.Message
}

// statusError maps a non-2xx reply. A missing model is the only failure
// reported as not found.
func (o *GeminiOracle) statusError(op string, resp *http.Response) error {
	status, message := readEnvelope(resp.Body)
	if status == "" {
		status = statusForCode[resp.StatusCode]
	}

	switch status {
	case statusNotFound:
		return domain.NewNotFoundError("model", o.model)
	case statusUnauthenticated, statusPermissionDenied:
		return domain.NewUnavailableError(o.name, withDetail("credentials rejected", message))
	case statusResourceExhausted:
		return domain.NewUnavailableError(o.name, "rate limit exceeded")
	case statusInvalidArgument:
		return domain.NewUnavailableError(o.name, withDetail("request rejected", message))
	}

	if message == "" {
		message = fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
		if status == statusUnavailable {
			message = "service temporarily unavailable"
		}
	}

	return domain.NewUnavailableError(o.name, message)
}

// transportError maps a call that produced no reply. The client error stays
// in the chain.
func (o *GeminiOracle) transportError(op string, err error) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.WrapUnavailable(o.name, "circuit breaker open during "+op, err)
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.WrapUnavailable(o.name, "max retries exceeded during "+op, err)
	default:
		return domain.WrapUnavailable(o.name, fmt.Sprintf("%s failed: %v", op, err), err)
	}
}

func withDetail(reason, detail string) string {
	if detail == "" {
		return reason
	}

	return reason + ": " + detail
}
