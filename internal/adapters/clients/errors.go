// Package clients is the outbound HTTP layer: retries, a circuit breaker,
// ID and trace propagation, and per-call metrics for a single downstream.
//
// Errors from this package mean no usable response arrived. Callers translate
// them, and any non-2xx response, into domain errors.
package clients

import "errors"

var (
	// ErrCircuitOpen means the call was refused without touching the network.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last transport error once every
	// attempt has failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrBodyNotReplayable is returned when a retry is needed but the request
	// body has no GetBody.
	ErrBodyNotReplayable = errors.New("request body cannot be replayed")
)
