// Package domain holds the content model and the moderation rules. Its
// errors describe failures in business terms. Adapters translate them into
// responses and never let transport details leak in here.
package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. Every typed error below reports one.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names a missing entity, such as the quote a comment targets
// or the configured model.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Is reports ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError returns a *NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationReason classifies why a submission was rejected before rating.
// The values double as API error codes.
type ValidationReason string

const (
	// ReasonMissingField means the field was absent or not a string.
	ReasonMissingField ValidationReason = "MISSING_FIELD"

	// ReasonEmptyContent means the field was blank after trimming.
	ReasonEmptyContent ValidationReason = "EMPTY_CONTENT"

	// ReasonTooLong means the trimmed text exceeded the kind's limit.
	ReasonTooLong ValidationReason = "TOO_LONG"
)

// ValidationError rejects a submission. Message is shown to the submitter
// as is.
type ValidationError struct {
	Field   string
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Is reports ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError returns a *ValidationError.
func NewValidationError(field string, reason ValidationReason, message string) error {
	return &ValidationError{Field: field, Reason: reason, Message: message}
}

// UnavailableError reports a dependency that could not serve the call. Err,
// when set, is the underlying failure and stays reachable through
// errors.Is and errors.As.
type UnavailableError struct {
	Service string
	Reason  string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return e.Service + " unavailable"
	}

	return e.Service + " unavailable: " + e.Reason
}

// Is reports ErrUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

func (e *UnavailableError) Unwrap() error { return e.Err }

// NewUnavailableError returns an *UnavailableError without a cause.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// WrapUnavailable records err as the cause. An empty reason uses err's text.
func WrapUnavailable(service, reason string, err error) error {
	if reason == "" && err != nil {
		reason = err.Error()
	}

	return &UnavailableError{Service: service, Reason: reason, Err: err}
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is or wraps ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsUnavailable reports whether err is or wraps ErrUnavailable.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
