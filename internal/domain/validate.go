package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Field names reported in validation errors.
const (
	FieldText    = "text"
	FieldQuoteID = "quoteId"
)

// MaxQuoteIDLength bounds quote references on submit and read alike, so any
// stored comment can be listed again. Stores size their columns to it.
const MaxQuoteIDLength = 128

// ValidateContent checks submitted text for the given kind and returns it
// trimmed. A nil raw value means the field was absent or not a string.
//
// Length is counted in code points after NFC normalization, so a composed
// and a decomposed accent count the same. The returned text is normalized.
func ValidateContent(kind ContentKind, raw *string) (string, error) {
	label := kind.Label()

	if raw == nil {
		return "", NewValidationError(FieldText, ReasonMissingField, label+" text is required")
	}

	text := norm.NFC.String(trim(*raw))
	if text == "" {
		return "", NewValidationError(FieldText, ReasonEmptyContent, label+" text cannot be empty")
	}

	if limit := kind.MaxLength(); utf8.RuneCountInString(text) > limit {
		return "", NewValidationError(FieldText, ReasonTooLong,
			fmt.Sprintf("%s text cannot exceed %d characters", label, limit))
	}

	return text, nil
}

// ValidateQuoteID checks the quote reference on a comment submission or a
// comment listing. The quote itself need not exist.
func ValidateQuoteID(raw *string) (string, error) {
	if raw == nil {
		return "", NewValidationError(FieldQuoteID, ReasonMissingField, "Quote ID is required")
	}

	id := trim(*raw)
	if id == "" {
		return "", NewValidationError(FieldQuoteID, ReasonMissingField, "Quote ID is required")
	}

	if utf8.RuneCountInString(id) > MaxQuoteIDLength {
		return "", NewValidationError(FieldQuoteID, ReasonTooLong,
			fmt.Sprintf("Quote ID cannot exceed %d characters", MaxQuoteIDLength))
	}

	return id, nil
}

// trim drops surrounding whitespace and byte order marks.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })
}
