package core

import (
	"errors"
	"fmt"
)

// ErrEmailRequired is returned when an enrichment request carries no email
var ErrEmailRequired = errors.New("email is required")

// ProviderTransportError represents a non-success HTTP status from the
// completion provider. Details carries the provider's error body.
type ProviderTransportError struct {
	StatusCode int
	Details    string
}

func (e *ProviderTransportError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Details)
}

// ParseErrorKind classifies completion parse failures
type ParseErrorKind int

const (
	// ParseEmptyCompletion means the provider envelope carried no completion text
	ParseEmptyCompletion ParseErrorKind = iota
	// ParseMalformedJSON means the completion text was not a valid JSON object
	ParseMalformedJSON
)

// ParseError represents a failure to turn the provider's response into a
// record. Raw carries the full provider payload for diagnosis.
type ParseError struct {
	Kind    ParseErrorKind
	Details string
	Raw     []byte
}

func (e *ParseError) Error() string {
	return e.Details
}
