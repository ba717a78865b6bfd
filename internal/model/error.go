package model

import (
	"errors"
	"fmt"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var (
	// ErrOutOfRange is matched by every ValidationError.
	ErrOutOfRange = errors.New("address count out of range")
	// ErrEngineFailure is returned when the wallet engine produced no or unusable data.
	ErrEngineFailure = errors.New("wallet engine failure")
	// ErrRenderFailed is returned when the engine could not render a PDF.
	ErrRenderFailed = errors.New("pdf render failed")
	// ErrIOFailed is returned when an export file could not be written.
	ErrIOFailed = errors.New("export write failed")
	// ErrEmptyBatch is returned by operations that need at least one record.
	ErrEmptyBatch = errors.New("wallet batch is empty")
)

// ValidationError reports a generation parameter outside its domain.
// Counts are not secret, so the value is part of the message.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d is out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ValidationError) Unwrap() error {
	return ErrOutOfRange
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseError reports a malformed engine response. It references positions
// and field names only, never values.
type ParseError struct {
	Index  int // element position, -1 for the payload as a whole
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return "malformed engine response: " + e.Reason
	}
	if e.Field == "" {
		return fmt.Sprintf("malformed engine response: element %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed engine response: element %d: field %q %s", e.Index, e.Field, e.Reason)
}

// Unwrap makes a ParseError match ErrEngineFailure for user display.
func (e *ParseError) Unwrap() error {
	return ErrEngineFailure
}

// IsParseError checks if error is a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
