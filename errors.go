package erdkit

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .erdkit.yaml is found.
	ErrConfigNotFound = errors.New("erdkit: no .erdkit.yaml found")
)

// ErrorKind classifies a conversion failure.
type ErrorKind string

// Conversion failure kinds.
const (
	// UnsupportedFormat: the file-name extension is not recognized.
	UnsupportedFormat ErrorKind = "unsupported_format"
	// EmptyInput: the source content is empty or whitespace-only.
	EmptyInput ErrorKind = "empty_input"
	// MalformedSource: the source text could not be parsed.
	MalformedSource ErrorKind = "malformed_source"
	// NoDefinitionsFound: parsing succeeded but yielded no models or enums.
	NoDefinitionsFound ErrorKind = "no_definitions_found"
	// ConversionInternal: the SQL/JSON normalization bridge produced DSL
	// text that failed to re-parse.
	ConversionInternal ErrorKind = "conversion_internal"
)

// ConversionError is the typed failure returned by Convert. Message is safe
// to surface verbatim to an end user.
type ConversionError struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// convErr builds a ConversionError with a formatted message.
func convErr(kind ErrorKind, format string, args ...any) *ConversionError {
	return &ConversionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapErr builds a ConversionError around an underlying cause.
func wrapErr(kind ErrorKind, err error, format string, args ...any) *ConversionError {
	return &ConversionError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the ErrorKind from an error returned by Convert.
// Returns ConversionInternal for unexpected error values.
func KindOf(err error) ErrorKind {
	var cerr *ConversionError
	if errors.As(err, &cerr) {
		return cerr.Kind
	}

	return ConversionInternal
}
