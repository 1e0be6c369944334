package models

import "errors"

// ErrorKind is the machine-readable classification carried by every failure
// the quiz core reports. Handlers map kinds to HTTP statuses.
type ErrorKind string

const (
	KindInvalidRequest  ErrorKind = "invalid_request"
	KindConfiguration   ErrorKind = "configuration"
	KindUpstream        ErrorKind = "upstream"
	KindGenerationParse ErrorKind = "generation_parse"
	KindNotFound        ErrorKind = "not_found"
	KindForbidden       ErrorKind = "forbidden"
	KindInvalidState    ErrorKind = "invalid_state"
)

// Error is the tagged failure type used across the quiz core. Snippet is only
// set for generation-parse failures and carries a truncated sample of the raw
// provider output for diagnostics.
type Error struct {
	Kind    ErrorKind
	Message string
	Snippet string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewInvalidRequest(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

func NewConfiguration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

func NewUpstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func NewGenerationParse(msg, snippet string) *Error {
	return &Error{Kind: KindGenerationParse, Message: msg, Snippet: snippet}
}

func NewNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewForbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NewInvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

// KindOf extracts the ErrorKind from err, or empty string when err is not a
// tagged quiz error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// SnippetOf returns the diagnostic snippet carried by err, if any.
func SnippetOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Snippet
	}
	return ""
}
