package govtrack

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a GovTrack failure
type ErrorKind string

const (
	KindInvalidQuery      ErrorKind = "invalid_query"
	KindQuery             ErrorKind = "query"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindIncompleteData    ErrorKind = "incomplete_data"
	KindCacheLoad         ErrorKind = "cache_load"
)

// Error is the single error type returned by the client. Match a kind with
// errors.Is against one of the Err* sentinels.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Sentinels for errors.Is
var (
	ErrInvalidQuery      = &Error{Kind: KindInvalidQuery}
	ErrQuery             = &Error{Kind: KindQuery}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrIncompleteData    = &Error{Kind: KindIncompleteData}
	ErrCacheLoad         = &Error{Kind: KindCacheLoad}
)

func newError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("govtrack: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("govtrack: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error kinds.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the kind of err, or "" if err is not a GovTrack error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
