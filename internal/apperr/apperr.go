package apperr

import (
	"errors"
	"fmt"
)

// Kind enumerates the stable error categories the API reports upward.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAlreadySubmitted
	KindValidationFailed
	KindNoMatchingData
	KindForbidden
	KindUnauthenticated
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadySubmitted:
		return "already_submitted"
	case KindValidationFailed:
		return "validation_failed"
	case KindNoMatchingData:
		return "no_matching_data"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error carries a kind, a human-readable message and, for validation
// failures, the list of violated fields. Each variant carries only what it
// needs; callers branch on Kind, not on message text.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AlreadySubmitted(message string) *Error {
	return &Error{Kind: KindAlreadySubmitted, Message: message}
}

func Validation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidationFailed, Message: message, Fields: fields}
}

func NoMatchingData(message string) *Error {
	return &Error{Kind: KindNoMatchingData, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldsOf returns the violated-field list when err is a validation error.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
