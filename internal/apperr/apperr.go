// Package apperr defines the closed set of failure kinds every operation
// resolves to before it reaches a client.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindReferential
	KindConflict
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindReferential:
		return "referential"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// DefaultMessage is the client-facing text used when an error carries none.
func (k Kind) DefaultMessage() string {
	switch k {
	case KindValidation:
		return "field(s) required"
	case KindReferential:
		return "referenced entity does not exist"
	case KindConflict:
		return "already exists"
	case KindNotFound:
		return "not found"
	case KindUnavailable:
		return "service unavailable"
	default:
		return "internal error"
	}
}

type Error struct {
	Kind    Kind
	Message string
	// Fields lists missing request fields for KindValidation.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Text returns the client-facing message.
func (e *Error) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.DefaultMessage()
}

func Validation(fields ...string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Referential(msg string, err error) *Error {
	return &Error{Kind: KindReferential, Message: msg, Err: err}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// As returns the classified error in err's chain. Unclassified errors are
// wrapped as KindInternal so callers always get a value.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	return As(err).Kind
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Reword replaces the message of a classified error of the given kind,
// keeping the cause. Any other error is returned unchanged.
func Reword(err error, kind Kind, msg string) error {
	var e *Error
	if !errors.As(err, &e) || e.Kind != kind {
		return err
	}
	return &Error{Kind: e.Kind, Message: msg, Fields: e.Fields, Err: e.Err}
}

// Recast converts a classified error of kind from into kind to with a new
// message.
func Recast(err error, from, to Kind, msg string) error {
	var e *Error
	if !errors.As(err, &e) || e.Kind != from {
		return err
	}
	return &Error{Kind: to, Message: msg, Err: e.Err}
}
