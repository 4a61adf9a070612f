// Package apperr defines the closed error taxonomy shared by the service
// and repository layers. Handlers map kinds to HTTP status codes; callers
// inspect kinds with KindOf or Is instead of matching message strings.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindInsufficient Kind = "insufficient_points"
	KindNotFound     Kind = "not_found"
	KindDependency   Kind = "dependency"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Insufficient(msg string) *Error {
	return &Error{Kind: KindInsufficient, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Dependency wraps a failure of an external collaborator (detection
// service, locker device) so it surfaces distinctly from domain conflicts.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf returns the kind carried by err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
