// Package apperr defines the typed failure kinds returned by the service
// layer. The kinds are transport-agnostic input classifications; handlers
// translate them into HTTP status codes.
package apperr

import "errors"

// Kind classifies a service failure.
type Kind int

const (
	// KindUnknown marks errors that did not originate from input
	// classification (DB faults, bugs). Handlers map it to 500.
	KindUnknown Kind = iota
	// KindValidation: missing/malformed required field, invalid date,
	// non-numeric unit.
	KindValidation
	// KindAuthorization: variant not in the caller's allowed set.
	KindAuthorization
	// KindConflict: duplicate target for the same user/week/variant.
	KindConflict
	// KindNotFound: the referenced record does not exist.
	KindNotFound
)

// Error carries a classification kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Message: msg} }
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Message: msg} }

// KindOf returns the kind of err, or KindUnknown when err does not wrap an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
