// Package apperr defines the application error taxonomy.
//
// Every failure that crosses an operation boundary is classified into one of
// a small set of kinds so that the HTTP layer can map it to a status code in
// exactly one place. Business-rule failures (Forbidden, Conflict, and so on)
// are detected before any mutation is applied; storage failures are wrapped
// as Unavailable with a safe, user-presentable message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// Unknown is the zero Kind; treated the same as Unavailable at the edge.
	Unknown Kind = iota

	// InvalidInput: missing or malformed request fields.
	InvalidInput

	// Unauthenticated: no valid session or token.
	Unauthenticated

	// Forbidden: authenticated, but not permitted for the aggregate's
	// current state.
	Forbidden

	// NotFound: aggregate or referenced user absent.
	NotFound

	// Conflict: the operation would duplicate an entry in a set
	// (join request already filed, user already assigned, ...).
	Conflict

	// InvalidState: a required set-membership precondition does not hold
	// (target not in join requests, target not a group member, ...).
	InvalidState

	// Unavailable: the persistence collaborator failed; details are logged,
	// never surfaced.
	Unavailable
)

// Error is a classified application error with a user-presentable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error with a user-presentable message.
func E(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Ef builds a classified error with a formatted message.
func Ef(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error, keeping it available via Unwrap for
// logging while msg is what callers may show to users.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Storage wraps a persistence-layer failure. The underlying error is kept
// for logs; the message shown to users stays generic.
func Storage(err error) error {
	return &Error{Kind: Unavailable, Msg: "a storage error occurred", Err: err}
}

// KindOf reports the Kind of err, or Unknown if err is not classified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unknown
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-presentable message for err. Unclassified errors
// get a generic message so internal detail never leaks.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != Unavailable && ae.Kind != Unknown {
		return ae.Msg
	}
	return "Something went wrong. Please try again."
}
