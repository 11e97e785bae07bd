package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the small taxonomy every route shares.
type Kind int

const (
	// KindInternal covers unexpected store failures; detail stays server-side.
	KindInternal Kind = iota
	// KindUnauthenticated covers missing/expired sessions and API keys.
	KindUnauthenticated
	// KindForbidden covers locked accounts and denied resources.
	KindForbidden
	// KindNotFound covers missing referenced rows.
	KindNotFound
	// KindConflict covers unique-constraint violations.
	KindConflict
	// KindInvalid covers malformed or incomplete input.
	KindInvalid
)

// Error is a tagged error carrying a client-safe message.
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

// E builds a tagged error with a client-facing message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a tagged error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Shared sentinels used across modules.
var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = E(KindNotFound, "not found")
	// ErrUnknownEmail indicates no principal exists for the email.
	ErrUnknownEmail = E(KindUnauthenticated, "Invalid Email")
	// ErrInvalidPassword indicates a hash mismatch.
	ErrInvalidPassword = E(KindUnauthenticated, "Invalid Password")
	// ErrAccountLocked indicates an administratively locked account.
	ErrAccountLocked = E(KindForbidden, "Account is locked. Contact administrator.")
)

// StatusCode maps a Kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to echo to the client. Internal
// errors collapse to a generic string; detail belongs in the error log.
func ClientMessage(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind != KindInternal {
		return tagged.Message
	}
	return "Internal server error"
}

// KindOf extracts the Kind, defaulting to KindInternal.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindInternal
}
