// Package apperror defines the classified failures every operation returns.
// The HTTP boundary maps an Error to its status and message; anything that is
// not an *Error is reported as an unclassified 500.
package apperror

import (
	"errors"   // Error inspection
	"fmt"      // Error formatting
	"net/http" // HTTP status codes
	"strings"  // Message joining
)

// Kind tags the class of a failure
type Kind string

const (
	KindValidation      Kind = "validation"        // Bad input, 400
	KindAuth            Kind = "auth"              // Missing or insufficient identity
	KindNotFound        Kind = "not_found"         // Nothing matched, 404
	KindPersistence     Kind = "persistence"       // Write matched zero rows, 400
	KindTooManyRequests Kind = "too_many_requests" // Throttled, 429
	KindUnclassified    Kind = "unclassified"      // Anything else, 500
)

// UnclassifiedMessage is returned to clients for any failure without a kind
const UnclassifiedMessage = "Internal server error"

// Error is a classified failure carrying the status the client receives
type Error struct {
	Kind    Kind   // Failure class
	Status  int    // HTTP status sent to the client
	Message string // Client facing message
	Err     error  // Cause, logged only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err) // Message plus cause for logs
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// FieldError is one failing validation rule
type FieldError struct {
	Field   string // Wire name of the field
	Message string // Rule message
}

// Validation aggregates failing rules as "message: field, message: field" with status 400.
func Validation(fields []FieldError) *Error {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Message+": "+f.Field) // Keep declaration order
	}
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: strings.Join(parts, ", ")}
}

func BadRequest(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Persistence reports a write that affected zero rows.
func Persistence(msg string) *Error {
	return &Error{Kind: KindPersistence, Status: http.StatusBadRequest, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusForbidden, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msg}
}

// MissingIdentity is the auth failure for handlers reached without a caller.
func MissingIdentity(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusBadRequest, Message: msg}
}

func TooManyRequests(msg string) *Error {
	return &Error{Kind: KindTooManyRequests, Status: http.StatusTooManyRequests, Message: msg}
}

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(err error) *Error {
	return &Error{Kind: KindUnclassified, Status: http.StatusInternalServerError, Message: UnclassifiedMessage, Err: err}
}

// WithStatus returns a copy of e reported with a different status.
func WithStatus(e *Error, status int) *Error {
	c := *e           // Shallow copy, the original stays untouched
	c.Status = status // Override status only
	return &c
}

// From classifies any error: *Error values pass through, everything else becomes Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr // Already classified
	}
	return Internal(err)
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
