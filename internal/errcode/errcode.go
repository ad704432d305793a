// Package errcode defines the structured error codes shared by the
// skulk CLI and admin API. These codes let scripts and API clients
// handle specific failure conditions programmatically without parsing
// error messages, and they are part of the wire contract: the admin
// API surfaces them verbatim in its response envelope.
//
// # Code Ranges
//
//   - 0: success
//   - 1001-1009: account registry and lifecycle errors
//   - 1010-1019: session plumbing (clipboard) errors
//
// # Usage
//
// Create errors with specific codes:
//
//	return errcode.NotFound(id)                    // code 1002
//	return errcode.Newf(errcode.Validation, "name must be 1-128 characters")
//
// Extract codes from errors (works through wrapping):
//
//	if errcode.Is(err, errcode.VersionConflict) {
//	    // stale write, refetch and retry
//	}
//	status := errcode.HTTPStatus(err)
package errcode

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the CLI and the admin API.
const (
	// OK indicates success.
	OK = 0

	// Registry and lifecycle errors (1001-1009)
	Validation      = 1001 // Payload failed field validation
	NotFoundCode    = 1002 // Account id not present in the registry
	StoreCorrupt    = 1006 // accounts.json unreadable or malformed
	VersionConflict = 1007 // Optimistic concurrency check failed
	LaunchFailure   = 1008 // Browser spawn or termination failed

	// Session plumbing errors (1010-1019)
	ClipboardRead  = 1010 // Reading the session clipboard failed
	ClipboardWrite = 1011 // Writing the session clipboard failed
)

// Error carries a numeric code alongside the message and optional cause.
type Error struct {
	Code    int
	Message string
	Cause   error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new coded error.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new coded error with printf-style formatting.
func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code and message.
func Wrap(code int, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf wraps an existing error with a code and printf-style message.
func Wrapf(code int, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Code extracts the code from an error.
// Returns 0 for nil and 1 for errors that carry no code.
func Code(err error) int {
	if err == nil {
		return OK
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return 1
}

// Is checks whether an error carries a specific code.
func Is(err error, code int) bool {
	return Code(err) == code
}

// HTTPStatus maps an error's code to the HTTP status the admin API
// responds with. Uncoded errors map to 500.
func HTTPStatus(err error) int {
	switch Code(err) {
	case OK:
		return http.StatusOK
	case Validation:
		return http.StatusBadRequest
	case NotFoundCode:
		return http.StatusNotFound
	case VersionConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Convenience constructors for the common cases.

// NotFound returns an error for an unknown account id.
func NotFound(id string) *Error {
	return Newf(NotFoundCode, "account not found: %s", id)
}

// Conflict returns a version-conflict error naming both versions.
func Conflict(expected, actual int) *Error {
	return Newf(VersionConflict, "version conflict: expected %d, actual %d", expected, actual)
}
