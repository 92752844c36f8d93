package shopcrawl

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// The fetch-outcome codes (ETIMEOUT, EFORBIDDEN, ERATELIMITED,
// EUNAVAILABLE, ESHORTBODY) classify why a page could not be used;
// the crawl engine recovers from all of them by marking the URL
// visited and moving on.
const (
	EINVALID     = "invalid"     // validation failed
	EINTERNAL    = "internal"    // internal or transport error
	ENOTFOUND    = "not_found"   // entity does not exist
	ETIMEOUT     = "timeout"     // request exceeded the deadline
	EFORBIDDEN   = "forbidden"   // HTTP 403, likely bot protection
	ERATELIMITED = "ratelimited" // HTTP 429, server is throttling us
	EUNAVAILABLE = "unavailable" // any other non-200 response
	ESHORTBODY   = "short_body"  // 200 with a suspiciously small body
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("shopcrawl error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the
// empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
