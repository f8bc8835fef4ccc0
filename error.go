package eucatalog

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Every code is fatal to a build; callers add context with %w wrapping and
// the code survives unwrapping.
const (
	ENETWORK     = "network"     // fetch failure or non-2xx response
	EPARSE       = "parse"       // required selector or field missing
	EDATA        = "data"        // duplicate key or dangling relation
	EIO          = "io"          // file read or write failure
	ECONVERSION  = "conversion"  // image decode, canonicalize or trace failure
	ECONCURRENCY = "concurrency" // worker task crashed
	EINVALID     = "invalid"     // invalid configuration or argument
	ENOTFOUND    = "not_found"   // lookup miss
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("eucatalog error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return an empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return an empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
