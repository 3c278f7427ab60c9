package transformer

import "net/http"

// ErrorCode is a machine-readable transformer error code.
type ErrorCode string

const (
	// ErrInvalidBody indicates the request body is not a JSON object. Nothing is rewritten.
	ErrInvalidBody ErrorCode = "INVALID_BODY"
)

// Error is returned alongside the original body when a request cannot be transformed.
type Error struct {
	// Code is the machine-readable error code
	Code ErrorCode
	// Message is the human-readable error description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode implements a portable status code interface for HTTP hosts.
func (e *Error) StatusCode() int {
	return http.StatusBadRequest
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}
