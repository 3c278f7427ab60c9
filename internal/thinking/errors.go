// Package thinking provides the reasoning decision engine.
package thinking

import "net/http"

// ErrorCode represents the type of thinking processing error.
type ErrorCode string

// Error codes for thinking processing.
const (
	// ErrInvalidBody indicates the request body is not valid JSON.
	ErrInvalidBody ErrorCode = "INVALID_BODY"

	// ErrUnknownEffort indicates an effort value outside low/medium/high.
	// Example: reasoning.effort = "ultra"
	ErrUnknownEffort ErrorCode = "UNKNOWN_EFFORT"

	// ErrBudgetOutOfRange indicates the derived budget cannot fit the request.
	// Example: a Claude budget of 1024 with max_tokens 512
	ErrBudgetOutOfRange ErrorCode = "BUDGET_OUT_OF_RANGE"

	// ErrProviderNotRegistered indicates no formatter exists for the provider.
	ErrProviderNotRegistered ErrorCode = "PROVIDER_NOT_REGISTERED"
)

// ThinkingError represents an error that occurred during thinking processing.
//
// This error type provides structured information about the error, including:
//   - Code: A machine-readable error code for programmatic handling
//   - Message: A human-readable description of the error
//   - Model: The model name related to the error (optional)
type ThinkingError struct {
	// Code is the machine-readable error code
	Code ErrorCode
	// Message is the human-readable error description.
	// Should be lowercase, no trailing period, with context if applicable.
	Message string
	// Model is the model name related to this error (optional)
	Model string
}

// Error implements the error interface.
// Returns the message directly without code prefix.
func (e *ThinkingError) Error() string {
	return e.Message
}

// NewThinkingError creates a new ThinkingError with the given code and message.
func NewThinkingError(code ErrorCode, message string) *ThinkingError {
	return &ThinkingError{
		Code:    code,
		Message: message,
	}
}

// NewThinkingErrorWithModel creates a new ThinkingError with model context.
func NewThinkingErrorWithModel(code ErrorCode, message, model string) *ThinkingError {
	return &ThinkingError{
		Code:    code,
		Message: message,
		Model:   model,
	}
}

// StatusCode implements a portable status code interface for HTTP hosts.
func (e *ThinkingError) StatusCode() int {
	return http.StatusBadRequest
}
