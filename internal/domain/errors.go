package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Pipeline specific errors
	ErrFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
	ErrRateLimited       ErrorCode = "RATE_LIMITED"
	ErrPaymentRequired   ErrorCode = "PAYMENT_REQUIRED"
	ErrCompletionFailed  ErrorCode = "COMPLETION_FAILED"
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewFetchError(message string, err error) *DomainError {
	return NewError(ErrFetchFailed, message, err)
}

func NewExtractionError(message string) *DomainError {
	return NewError(ErrExtractionFailed, message, nil)
}

func NewRateLimitError(err error) *DomainError {
	return NewError(ErrRateLimited, "Rate limit exceeded. Please try again later.", err)
}

func NewPaymentRequiredError(err error) *DomainError {
	return NewError(ErrPaymentRequired, "Payment required by the completion service.", err)
}

func NewCompletionError(err error) *DomainError {
	return NewError(ErrCompletionFailed, "Failed to get completion from AI service", err)
}

func NewMalformedResponseError(err error) *DomainError {
	return NewError(ErrMalformedResponse, "Invalid JSON response from AI", err)
}
