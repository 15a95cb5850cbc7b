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
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Content generation errors
	ErrGenerationFailed    ErrorCode = "GENERATION_FAILED"
	ErrUnreadableDocument  ErrorCode = "UNREADABLE_DOCUMENT"
	ErrUnsupportedDocument ErrorCode = "UNSUPPORTED_DOCUMENT"
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

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

// NewGenerationFailedError wraps any failure of the underlying text
// generation service. Callers do not distinguish sub-kinds (timeout,
// auth, rate limit); they all surface as this one code.
func NewGenerationFailedError(err error) *DomainError {
	return NewError(ErrGenerationFailed, "Text generation service failed", err)
}

func NewUnreadableDocumentError(message string) *DomainError {
	return NewError(ErrUnreadableDocument, message, nil)
}

func NewUnsupportedDocumentError(message string) *DomainError {
	return NewError(ErrUnsupportedDocument, message, nil)
}
