package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure so transports and the façade can react without string matching.
type ErrorCode string

const (
	ErrCodeInvalid       ErrorCode = "INVALID"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalidStatus ErrorCode = "INVALID_STATUS"
	ErrCodeDecode        ErrorCode = "DECODE"
	ErrCodeStorage       ErrorCode = "STORAGE"
	ErrCodeInternal      ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var (
	ErrEmptyTitle    = NewError(ErrCodeInvalid, "title must not be empty")
	ErrBoardNotEmpty = NewError(ErrCodeInvalid, "board is not empty")
	ErrTaskNotFound  = NewError(ErrCodeNotFound, "task not found")
	ErrInvalidStatus = NewError(ErrCodeInvalidStatus, "invalid status")
)

// NotFound reports a missing task id.
func NotFound(id int) *Error {
	return WrapError(ErrCodeNotFound, fmt.Sprintf("task %d not found", id), ErrTaskNotFound)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
