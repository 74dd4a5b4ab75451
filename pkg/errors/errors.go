package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Interception errors
	ErrSessionActive    ErrorCode = "SESSION_ACTIVE"
	ErrNoSession        ErrorCode = "NO_SESSION"
	ErrTargetMissing    ErrorCode = "TARGET_MISSING"
	ErrStandInType      ErrorCode = "STANDIN_TYPE"
	ErrUnsupportedShape ErrorCode = "UNSUPPORTED_SHAPE"
	ErrInvalidMode      ErrorCode = "INVALID_MODE"

	// Primitive errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"

	// Plan errors
	ErrPlanLoad    ErrorCode = "PLAN_LOAD"
	ErrPlanInvalid ErrorCode = "PLAN_INVALID"
)

// WhatifError represents a structured error with code and details
type WhatifError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WhatifError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WhatifError) Unwrap() error {
	return e.Wrapped
}

// Is matches any WhatifError carrying the same code
func (e *WhatifError) Is(target error) bool {
	var targetErr *WhatifError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WhatifError with the given code and message
func New(code ErrorCode, message string) *WhatifError {
	return &WhatifError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WhatifError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WhatifError {
	return &WhatifError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WhatifError
func Wrap(err error, code ErrorCode, message string) *WhatifError {
	if err == nil {
		return nil
	}
	return &WhatifError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WhatifError {
	if err == nil {
		return nil
	}
	return &WhatifError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WhatifError) WithDetail(key string, value interface{}) *WhatifError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var whatifErr *WhatifError
	if errors.As(err, &whatifErr) {
		return whatifErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WhatifError
func GetErrorCode(err error) ErrorCode {
	var whatifErr *WhatifError
	if errors.As(err, &whatifErr) {
		return whatifErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WhatifError
func GetErrorDetails(err error) map[string]interface{} {
	var whatifErr *WhatifError
	if errors.As(err, &whatifErr) {
		return whatifErr.Details
	}
	return nil
}
