package common

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration for configuration-related errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeValidation for validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeParse for input parsing errors
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeAssessment for assessment-pipeline errors
	ErrorTypeAssessment ErrorType = "assessment"
	// ErrorTypeStorage for storage/persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeInternal for internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// EngineError represents a structured error with context
type EngineError struct {
	Type      ErrorType              `json:"type"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Cause     error                  `json:"-"`
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Type, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *EngineError) WithContext(key string, value interface{}) *EngineError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

// NewError creates a new EngineError
func NewError(errorType ErrorType, code, message string) *EngineError {
	return &EngineError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(code, message string) *EngineError {
	return NewError(ErrorTypeConfiguration, code, message)
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *EngineError {
	return NewError(ErrorTypeValidation, code, message)
}

// NewParseError creates a parse error
func NewParseError(code, message string) *EngineError {
	return NewError(ErrorTypeParse, code, message)
}

// NewAssessmentError creates an assessment error
func NewAssessmentError(code, message string) *EngineError {
	return NewError(ErrorTypeAssessment, code, message)
}

// NewStorageError creates a storage error
func NewStorageError(code, message string) *EngineError {
	return NewError(ErrorTypeStorage, code, message)
}

// NewInternalError creates an internal system error
func NewInternalError(code, message string) *EngineError {
	return NewError(ErrorTypeInternal, code, message)
}

// WrapError wraps an existing error with EngineError context
func WrapError(err error, errorType ErrorType, code, message string) *EngineError {
	return &EngineError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     err,
	}
}
