package utils

import (
	"fmt"
	"net/http"
)

// Error kinds. Every application error carries exactly one; the HTTP
// status is derived from it in a single place (RespondAppError) instead
// of being picked at each call site.
const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindBusinessRule = "business_rule"
	KindInternal     = "internal"
)

// AppError represents an application error with a discriminated kind
type AppError struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to an HTTP status code
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBusinessRule:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError
func NewAppError(kind, code, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationFailedError creates a validation error (422)
func ValidationFailedError(code, message string) *AppError {
	return NewAppError(KindValidation, code, message, nil)
}

// NotFoundAppError creates a not-found error (404)
func NotFoundAppError(code, message string) *AppError {
	return NewAppError(KindNotFound, code, message, nil)
}

// ConflictAppError creates a conflict error (409)
func ConflictAppError(code, message string) *AppError {
	return NewAppError(KindConflict, code, message, nil)
}

// BusinessRuleError creates a business-rule error (400)
func BusinessRuleError(code, message string) *AppError {
	return NewAppError(KindBusinessRule, code, message, nil)
}

// InternalAppError creates an internal error (500)
func InternalAppError(message string, err error) *AppError {
	return NewAppError(KindInternal, "internal_error", message, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
