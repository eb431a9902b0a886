package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeIllegalState       = "ILLEGAL_STATE"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError of the same kind.
// Messages may differ; the code identifies the kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// WithMessage returns a copy of domainErr carrying a specific message
func WithMessage(domainErr *DomainError, message string) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: message,
	}
}

// Predefined domain errors
var (
	ErrResourceNotFound   = NewDomainError(CodeResourceNotFound, "resource not found")
	ErrEmailAlreadyExists = NewDomainError(CodeEmailAlreadyExists, "Email already registered")
	ErrUnauthorized       = NewDomainError(CodeUnauthorized, "unauthorized")
	ErrForbidden          = NewDomainError(CodeForbidden, "access denied")
	ErrEmailNotVerified   = NewDomainError(CodeEmailNotVerified, "Please verify your email before logging in")
	ErrInvalidToken       = NewDomainError(CodeInvalidToken, "invalid or expired token")
	ErrIllegalState       = NewDomainError(CodeIllegalState, "operation not allowed in current state")
	ErrInvalidInput       = NewDomainError(CodeInvalidInput, "invalid input")

	ErrInternal           = NewDomainError(CodeInternal, "internal server error")
	ErrServiceUnavailable = NewDomainError(CodeServiceUnavailable, "service unavailable")
)

// NotFound builds a RESOURCE_NOT_FOUND error for a named resource
func NotFound(resource string) *DomainError {
	return WithMessage(ErrResourceNotFound, resource+" not found")
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// GetErrorCode returns the domain code or INTERNAL_ERROR
func GetErrorCode(err error) string {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest

	case CodeUnauthorized, CodeInvalidToken:
		return http.StatusUnauthorized

	case CodeForbidden, CodeEmailNotVerified:
		return http.StatusForbidden

	case CodeResourceNotFound:
		return http.StatusNotFound

	case CodeEmailAlreadyExists, CodeIllegalState:
		return http.StatusConflict

	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		// wrapped causes stay in the logs
		return domainErr.Message
	}

	return err.Error()
}
