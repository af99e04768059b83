package services

import (
	"errors"
	"fmt"

	"github.com/upb/healthedu-backend/repositories"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeRateLimit    ErrorType = "rate_limit"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeMethod       ErrorType = "method_not_allowed"
	ErrorTypeInternal     ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail returns a copy of the error carrying an extra detail
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value

	return &DomainError{Type: e.Type, Message: e.Message, Err: e.Err, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Not Found Errors
	ErrNotFound        = NewDomainError(ErrorTypeNotFound, "resource not found", nil)
	ErrArticleNotFound = NewDomainError(ErrorTypeNotFound, "article not found", nil)
	ErrVideoNotFound   = NewDomainError(ErrorTypeNotFound, "video not found", nil)
	ErrTipNotFound     = NewDomainError(ErrorTypeNotFound, "tip not found", nil)
	ErrContactNotFound = NewDomainError(ErrorTypeNotFound, "contact message not found", nil)
	ErrUserNotFound    = NewDomainError(ErrorTypeNotFound, "user not found", nil)

	// Authorization Errors
	ErrUnauthorized       = NewDomainError(ErrorTypeUnauthorized, "authentication required", nil)
	ErrInvalidCredentials = NewDomainError(ErrorTypeUnauthorized, "Incorrect email or password", nil)
	ErrInvalidToken       = NewDomainError(ErrorTypeUnauthorized, "invalid authentication token", nil)
	ErrTokenExpired       = NewDomainError(ErrorTypeUnauthorized, "authentication token expired", nil)
	ErrAccountGone        = NewDomainError(ErrorTypeUnauthorized, "the user belonging to this token no longer exists", nil)

	// Permission Errors
	ErrForbidden = NewDomainError(ErrorTypeForbidden, "you do not have permission to perform this action", nil)

	// Rate Limit Errors
	ErrRateLimitExceeded = NewDomainError(ErrorTypeRateLimit, "too many requests, please try again later", nil)

	// Conflict Errors
	ErrDuplicateEmail = NewDomainError(ErrorTypeConflict, "email already exists", nil)
	ErrDuplicate      = NewDomainError(ErrorTypeConflict, "resource already exists", nil)

	// Internal Errors
	ErrDatabaseError = NewDomainError(ErrorTypeInternal, "database error", nil)
)

// FromRepositoryError lifts a repository sentinel into the domain taxonomy.
// notFound is used for repositories.ErrNotFound so callers can name the resource.
// Anything unrecognized becomes an internal error wrapping the cause.
func FromRepositoryError(err error, notFound *DomainError) error {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		if notFound == nil {
			notFound = ErrNotFound
		}
		return NewDomainError(ErrorTypeNotFound, notFound.Message, err)
	case errors.Is(err, repositories.ErrInvalidData):
		return NewDomainError(ErrorTypeValidation, "record rejected by storage constraints", err)
	case errors.Is(err, repositories.ErrDuplicate):
		return NewDomainError(ErrorTypeConflict, ErrDuplicate.Message, err)
	default:
		return WrapInternal(ErrDatabaseError.Message, err)
	}
}

// Error type checking helper functions

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnauthorized
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// GetErrorMessage returns the client-facing message of a domain error
func GetErrorMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return ""
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
