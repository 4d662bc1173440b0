package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound         = NewNotFoundError("resource", "resource not found")
	ErrConflict         = NewConflictError("resource", "resource already exists")
	ErrInvalidArgument  = NewInvalidArgumentError("", "invalid argument")
	ErrUnauthenticated  = NewUnauthenticatedError("invalid credentials")
	ErrStoreUnavailable = NewStoreUnavailableError("store unavailable", nil)
)

// InvalidArgumentError represents a malformed or out-of-range input
type InvalidArgumentError struct {
	Field   string
	Message string
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(field, message string) *InvalidArgumentError {
	return &InvalidArgumentError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *InvalidArgumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid argument: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// HTTPStatus returns the HTTP status code for this error
func (e *InvalidArgumentError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a referenced record that has no live state
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status code for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// ConflictError represents a uniqueness violation
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status code for this error
func (e *ConflictError) HTTPStatus() int {
	return http.StatusConflict
}

// UnauthenticatedError represents credentials that do not resolve to a valid account.
// The message is deliberately generic; callers must not be able to tell an unknown
// name from a wrong password.
type UnauthenticatedError struct {
	Message string
}

// NewUnauthenticatedError creates a new unauthenticated error
func NewUnauthenticatedError(message string) *UnauthenticatedError {
	return &UnauthenticatedError{
		Message: message,
	}
}

// Error implements the error interface
func (e *UnauthenticatedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthenticated"
}

// HTTPStatus returns the HTTP status code for this error
func (e *UnauthenticatedError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// StoreUnavailableError represents a storage collaborator that could not complete
// the operation
type StoreUnavailableError struct {
	Message string
	Err     error
}

// NewStoreUnavailableError creates a new store unavailable error
func NewStoreUnavailableError(message string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for this error
func (e *StoreUnavailableError) HTTPStatus() int {
	return http.StatusServiceUnavailable
}

// HTTPStatuser interface for errors that can provide an HTTP status code
type HTTPStatuser interface {
	HTTPStatus() int
}

// StatusCode returns the HTTP status code for err, or 500 for unrecognized errors.
func StatusCode(err error) int {
	var st HTTPStatuser
	if errors.As(err, &st) {
		return st.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsUnauthenticated reports whether err is an UnauthenticatedError.
func IsUnauthenticated(err error) bool {
	var target *UnauthenticatedError
	return errors.As(err, &target)
}

// IsStoreUnavailable reports whether err is a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var target *StoreUnavailableError
	return errors.As(err, &target)
}
