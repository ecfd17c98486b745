package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks a role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource changed underneath the caller.
var ErrConflict = errors.New("conflict")

// ErrConfigNotFound is returned when a module, feature, workflow or rule id is unknown.
// Gating queries never surface it; they degrade to deny.
var ErrConfigNotFound = fmt.Errorf("%w: configuration entry not found", ErrNotFound)

// ErrConditionEvaluation means a rule condition could not be compared against the entity data
// (unsupported operator or mismatched value types). The rule is treated as non-matching.
var ErrConditionEvaluation = errors.New("condition evaluation error")

// ErrApprovalConflict is returned when an approval request has already been decided.
var ErrApprovalConflict = fmt.Errorf("%w: already decided", ErrConflict)

// ErrPersistence wraps storage failures. Callers may retry; nothing was partially applied.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code alongside a message and an optional cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// NewPersistenceError wraps a storage failure so that errors.Is(err, ErrPersistence) holds
// while the original cause stays reachable.
func NewPersistenceError(message string, cause error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, fmt.Errorf("%w: %w", ErrPersistence, cause))
}

// IsRetryable reports whether the caller may safely retry the operation that produced err.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistence)
}
