package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflicting state")

// ErrUnbalanced indicates a journal entry whose debit and credit lines do not sum
// to the same amount. Entries like this must be rejected before persistence.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrTrialBalanceMismatch indicates that total debits and total credits of a trial
// balance disagree. Callers receive it as a hard failure; it is never auto-corrected.
var ErrTrialBalanceMismatch = errors.New("trial balance does not balance")

// ErrPeriodLocked indicates an operation that requires an OPEN fiscal period
// was attempted against one already processed.
var ErrPeriodLocked = errors.New("fiscal period is not open")

// AppError carries a status code alongside the underlying error.
// Repositories use it to report storage faults without leaking driver details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
