// Package apperror defines the error kinds shared by the service and HTTP
// layers. Services return these; handlers map them to status codes, form
// errors or flash messages.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Err        error       // kind (one of the sentinels above)
	Message    string      // human-readable, safe to show to the user
	Field      string      // optional: field causing the error
	Violations []Violation // optional: every failing field for validation errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Messages returns the user-facing messages carried by the error. For a
// validation error with violations that is one message per violation.
func (e *AppError) Messages() []string {
	if len(e.Violations) == 0 {
		return []string{e.Message}
	}
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Message)
	}
	return out
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// Missing reports an absent singleton (no id to name).
func Missing(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		Field:      field,
		Violations: []Violation{{Field: field, Message: message}},
	}
}

// Invalid bundles several field violations into one validation error.
func Invalid(violations []Violation) *AppError {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	e := &AppError{
		Err:        ErrValidation,
		Message:    strings.Join(msgs, " "),
		Violations: violations,
	}
	if len(violations) == 1 {
		e.Field = violations[0].Field
	}
	return e
}

// Unauthorized is returned for failed credential checks. The message must
// not reveal which credential was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// MessagesOf extracts the user-facing messages from err, or nil if err does
// not carry an *AppError.
func MessagesOf(err error) []string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Messages()
	}
	return nil
}
