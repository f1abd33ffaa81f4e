// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Query errors.
	ErrInvalidQueryValue = errors.New("invalid query value")
	ErrInvalidMode       = errors.New("invalid ranking mode")

	// Catalog errors.
	ErrSchemaMismatch  = errors.New("catalog schema mismatch")
	ErrInvalidRow      = errors.New("invalid catalog row")
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrCatalogEmpty    = errors.New("catalog not loaded")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FieldError reports a query value that could not be parsed as the type its
// field expects.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s=%q: %v", ErrInvalidQueryValue, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s=%q", ErrInvalidQueryValue, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrInvalidQueryValue) hold for every FieldError.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidQueryValue
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a FieldError for the given field and raw value.
func NewFieldError(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}

// SchemaError lists the catalog columns that were expected but not found.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: missing column(s) %s", ErrSchemaMismatch, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s: missing column(s) %s", ErrSchemaMismatch, e.Source, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message meant for the user, falling back to the
// error text when err carries none.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("Invalid value for %s: %q", fieldErr.Field, fieldErr.Value)
	}
	return err.Error()
}
