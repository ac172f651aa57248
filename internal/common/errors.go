// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Save validation errors.
	ErrMissingCategory = errors.New("no category selected")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")

	// Category errors.
	ErrNoDefaultCategory = errors.New("no default category for transaction type")
	ErrCategoryInUse     = errors.New("category has existing transactions")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError is an error meant to be shown to the user: a short title and a
// one-sentence message, wrapping the underlying cause.
type UserError struct {
	Err     error
	Title   string
	Message string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a user-facing error with a title and message.
func NewUserError(title, message string, err error) error {
	return &UserError{
		Title:   title,
		Message: message,
		Err:     err,
	}
}

// DescribeError maps an error to its user-facing title and message. Errors
// outside the known taxonomy fall through to the catch-all; nothing about
// the failed attempt is committed, so every case is recoverable.
func DescribeError(err error) (title, message string) {
	switch {
	case errors.Is(err, ErrMissingCategory):
		return "Missing Category", "Please select a category."
	case errors.Is(err, ErrInvalidAmount):
		return "Invalid Amount", "Amount should be more than $0.00."
	case errors.Is(err, ErrNoDefaultCategory):
		return "No Default Category Found", "There is no default category found."
	default:
		var uerr *UserError
		if errors.As(err, &uerr) {
			return uerr.Title, uerr.Message
		}
		return "Unexpected Error", "An unexpected error occurred while saving this transaction. Please try again."
	}
}
