package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// The repository classifies every failure into one of two kinds. Lookups
// that come back empty, and failures on plain read paths, are "not found";
// failures while creating, updating or deleting are "bad request". Anything
// already classified is passed through untouched.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrBadRequest = errors.New("bad request")
)

// AppError wraps a cause with one of the two error kinds and the HTTP status
// transport layers should answer with.
type AppError struct {
	Kind    error
	Status  int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrNotFound) and errors.Is(err, ErrBadRequest)
// match without unwrapping into the cause chain.
func (e *AppError) Is(target error) bool { return target == e.Kind }

// NewNotFound builds a not-found error. cause may be nil.
func NewNotFound(message string, cause error) error {
	return &AppError{Kind: ErrNotFound, Status: http.StatusNotFound, Message: message, Cause: cause}
}

// NewBadRequest builds a bad-request error. cause may be nil.
func NewBadRequest(message string, cause error) error {
	return &AppError{Kind: ErrBadRequest, Status: http.StatusBadRequest, Message: message, Cause: cause}
}

// StatusOf reports the HTTP status for err, defaulting to 500 for anything
// the repository did not classify.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Translated reports whether err must not be reclassified: errors that
// already carry a kind, and context cancellation/deadline errors, propagate
// unchanged.
func Translated(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
