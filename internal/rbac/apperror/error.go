// Package apperror is the error taxonomy of the service. Services return
// *AppError values and the HTTP layer maps their Kind to a status code.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

type AppError struct {
	Kind    Kind
	Code    string            // specific reason, e.g. role_name_taken
	Message string            // safe to show to callers
	Details map[string]string // per-field reasons for validation errors
	Inner   error             // never shown to callers
}

func (e *AppError) Error() string { return e.Message }
func (e *AppError) Unwrap() error { return e.Inner }

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Wrap(inner error, kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Inner: inner}
}

// WithDetails returns a copy of e carrying details. Sentinels stay
// untouched.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is matches on kind and code, so a wrapped or detailed copy of a sentinel
// still satisfies errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func (e *AppError) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			_, _ = fmt.Fprintf(f, "Kind: %s, Code: %s, Message: %s", e.Kind, e.Code, e.Message)
			if e.Inner != nil {
				_, _ = fmt.Fprintf(f, "\nCaused by: %+v", e.Inner)
			}
			if e.Details != nil {
				_, _ = fmt.Fprintf(f, "\nDetails: %v", e.Details)
			}
			return
		}
		_, _ = fmt.Fprint(f, e.Message)
	case 's':
		_, _ = fmt.Fprint(f, e.Message)
	}
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err. Anything that is not an *AppError is
// internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// Validation builds a validation error with per-field details.
func Validation(message string, details map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Code: "validation_error", Message: message, Details: details}
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return Wrap(cause, KindInternal, "internal_error", "internal server error")
}
