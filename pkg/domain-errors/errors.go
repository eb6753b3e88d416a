// Package domainerrors defines the typed error taxonomy shared by services,
// stores, and the HTTP layer.
//
// Services fail fast with a coded error as soon as a precondition is violated;
// the HTTP layer (pkg/platform/httputil) is the single place that maps a code
// to a status and response shape. Codes, not messages, are the contract:
// callers branch with HasCode, never by matching message text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure independent of transport.
type Code string

const (
	// CodeInvalidID marks a malformed store identifier supplied by the caller.
	// Distinct from CodeNotFound: the lookup was never issued.
	CodeInvalidID Code = "invalid_id"

	// CodeNotFound marks a well-formed identifier with no matching document.
	CodeNotFound Code = "not_found"

	// CodeDuplicateEmail marks a create that conflicts with the employee
	// email uniqueness rule.
	CodeDuplicateEmail Code = "duplicate_email"

	// CodeAlreadyAssigned marks an assignment that is already present on the
	// employee. Re-assignment is an error, not a no-op.
	CodeAlreadyAssigned Code = "already_assigned"

	// CodeBadRequest marks a request that could not be interpreted at all.
	CodeBadRequest Code = "bad_request"

	// CodeValidation marks a payload that failed schema constraints. Carries
	// per-field detail via Fields.
	CodeValidation Code = "validation"

	// CodeInternal marks anything unanticipated. Detail is logged server-side
	// only and never returned to the caller.
	CodeInternal Code = "internal"
)

// FieldError is one schema violation within a validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the concrete coded error. Construct via New, Wrap, or NewValidation.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with a caller-facing message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As chains and server-side logging.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// NewValidation creates a CodeValidation error carrying per-field detail.
func NewValidation(fields []FieldError) error {
	return &Error{Code: CodeValidation, Message: "Validation error", Fields: fields}
}

// HasCode reports whether err, or any error in its chain, carries the code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is an alias for HasCode; reads better at handler call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in the chain, or CodeInternal when err is
// not a coded error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost caller-facing message, or a generic message
// for uncoded errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// FieldsOf returns the per-field detail of the outermost validation error.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
