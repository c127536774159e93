// Package domainerrors defines the coded error type used across services and
// stores. Stores return sentinel errors (pkg/platform/sentinel) for
// infrastructure facts; services wrap or translate them into coded domain
// errors so transport layers can map codes without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain error for callers that need to branch on the
// failure category rather than the message.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeBadRequest         ErrorCode = "bad_request"
	CodeInvalidInput       ErrorCode = "invalid_input"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeForbidden          ErrorCode = "forbidden"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodeTimeout            ErrorCode = "timeout"
	CodeInternal           ErrorCode = "internal"
)

// Error is a coded domain error. Fields carries optional field-level detail
// for validation failures.
type Error struct {
	Code    ErrorCode
	Message string
	Fields  []string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded domain error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewWithFields creates a validation-style error carrying field-level detail.
func NewWithFields(code ErrorCode, message string, fields []string) *Error {
	return &Error{Code: code, Message: message, Fields: fields}
}

// Wrap attaches a code and message to an underlying error while keeping it
// reachable through errors.Is/errors.As.
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal when err is not a domain
// error. Returns the zero code for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FieldsOf returns field-level validation detail if err carries any.
func FieldsOf(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

// Is allows comparison against another domain error by code.
func (e *Error) Is(target error) bool {
	var de *Error
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}
