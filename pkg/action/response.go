// Package action defines the uniform success/failure envelope returned by
// every repository and workflow operation. Transport layers read the code and
// map it 1:1 to a status code; the envelope itself knows nothing about HTTP.
package action

import (
	dErrors "guild/pkg/domain-errors"
)

// Code is the closed set of outcome codes carried by a Response.
type Code string

const (
	CodeOK            Code = "ok"
	CodeInputError    Code = "input_error"
	CodeUnauthorized  Code = "unauthorized"
	CodeForbidden     Code = "forbidden"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeDatabaseError Code = "database_error"
)

const defaultNotFoundMessage = "Record not found."

// Response carries the outcome of an operation together with its payload.
//
// Invariant: Successful is true if and only if Code == CodeOK. Expected
// failure paths (not found, validation, conflict) travel through failed
// responses, never through panics or returned errors.
type Response[T any] struct {
	Successful bool     `json:"was_successful"`
	Code       Code     `json:"result_code"`
	Message    string   `json:"message,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	// Result stays on the wire even when empty so clients can decode an
	// empty collection as a list, not as an absent field.
	Result T `json:"result"`
}

// Success returns an OK response carrying a payload.
func Success[T any](result T) Response[T] {
	return Response[T]{Successful: true, Code: CodeOK, Result: result}
}

// SuccessMessage returns an OK response carrying a payload and a
// human-readable message.
func SuccessMessage[T any](result T, message string) Response[T] {
	return Response[T]{Successful: true, Code: CodeOK, Message: message, Result: result}
}

// OK returns a payload-free OK response, for operations whose only result is
// that they happened.
func OK(message string) Response[struct{}] {
	return Response[struct{}]{Successful: true, Code: CodeOK, Message: message}
}

// Failure returns a failed response with the catch-all database-error code.
func Failure[T any](message string) Response[T] {
	return FailureCode[T](CodeDatabaseError, message)
}

// FailureCode returns a failed response with an explicit code.
func FailureCode[T any](code Code, message string) Response[T] {
	return Response[T]{Successful: false, Code: code, Message: message}
}

// Invalid returns an input-error response carrying field-level errors.
func Invalid[T any](message string, errs []string) Response[T] {
	return Response[T]{Successful: false, Code: CodeInputError, Message: message, Errors: errs}
}

// NotFound returns a not-found response. An empty message selects the
// default.
func NotFound[T any](message string) Response[T] {
	if message == "" {
		message = defaultNotFoundMessage
	}
	return FailureCode[T](CodeNotFound, message)
}

// Conflict returns a conflict response (uniqueness violation or a record
// already in the terminal state a mutation expects it not to be in).
func Conflict[T any](message string) Response[T] {
	return FailureCode[T](CodeConflict, message)
}

// Forbidden returns a forbidden response (caller identity valid but lacking
// ownership or permission).
func Forbidden[T any](message string) Response[T] {
	return FailureCode[T](CodeForbidden, message)
}

// Unauthorized returns an unauthorized response (caller identity missing or
// invalid).
func Unauthorized[T any](message string) Response[T] {
	return FailureCode[T](CodeUnauthorized, message)
}

// FromError translates a coded domain error into a failed response,
// preserving field-level validation detail when present.
func FromError[T any](err error) Response[T] {
	if err == nil {
		var zero T
		return Success(zero)
	}
	resp := Response[T]{
		Successful: false,
		Code:       codeFromError(err),
		Message:    err.Error(),
		Errors:     dErrors.FieldsOf(err),
	}
	return resp
}

func codeFromError(err error) Code {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return CodeInputError
	case dErrors.CodeUnauthorized:
		return CodeUnauthorized
	case dErrors.CodeForbidden:
		return CodeForbidden
	case dErrors.CodeNotFound:
		return CodeNotFound
	case dErrors.CodeConflict, dErrors.CodeInvariantViolation:
		return CodeConflict
	default:
		return CodeDatabaseError
	}
}

// ChangeType re-types a response for a caller with a different payload type,
// preserving code, message, errors and the success flag. The payload is
// dropped; this exists so a workflow can early-return a lower-layer failure
// typed for its own signature without re-deriving the failure details.
func ChangeType[To, From any](r Response[From]) Response[To] {
	return Response[To]{
		Successful: r.Successful,
		Code:       r.Code,
		Message:    r.Message,
		Errors:     r.Errors,
	}
}
