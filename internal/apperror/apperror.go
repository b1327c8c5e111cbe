// Package apperror defines the error taxonomy shared by services and the
// HTTP layer. Codes map to HTTP statuses at the transport boundary.
package apperror

import "net/http"

type Code string

const (
	BadRequest Code = "BAD_REQUEST"
	NotFound   Code = "NOT_FOUND"
	Conflict   Code = "CONFLICT"
	Internal   Code = "INTERNAL"
)

type AppError struct {
	code    Code
	message string
}

func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

func (e *AppError) Error() string   { return e.message }
func (e *AppError) Code() Code      { return e.code }
func (e *AppError) Message() string { return e.message }

// IsConflict reports whether err is an AppError with the Conflict code.
// Ingest relies on this to treat duplicate-fingerprint insert races as
// already-known rather than failures.
func IsConflict(err error) bool {
	ae, ok := err.(*AppError)
	return ok && ae.code == Conflict
}

func (e *AppError) HTTPStatus() int {
	switch e.code {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
