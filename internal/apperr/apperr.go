// Package apperr gives every layer a single typed error so the transport
// layer, and only the transport layer, decides the HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error per the taxonomy in the service's error
// handling design: validation, authorization, quota, dependency, or an
// internal invariant violation ("programming").
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindQuota         Kind = "quota"
	KindDependency    Kind = "dependency"
	KindProgramming   Kind = "programming"
)

// Error wraps an underlying cause with a stable Kind and a caller-safe
// detail string. The underlying cause is never rendered to the caller.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Detail + ": " + e.cause.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error with the given kind and detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap attaches a Kind to an existing error, preserving it as the cause.
// A wrap of an already-typed error preserves the original Kind, per the
// propagation rule that wrapping across layers must not lose the kind.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Kind: existing.Kind, Detail: existing.Detail, cause: err}
	}
	return &Error{Kind: kind, Detail: err.Error(), cause: err}
}

// HTTPStatus maps a Kind to the status code the read/ingest surface
// should return.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindQuota:
		return http.StatusTooManyRequests
	case KindDependency:
		return http.StatusServiceUnavailable
	case KindProgramming:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// PublicDetail returns the string safe to hand back to a caller: for
// programming errors it never leaks internals.
func PublicDetail(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal error"
	}
	if e.Kind == KindProgramming {
		return "internal error"
	}
	return e.Detail
}
