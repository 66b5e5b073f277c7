// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across gateway/session/view-model layers.
var (
	// ErrUnauthorized indicates a valid-looking session was rejected by the
	// server. Any call surfacing it tears down the session process-wide.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadCredentials indicates the login form was rejected. Unlike
	// ErrUnauthorized it never tears down anything; the form stays editable.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoToken indicates durable storage holds no usable token
	// (missing, empty, or expired).
	ErrNoToken = errors.New("no valid token (login required)")
)

type badCredentialsError struct{ detail string }

func (e *badCredentialsError) Error() string { return e.detail }
func (e *badCredentialsError) Unwrap() error { return ErrBadCredentials }

// BadCredentials wraps ErrBadCredentials with the server's own wording.
// The returned error reads as the detail alone; errors.Is against
// ErrBadCredentials still holds.
func BadCredentials(detail string) error {
	if detail == "" {
		return ErrBadCredentials
	}
	return &badCredentialsError{detail: detail}
}

// ValidationError is raised client-side before any network call. It is
// shown inline in the originating form and never leaves it.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a user-visible message.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

// RemoteError is any non-2xx reply or transport failure from the backend.
// Detail carries the server-provided message when one was present; Cause
// carries the transport error when the request never got a status at all.
type RemoteError struct {
	Status int
	Detail string
	Cause  error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Cause }

// Is maps well-known statuses onto sentinels so callers can use errors.Is
// without inspecting codes.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// UserMessage extracts the text a view should show for err: the server
// detail when present, the validation message for local failures, or a
// generic fallback.
func UserMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	var re *RemoteError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
