// Package errors defines the tagged error type shared by the auth core.
// Every user-facing failure carries a Kind, a stable machine-readable code
// and a message that never reveals which half of the credential pair was
// wrong or whether the account exists.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindInvalidCredentials
	KindRateLimited
	KindSessionInvalid
	KindInfrastructure
)

type Error struct {
	Kind    Kind
	Code    string
	Message string

	// RetryAfter is set only for KindRateLimited.
	RetryAfter time.Duration

	// RemainingAttempts is meaningful only when HasRemaining is true
	// (KindInvalidCredentials).
	RemainingAttempts int
	HasRemaining      bool

	err error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// HTTPStatus maps the error kind to the status the handler responds with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindSessionInvalid:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func InvalidInput(message string) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Code:    "INVALID_INPUT",
		Message: message,
	}
}

// InvalidCredentials is the unified result of unknown email, inactive
// account and password mismatch; callers cannot tell the three apart.
func InvalidCredentials(remainingAttempts int) *Error {
	return &Error{
		Kind:              KindInvalidCredentials,
		Code:              "INVALID_CREDENTIALS",
		Message:           "invalid email or password",
		RemainingAttempts: remainingAttempts,
		HasRemaining:      true,
	}
}

func RateLimited(retryAfter time.Duration) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Code:       "RATE_LIMITED",
		Message:    "too many failed login attempts, retry later",
		RetryAfter: retryAfter,
	}
}

func SessionInvalid(err error) *Error {
	return &Error{
		Kind:    KindSessionInvalid,
		Code:    "SESSION_INVALID",
		Message: "invalid session",
		err:     err,
	}
}

func Infrastructure(err error) *Error {
	return &Error{
		Kind:    KindInfrastructure,
		Code:    "INTERNAL",
		Message: "internal error",
		err:     err,
	}
}

// KindOf extracts the kind from any error in the chain, KindUnknown when
// the error does not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
