// Package domain defines the typed errors that cross service boundaries and
// are translated into HTTP responses. An Error is built fully at creation
// time and never mutated afterwards.
package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind tags the failure class of a domain error.
type Kind string

const (
	KindInvalidArgument        Kind = "invalid_argument"
	KindAuthenticationFailed   Kind = "authentication_failed"
	KindNotAuthenticated       Kind = "not_authenticated"
	KindResetTokenExpired      Kind = "reset_token_expired"
	KindEmailAlreadyRegistered Kind = "email_already_registered"
	KindEmailNotRegistered     Kind = "email_not_registered"
	KindInvalidUser            Kind = "invalid_user"
)

// Error carries a failure kind, an HTTP status hint for the boundary layer,
// and one or more user-facing messages.
type Error struct {
	Kind     Kind
	Status   int
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Messages, "; "))
}

// As unwraps err into a *Error when possible.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func newError(kind Kind, status int, messages ...string) *Error {
	return &Error{Kind: kind, Status: status, Messages: messages}
}

// ErrInvalidArgument reports caller misuse (nil principal, blank token, ...).
func ErrInvalidArgument(message string) *Error {
	return newError(KindInvalidArgument, http.StatusBadRequest, message)
}

// ErrAuthenticationFailed reports rejected login credentials. The message is
// deliberately generic: it must not distinguish an unknown email from a wrong
// password.
func ErrAuthenticationFailed() *Error {
	return newError(KindAuthenticationFailed, http.StatusBadRequest, "invalid email or password")
}

// ErrNotAuthenticated reports a missing or invalid refresh token, or access
// to a protected resource without identity.
func ErrNotAuthenticated() *Error {
	return newError(KindNotAuthenticated, http.StatusBadRequest, "user is not authenticated")
}

// ErrResetTokenExpired is the single signal for every password-reset token
// failure: malformed, unknown and genuinely expired tokens are
// indistinguishable to the caller.
func ErrResetTokenExpired() *Error {
	return newError(KindResetTokenExpired, http.StatusUnauthorized, "password reset token is expired")
}

func ErrEmailAlreadyRegistered(email string) *Error {
	return newError(KindEmailAlreadyRegistered, http.StatusBadRequest,
		fmt.Sprintf("email %s is already registered", email))
}

func ErrEmailNotRegistered(email string) *Error {
	return newError(KindEmailNotRegistered, http.StatusNotFound,
		fmt.Sprintf("email %s is not registered", email))
}

func ErrInvalidUser() *Error {
	return newError(KindInvalidUser, http.StatusBadRequest, "invalid user")
}
