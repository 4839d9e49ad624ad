package domain

import "errors"

var ErrArticleNotFound = errors.New("article not found")
var ErrPublisherNotFound = errors.New("publisher not found")
var ErrUserNotFound = errors.New("user not found")
var ErrProfileNotFound = errors.New("journalist profile not found")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")
var ErrUserExists = errors.New("user already exists")
var ErrPublisherExists = errors.New("publisher already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports an object-level invariant violation on a named
// field. It unwraps to ErrValidation so callers can match the whole family
// with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
