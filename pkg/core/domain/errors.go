package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrExpired        = errors.New("link has expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrStaleSession   = errors.New("session expired")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrBadCredentials = errors.New("wrong username or password")
)

// ValidationError carries a user-facing reason for a rejected request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(reason string) error { return &ValidationError{Reason: reason} }
