package repository

import "errors"

var (
	// ErrUsernameTaken is returned when an insert collides with an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned when a lookup by id matches no user.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientCredits is returned when a deduction would drive the
	// balance below zero. The balance is left untouched.
	ErrInsufficientCredits = errors.New("insufficient credits")
)
