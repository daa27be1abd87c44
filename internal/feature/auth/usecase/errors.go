// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by id, email or username.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when attempting to register an email that already exists.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUsernameTaken is returned when attempting to register a username that already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned on any login mismatch. It deliberately
	// does not reveal whether the identifier or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword is returned when a password fails the strength rules.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrInvalidUsername is returned when a username fails the format rules.
	ErrInvalidUsername = errors.New("username must be 3-30 characters of letters, digits or underscores")
)
