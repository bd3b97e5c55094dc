package services

import "errors"

var (
	// ErrInvalidPassword is returned when a known username logs in with a
	// password that does not match the stored one byte-for-byte.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a submission references a username
	// that has never logged in.
	ErrUserNotFound = errors.New("user not found")
)
