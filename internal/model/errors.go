package model

import "errors"

var (
	// ErrNotFound is returned by stores when no entity matches.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrPasswordMismatch is returned by a PasswordHasher when the password is wrong.
	ErrPasswordMismatch = errors.New("password mismatch")
)
