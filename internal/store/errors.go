package store

import "errors"

// Validation and lookup failures surfaced to the user. Controllers map
// these onto HTTP statuses and localized messages; everything else is an
// internal error.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateID    = errors.New("id already exists")
	ErrDuplicateName  = errors.New("name already exists")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)
