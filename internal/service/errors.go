package service

import "errors"

var (
	// ErrNotFound reports that the requested resource does not exist or is not
	// owned by the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput reports a request that fails validation. Wrapped errors
	// carry the specific violation.
	ErrInvalidInput = errors.New("invalid input")
)
