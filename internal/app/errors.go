package service

import "errors"

// Sentinel errors for service calls.
var (
	ErrTooManySets  = errors.New("too many sets in one request")
	ErrMissingAsOf  = errors.New("as_of is required")
	ErrMissingInput = errors.New("missing input")
)
