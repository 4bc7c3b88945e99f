package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidSet        = errors.New("invalid logged set")
	ErrInvalidRange      = errors.New("invalid time range")
	ErrInvalidSettings   = errors.New("invalid user settings")
	ErrUnknownExperience = errors.New("unknown experience level")
	ErrUnknownGroup      = errors.New("unknown muscle group")
)
