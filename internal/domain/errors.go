package domain

import "errors"

var (
	// ErrMissingCredential is returned when an enabled source requires a credential that is not configured
	ErrMissingCredential = errors.New("missing required credential")

	// ErrUnknownPlatform is returned when a platform has no normalizer or source adapter
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrInvalidConfig is returned when the configuration cannot be turned into a runnable setup
	ErrInvalidConfig = errors.New("invalid configuration")
)
