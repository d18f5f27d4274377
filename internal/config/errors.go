package config

import "errors"

// Validation errors returned by Options.Validate. These are package-level
// sentinels so callers can match them with errors.Is while still getting a
// human-readable message.
var (
	// ErrInvalidWidth is returned when the wrap width is negative.
	// Zero is valid and disables wrapping.
	ErrInvalidWidth = errors.New("invalid width: must be a non-negative integer")

	// ErrInvalidFormat is returned when the format token is not one of
	// "trivial", "plain" or "rich".
	ErrInvalidFormat = errors.New(`invalid format: must be one of "trivial", "plain", "rich"`)

	// ErrConfigNotFound is returned when an explicitly requested
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
