package boxblur

import "errors"

// Sentinel errors for filter configuration and frame processing.
// These errors enable reliable error classification using errors.Is().

// Configuration errors. These indicate static misconfiguration: they
// surface from New or Configure, before any frame is processed, and
// are never retried.
var (
	// ErrLumaRadiusNotSet indicates the luma radius expression is
	// missing and cannot be defaulted.
	ErrLumaRadiusNotSet = errors.New("luma radius expression is not set")

	// ErrInvalidExpression indicates a radius expression that fails
	// to parse or evaluate to a number.
	ErrInvalidExpression = errors.New("invalid radius expression")

	// ErrInvalidRadius indicates a resolved radius outside the range
	// allowed by the configured plane dimensions.
	ErrInvalidRadius = errors.New("invalid blur radius")

	// ErrInvalidPower indicates a negative resolved power.
	ErrInvalidPower = errors.New("invalid blur power")
)

// Frame processing errors.
var (
	// ErrNotConfigured indicates Apply was called before a
	// successful Configure.
	ErrNotConfigured = errors.New("filter is not configured")

	// ErrFormatMismatch indicates a frame whose format or dimensions
	// differ from the configured geometry.
	ErrFormatMismatch = errors.New("frame does not match configured geometry")
)
