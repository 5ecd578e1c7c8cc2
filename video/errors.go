package video

import "errors"

// Sentinel errors for frame construction and validation.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrInvalidDimensions indicates frame or plane dimensions that
	// cannot be allocated or addressed.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrUnsupportedImage indicates an image type with no planar
	// frame mapping.
	ErrUnsupportedImage = errors.New("unsupported image type")
)
