package blur

import "errors"

// Sentinel errors for engine construction.
var (
	// ErrInvalidGeometry indicates engine dimensions or a plane count
	// that scratch buffers cannot be allocated for.
	ErrInvalidGeometry = errors.New("invalid engine geometry")
)
