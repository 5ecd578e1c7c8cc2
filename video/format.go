// Package video provides the planar frame model used by the blur engine.
//
// This file implements pixel format descriptors for 8-bit planar
// formats. Each format describes how many planes a frame carries and
// how the chroma planes are subsampled relative to luma.
package video

import "fmt"

// PixelFormat identifies an 8-bit planar pixel format.
type PixelFormat int

// Supported pixel formats. All formats are 8 bits per sample and
// planar; packed and high bit depth formats are out of scope.
const (
	Gray8 PixelFormat = iota
	YUV444P
	YUV440P
	YUV422P
	YUV420P
	YUV411P
	YUV410P
	YUVA420P
)

// FormatDesc describes the plane layout of a pixel format.
type FormatDesc struct {
	// Name is the canonical format name.
	Name string

	// PlaneCount is the number of planes a frame of this format
	// carries: 1 for grayscale, 3 for YUV, 4 with an alpha plane.
	PlaneCount int

	// Log2ChromaW is the base-2 logarithm of the horizontal chroma
	// subsampling factor. Chroma plane width = luma width >> Log2ChromaW.
	Log2ChromaW int

	// Log2ChromaH is the base-2 logarithm of the vertical chroma
	// subsampling factor.
	Log2ChromaH int

	// HasAlpha reports whether plane 3 is an alpha plane.
	HasAlpha bool
}

var formatDescs = map[PixelFormat]FormatDesc{
	Gray8:    {Name: "gray8", PlaneCount: 1},
	YUV444P:  {Name: "yuv444p", PlaneCount: 3},
	YUV440P:  {Name: "yuv440p", PlaneCount: 3, Log2ChromaH: 1},
	YUV422P:  {Name: "yuv422p", PlaneCount: 3, Log2ChromaW: 1},
	YUV420P:  {Name: "yuv420p", PlaneCount: 3, Log2ChromaW: 1, Log2ChromaH: 1},
	YUV411P:  {Name: "yuv411p", PlaneCount: 3, Log2ChromaW: 2},
	YUV410P:  {Name: "yuv410p", PlaneCount: 3, Log2ChromaW: 2, Log2ChromaH: 2},
	YUVA420P: {Name: "yuva420p", PlaneCount: 4, Log2ChromaW: 1, Log2ChromaH: 1, HasAlpha: true},
}

// Desc returns the plane layout descriptor for the format.
func (f PixelFormat) Desc() (FormatDesc, error) {
	desc, ok := formatDescs[f]
	if !ok {
		return FormatDesc{}, fmt.Errorf("unknown pixel format %d", int(f))
	}
	return desc, nil
}

// String returns the canonical format name.
func (f PixelFormat) String() string {
	if desc, ok := formatDescs[f]; ok {
		return desc.Name
	}
	return fmt.Sprintf("pixfmt(%d)", int(f))
}

// IsChromaPlane reports whether plane index i holds subsampled chroma
// samples. Plane 0 is always luma (or gray) and plane 3 alpha; planes 1
// and 2 are the two chroma planes.
func IsChromaPlane(i int) bool {
	return i == 1 || i == 2
}
