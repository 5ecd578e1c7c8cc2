// Package video provides the planar frame model used by the blur engine.
//
// This file implements the Frame type: up to four 8-bit sample planes
// with per-plane strides, owned by the caller and borrowed by the blur
// engine for the duration of one filter invocation.
package video

import (
	"bytes"
	"fmt"
)

// MaxPlanes is the maximum number of planes a frame can carry.
const MaxPlanes = 4

// Frame is a planar image buffer.
//
// Plane 0 holds luma (or gray) samples at full resolution, planes 1 and
// 2 hold the chroma planes at the format's subsampled resolution, and
// plane 3 holds alpha at full resolution when present. Absent planes
// are nil with a zero stride.
type Frame struct {
	Format PixelFormat
	Width  int
	Height int

	// Planes holds the sample data for each present plane.
	Planes [MaxPlanes][]byte

	// Strides holds the byte distance between vertically adjacent
	// samples in each plane. A stride may exceed the plane width.
	Strides [MaxPlanes]int
}

// NewFrame allocates a frame of the given format and dimensions with
// tightly packed planes (stride equal to plane width).
func NewFrame(format PixelFormat, width, height int) (*Frame, error) {
	desc, err := format.Desc()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	f := &Frame{
		Format: format,
		Width:  width,
		Height: height,
	}
	for i := 0; i < desc.PlaneCount; i++ {
		w, h := f.PlaneDims(i)
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%w: plane %d is %dx%d for %s %dx%d",
				ErrInvalidDimensions, i, w, h, format, width, height)
		}
		f.Planes[i] = make([]byte, w*h)
		f.Strides[i] = w
	}
	return f, nil
}

// PlaneCount returns the number of present planes.
func (f *Frame) PlaneCount() int {
	desc, err := f.Format.Desc()
	if err != nil {
		return 0
	}
	return desc.PlaneCount
}

// PlaneDims returns the dimensions of plane i. Luma and alpha planes
// use the full frame dimensions; chroma planes are right-shifted by
// the format's subsampling factors.
func (f *Frame) PlaneDims(i int) (w, h int) {
	desc, err := f.Format.Desc()
	if err != nil || i < 0 || i >= desc.PlaneCount {
		return 0, 0
	}
	if IsChromaPlane(i) {
		return f.Width >> desc.Log2ChromaW, f.Height >> desc.Log2ChromaH
	}
	return f.Width, f.Height
}

// Clone returns a deep copy of the frame with tightly packed planes.
// Padding bytes beyond each row's width are not copied.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Format: f.Format,
		Width:  f.Width,
		Height: f.Height,
	}
	for i := 0; i < f.PlaneCount(); i++ {
		w, h := f.PlaneDims(i)
		out.Planes[i] = make([]byte, w*h)
		out.Strides[i] = w
		for y := 0; y < h; y++ {
			copy(out.Planes[i][y*w:y*w+w], f.Planes[i][y*f.Strides[i]:y*f.Strides[i]+w])
		}
	}
	return out
}

// Validate checks that every present plane is allocated and large
// enough for its dimensions and stride.
func (f *Frame) Validate() error {
	desc, err := f.Format.Desc()
	if err != nil {
		return err
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, f.Width, f.Height)
	}
	for i := 0; i < desc.PlaneCount; i++ {
		w, h := f.PlaneDims(i)
		if f.Strides[i] < w {
			return fmt.Errorf("%w: plane %d stride %d < width %d",
				ErrInvalidDimensions, i, f.Strides[i], w)
		}
		need := (h-1)*f.Strides[i] + w
		if len(f.Planes[i]) < need {
			return fmt.Errorf("%w: plane %d has %d bytes, need %d",
				ErrInvalidDimensions, i, len(f.Planes[i]), need)
		}
	}
	return nil
}

// EqualContent reports whether two frames carry identical sample data
// in every present plane, comparing row contents and ignoring padding.
func (f *Frame) EqualContent(other *Frame) bool {
	if other == nil || f.Format != other.Format ||
		f.Width != other.Width || f.Height != other.Height {
		return false
	}
	for i := 0; i < f.PlaneCount(); i++ {
		w, h := f.PlaneDims(i)
		for y := 0; y < h; y++ {
			a := f.Planes[i][y*f.Strides[i] : y*f.Strides[i]+w]
			b := other.Planes[i][y*other.Strides[i] : y*other.Strides[i]+w]
			if !bytes.Equal(a, b) {
				return false
			}
		}
	}
	return true
}
