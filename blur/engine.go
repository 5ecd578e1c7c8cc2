// Package blur implements the separable box-blur engine for planar
// 8-bit sample buffers.
//
// This file implements the Engine: scratch buffer ownership and the
// horizontal and vertical sweeps that apply the multi-pass 1D kernel
// across a whole plane.
package blur

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Engine applies multi-pass box blurs to planes of a fixed geometry.
//
// The engine owns one pair of scratch line buffers per plane slot,
// each sized to the larger of the configured width and height, so the
// per-plane sweeps of one frame may run concurrently: a sweep only
// ever touches the scratch pair of its own plane slot. The scratch
// buffers carry no state between invocations.
type Engine struct {
	width  int
	height int
	temp   [][2][]byte
}

// NewEngine allocates an engine for frames of the given dimensions
// with one scratch pair per plane slot.
func NewEngine(width, height, planeCount int) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	if planeCount < 1 {
		return nil, fmt.Errorf("%w: %d planes", ErrInvalidGeometry, planeCount)
	}

	lineSize := width
	if height > lineSize {
		lineSize = height
	}

	e := &Engine{
		width:  width,
		height: height,
		temp:   make([][2][]byte, planeCount),
	}
	for i := range e.temp {
		e.temp[i][0] = make([]byte, lineSize)
		e.temp[i][1] = make([]byte, lineSize)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewEngine",
		"width":       width,
		"height":      height,
		"plane_count": planeCount,
		"line_size":   lineSize,
	}).Debug("Blur engine scratch buffers allocated")

	return e, nil
}

// Geometry returns the configured frame dimensions.
func (e *Engine) Geometry() (width, height int) {
	return e.width, e.height
}

// PlaneSlots returns the number of concurrent plane sweeps the engine
// can serve.
func (e *Engine) PlaneSlots() int {
	return len(e.temp)
}

// Horizontal blurs every row of a w-by-h plane from src into dst,
// applying the kernel power times per row. With a zero radius and dst
// aliasing src the sweep is a true no-op.
func (e *Engine) Horizontal(dst []byte, dstStride int, src []byte, srcStride int, w, h, radius, power, plane int) {
	if radius == 0 && sameBase(dst, src) {
		return
	}
	temp := &e.temp[plane]
	for y := 0; y < h; y++ {
		blurPower(dst[y*dstStride:], 1, src[y*srcStride:], 1, w, radius, power, temp)
	}
}

// Vertical blurs every column of a w-by-h plane from src into dst,
// applying the kernel power times per column.
//
// dst may alias src: each column's read/write sequence inside
// blurPower is self-contained (intermediate passes live in the scratch
// buffers) and columns do not overlap, so the in-place sweep never
// reads a sample it has already overwritten. With a zero radius and
// aliased buffers the sweep is a true no-op.
func (e *Engine) Vertical(dst []byte, dstStride int, src []byte, srcStride int, w, h, radius, power, plane int) {
	if radius == 0 && sameBase(dst, src) {
		return
	}
	temp := &e.temp[plane]
	for x := 0; x < w; x++ {
		blurPower(dst[x:], dstStride, src[x:], srcStride, h, radius, power, temp)
	}
}
