// Package video provides the planar frame model used by the blur engine.
//
// This file implements bridges between Frame and the standard library
// image types, used by the command line tool and by tests. The bridges
// alias plane memory where the layouts agree and convert otherwise.
package video

import (
	"fmt"
	"image"
	"image/color"
)

// ratioFormats maps stdlib chroma subsample ratios onto the planar
// formats with identical plane geometry. YUV410P is absent: the
// stdlib 4:1:0 layout subsamples vertically by two, not four.
var ratioFormats = map[image.YCbCrSubsampleRatio]PixelFormat{
	image.YCbCrSubsampleRatio444: YUV444P,
	image.YCbCrSubsampleRatio440: YUV440P,
	image.YCbCrSubsampleRatio422: YUV422P,
	image.YCbCrSubsampleRatio420: YUV420P,
	image.YCbCrSubsampleRatio411: YUV411P,
}

// SubsampleRatio returns the stdlib chroma ratio matching the format,
// or false when the format has no stdlib equivalent.
func (f PixelFormat) SubsampleRatio() (image.YCbCrSubsampleRatio, bool) {
	for ratio, format := range ratioFormats {
		if format == f {
			return ratio, true
		}
	}
	return 0, false
}

// alignedForFormat reports whether the dimensions are multiples of the
// format's chroma subsampling factors. The frame model computes chroma
// plane dimensions with a plain right shift, so unaligned dimensions
// would disagree with the stdlib's rounded-up chroma geometry.
func alignedForFormat(desc FormatDesc, w, h int) bool {
	return w&((1<<desc.Log2ChromaW)-1) == 0 && h&((1<<desc.Log2ChromaH)-1) == 0
}

// FrameFromImage wraps or converts a decoded image into a planar frame.
//
// Gray images map to Gray8 and YCbCr images to the matching planar
// format, aliasing the image's pixel memory without copying. Any other
// image type is converted pixel by pixel into a YUV444P frame.
func FrameFromImage(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	switch src := img.(type) {
	case *image.Gray:
		f := &Frame{Format: Gray8, Width: w, Height: h}
		f.Planes[0] = src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y):]
		f.Strides[0] = src.Stride
		return f, f.Validate()

	case *image.YCbCr:
		format, ok := ratioFormats[src.SubsampleRatio]
		if !ok {
			return nil, fmt.Errorf("%w: subsample ratio %v", ErrUnsupportedImage, src.SubsampleRatio)
		}
		desc, _ := format.Desc()
		if !alignedForFormat(desc, w, h) {
			return nil, fmt.Errorf("%w: %dx%d not aligned for %s", ErrInvalidDimensions, w, h, format)
		}
		f := &Frame{Format: format, Width: w, Height: h}
		f.Planes[0] = src.Y[src.YOffset(bounds.Min.X, bounds.Min.Y):]
		f.Planes[1] = src.Cb[src.COffset(bounds.Min.X, bounds.Min.Y):]
		f.Planes[2] = src.Cr[src.COffset(bounds.Min.X, bounds.Min.Y):]
		f.Strides[0] = src.YStride
		f.Strides[1] = src.CStride
		f.Strides[2] = src.CStride
		return f, f.Validate()

	case *image.NYCbCrA:
		if src.SubsampleRatio != image.YCbCrSubsampleRatio420 {
			return nil, fmt.Errorf("%w: alpha with subsample ratio %v", ErrUnsupportedImage, src.SubsampleRatio)
		}
		desc, _ := YUVA420P.Desc()
		if !alignedForFormat(desc, w, h) {
			return nil, fmt.Errorf("%w: %dx%d not aligned for %s", ErrInvalidDimensions, w, h, YUVA420P)
		}
		f := &Frame{Format: YUVA420P, Width: w, Height: h}
		f.Planes[0] = src.Y[src.YOffset(bounds.Min.X, bounds.Min.Y):]
		f.Planes[1] = src.Cb[src.COffset(bounds.Min.X, bounds.Min.Y):]
		f.Planes[2] = src.Cr[src.COffset(bounds.Min.X, bounds.Min.Y):]
		f.Planes[3] = src.A[src.AOffset(bounds.Min.X, bounds.Min.Y):]
		f.Strides[0] = src.YStride
		f.Strides[1] = src.CStride
		f.Strides[2] = src.CStride
		f.Strides[3] = src.AStride
		return f, f.Validate()

	default:
		return convertToYUV444(img)
	}
}

// convertToYUV444 converts an arbitrary image to a full-resolution
// planar YUV frame, one color.RGBToYCbCr call per pixel.
func convertToYUV444(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	f, err := NewFrame(YUV444P, w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			cy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			f.Planes[0][y*f.Strides[0]+x] = cy
			f.Planes[1][y*f.Strides[1]+x] = cb
			f.Planes[2][y*f.Strides[2]+x] = cr
		}
	}
	return f, nil
}

// ToImage wraps the frame in the matching standard library image type,
// aliasing plane memory without copying.
func (f *Frame) ToImage() (image.Image, error) {
	rect := image.Rect(0, 0, f.Width, f.Height)

	switch {
	case f.Format == Gray8:
		return &image.Gray{Pix: f.Planes[0], Stride: f.Strides[0], Rect: rect}, nil

	case f.Format == YUVA420P:
		if f.Strides[1] != f.Strides[2] {
			return nil, fmt.Errorf("%w: chroma strides %d and %d differ",
				ErrUnsupportedImage, f.Strides[1], f.Strides[2])
		}
		ratio := image.YCbCrSubsampleRatio420
		return &image.NYCbCrA{
			YCbCr: image.YCbCr{
				Y:              f.Planes[0],
				Cb:             f.Planes[1],
				Cr:             f.Planes[2],
				YStride:        f.Strides[0],
				CStride:        f.Strides[1],
				SubsampleRatio: ratio,
				Rect:           rect,
			},
			A:       f.Planes[3],
			AStride: f.Strides[3],
		}, nil

	default:
		ratio, ok := f.Format.SubsampleRatio()
		if !ok {
			return nil, fmt.Errorf("%w: no image type for %s", ErrUnsupportedImage, f.Format)
		}
		if f.Strides[1] != f.Strides[2] {
			return nil, fmt.Errorf("%w: chroma strides %d and %d differ",
				ErrUnsupportedImage, f.Strides[1], f.Strides[2])
		}
		return &image.YCbCr{
			Y:              f.Planes[0],
			Cb:             f.Planes[1],
			Cr:             f.Planes[2],
			YStride:        f.Strides[0],
			CStride:        f.Strides[1],
			SubsampleRatio: ratio,
			Rect:           rect,
		}, nil
	}
}
