// Package blur implements the separable box-blur engine for planar
// 8-bit sample buffers.
//
// This file implements the 1D kernel: a single box-blur pass over one
// row or column using an incremental running sum, and the multi-pass
// driver that repeats the kernel through a pair of scratch buffers.
package blur

// blurLine writes one box-blur pass of src into dst.
//
// Both sequences hold length samples addressed with a fixed step, so
// the same code walks rows (step 1) and columns (step = plane stride).
// Window samples outside the sequence are mirrored across the nearest
// boundary. The caller guarantees 2*radius <= length.
//
// A naive pass would sum 2*radius+1 source samples per output sample.
// The windows of two adjacent outputs differ by exactly one entering
// and one leaving sample, so one running sum updated with an add and a
// subtract produces each output in constant time. Division by the
// window size uses a 16-bit fixed-point reciprocal with symmetric
// rounding, keeping the hot loop free of floating point.
func blurLine(dst []byte, dstStep int, src []byte, srcStep int, length, radius int) {
	windowSize := radius*2 + 1
	inv := ((1 << 16) + windowSize/2) / windowSize

	// Seed the sum as if samples -radius..-1 were the mirror of
	// samples 0..radius-1: double the first radius samples, then add
	// the window center.
	sum := 0
	for x := 0; x < radius; x++ {
		sum += int(src[x*srcStep]) << 1
	}
	sum += int(src[radius*srcStep])

	x := 0
	for ; x <= radius; x++ {
		// With 2*radius == length the entering sample already falls
		// past the right boundary and must be mirrored.
		in := radius + x
		if in >= length {
			in = 2*length - in - 1
		}
		sum += int(src[in*srcStep]) - int(src[(radius-x)*srcStep])
		dst[x*dstStep] = byte((sum*inv + 1<<15) >> 16)
	}
	for ; x < length-radius; x++ {
		sum += int(src[(radius+x)*srcStep]) - int(src[(x-radius-1)*srcStep])
		dst[x*dstStep] = byte((sum*inv + 1<<15) >> 16)
	}
	for ; x < length; x++ {
		sum += int(src[(2*length-radius-x-1)*srcStep]) - int(src[(x-radius-1)*srcStep])
		dst[x*dstStep] = byte((sum*inv + 1<<15) >> 16)
	}
}

// blurPower applies blurLine power times from src to dst, threading the
// intermediate passes through the two scratch line buffers.
//
// Both scratch buffers must hold at least length bytes and are fully
// overwritten. Passes ping-pong between the two fixed buffers by role
// exchange only, so no pass ever reads the buffer it is writing. With a
// zero radius or zero power the source is copied through unchanged.
func blurPower(dst []byte, dstStep int, src []byte, srcStep int, length, radius, power int, temp *[2][]byte) {
	if radius == 0 || power == 0 {
		for i := 0; i < length; i++ {
			dst[i*dstStep] = src[i*srcStep]
		}
		return
	}
	if power == 1 && !sameBase(dst, src) {
		blurLine(dst, dstStep, src, srcStep, length, radius)
		return
	}

	// The kernel must never read a sample it has already overwritten,
	// so an aliased single pass goes through a scratch buffer too.
	a, b := temp[0], temp[1]
	blurLine(a, 1, src, srcStep, length, radius)
	for ; power > 2; power-- {
		blurLine(b, 1, a, 1, length, radius)
		a, b = b, a
	}
	if power > 1 {
		blurLine(dst, dstStep, a, 1, length, radius)
		return
	}
	for i := 0; i < length; i++ {
		dst[i*dstStep] = a[i]
	}
}

// sameBase reports whether two sequences start at the same sample.
func sameBase(a, b []byte) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
