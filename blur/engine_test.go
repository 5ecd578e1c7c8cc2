package blur

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPlane(rng *rand.Rand, w, h, stride int) []byte {
	plane := make([]byte, (h-1)*stride+w)
	for i := range plane {
		plane[i] = byte(rng.Intn(256))
	}
	return plane
}

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		planeCount int
		wantErr    bool
	}{
		{name: "valid", width: 64, height: 48, planeCount: 3},
		{name: "single plane", width: 16, height: 16, planeCount: 1},
		{name: "zero width", width: 0, height: 48, planeCount: 3, wantErr: true},
		{name: "negative height", width: 64, height: -1, planeCount: 3, wantErr: true},
		{name: "no planes", width: 64, height: 48, planeCount: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(tt.width, tt.height, tt.planeCount)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGeometry)
				assert.Nil(t, engine)
				return
			}
			require.NoError(t, err)
			w, h := engine.Geometry()
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
			assert.Equal(t, tt.planeCount, engine.PlaneSlots())
		})
	}
}

func TestHorizontalBlursEachRow(t *testing.T) {
	const w, h, stride = 12, 5, 15
	const radius, power = 2, 1

	rng := rand.New(rand.NewSource(10))
	src := randomPlane(rng, w, h, stride)
	dst := make([]byte, (h-1)*w+w)

	engine, err := NewEngine(w, h, 1)
	require.NoError(t, err)

	engine.Horizontal(dst, w, src, stride, w, h, radius, power, 0)

	for y := 0; y < h; y++ {
		want := mirroredBoxBlurRef(src[y*stride:y*stride+w], w, radius)
		assert.Equalf(t, want, dst[y*w:y*w+w], "row %d", y)
	}
}

func TestVerticalBlursEachColumn(t *testing.T) {
	const w, h, stride = 7, 16, 9
	const radius, power = 3, 1

	rng := rand.New(rand.NewSource(11))
	src := randomPlane(rng, w, h, stride)
	dst := make([]byte, (h-1)*stride+w)

	engine, err := NewEngine(w, h, 1)
	require.NoError(t, err)

	engine.Vertical(dst, stride, src, stride, w, h, radius, power, 0)

	for x := 0; x < w; x++ {
		column := make([]byte, h)
		for y := 0; y < h; y++ {
			column[y] = src[y*stride+x]
		}
		want := mirroredBoxBlurRef(column, h, radius)
		for y := 0; y < h; y++ {
			require.Equalf(t, want[y], dst[y*stride+x], "column %d row %d", x, y)
		}
	}
}

func TestVerticalInPlaceMatchesOutOfPlace(t *testing.T) {
	const w, h, stride = 10, 14, 10

	rng := rand.New(rand.NewSource(12))

	for _, power := range []int{1, 2, 4} {
		src := randomPlane(rng, w, h, stride)
		inPlace := append([]byte(nil), src...)
		separate := make([]byte, len(src))

		engine, err := NewEngine(w, h, 1)
		require.NoError(t, err)

		engine.Vertical(separate, stride, src, stride, w, h, 3, power, 0)
		engine.Vertical(inPlace, stride, inPlace, stride, w, h, 3, power, 0)

		require.Equalf(t, separate, inPlace, "power %d", power)
	}
}

func TestSweepsWithZeroRadiusInPlaceAreNoOps(t *testing.T) {
	const w, h = 8, 6

	rng := rand.New(rand.NewSource(13))
	plane := randomPlane(rng, w, h, w)
	original := append([]byte(nil), plane...)

	engine, err := NewEngine(w, h, 1)
	require.NoError(t, err)

	engine.Horizontal(plane, w, plane, w, w, h, 0, 2, 0)
	engine.Vertical(plane, w, plane, w, w, h, 0, 2, 0)

	assert.Equal(t, original, plane)
}

func TestPlaneSlotsAreIndependent(t *testing.T) {
	// Two slots blurring different planes concurrently must produce
	// the same output as sequential use: scratch pairs are private to
	// their slot.
	const w, h = 32, 32

	rng := rand.New(rand.NewSource(14))
	srcA := randomPlane(rng, w, h, w)
	srcB := randomPlane(rng, w, h, w)

	engine, err := NewEngine(w, h, 2)
	require.NoError(t, err)

	seqA := make([]byte, len(srcA))
	seqB := make([]byte, len(srcB))
	engine.Horizontal(seqA, w, srcA, w, w, h, 4, 3, 0)
	engine.Horizontal(seqB, w, srcB, w, w, h, 2, 2, 1)

	conA := make([]byte, len(srcA))
	conB := make([]byte, len(srcB))
	done := make(chan struct{})
	go func() {
		engine.Horizontal(conA, w, srcA, w, w, h, 4, 3, 0)
		close(done)
	}()
	engine.Horizontal(conB, w, srcB, w, w, h, 2, 2, 1)
	<-done

	assert.Equal(t, seqA, conA)
	assert.Equal(t, seqB, conB)
}
