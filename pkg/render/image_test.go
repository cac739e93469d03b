package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

func rgb(r, g, b uint8) colors.RGB32 {
	return colors.FromRGB32(r, g, b)
}

func TestImageValidity(t *testing.T) {
	var zero Image[colors.RGB32]
	assert.False(t, zero.IsValid())
	zero.DrawPixel(0, 0, rgb(1, 2, 3)) // no-op, no panic
	assert.Equal(t, colors.RGB32(0), zero.At(0, 0))

	assert.False(t, FromBuffer([]colors.RGB32{}, 2, 2, 2).IsValid())
	assert.False(t, FromBuffer(make([]colors.RGB32, 16), 4, 4, 3).IsValid()) // stride < lx
	assert.True(t, FromBuffer(make([]colors.RGB32, 16), 4, 4, 4).IsValid())

	im := NewImage[colors.RGB32](4, 4)
	assert.True(t, im.IsValid())
	assert.Equal(t, math3d.B2(0, 3, 0, 3), im.Box())
}

func TestDrawPixelBounds(t *testing.T) {
	im := NewImage[colors.RGB32](4, 4)
	im.DrawPixel(-1, 0, rgb(255, 0, 0))
	im.DrawPixel(0, -1, rgb(255, 0, 0))
	im.DrawPixel(4, 0, rgb(255, 0, 0))
	im.DrawPixel(0, 4, rgb(255, 0, 0))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, colors.RGB32(0), im.At(x, y))
		}
	}
	im.DrawPixel(2, 3, rgb(9, 9, 9))
	assert.Equal(t, rgb(9, 9, 9), im.At(2, 3))
}

// FillRect over the full box reads back the color at every pixel,
// independent of stride.
func TestFillRectStrideIndependence(t *testing.T) {
	c := rgb(10, 200, 30)
	for _, stride := range []int{4, 5, 9} {
		buf := make([]colors.RGB32, stride*4)
		im := FromBuffer(buf, 4, 4, stride)
		require.True(t, im.IsValid())
		im.FillRect(im.Box(), c)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				assert.Equal(t, c, im.At(x, y), "stride=%d (%d,%d)", stride, x, y)
			}
		}
		// Padding between rows is untouched.
		if stride > 4 {
			for y := 0; y < 4; y++ {
				assert.Equal(t, colors.RGB32(0), buf[y*stride+4])
			}
		}
	}
}

// For stride == lx the fill is equivalent to one contiguous run over
// lx*ly pixels.
func TestFillRectContiguous(t *testing.T) {
	im := NewImage[colors.RGB32](8, 3)
	c := rgb(1, 2, 3)
	im.FillRect(im.Box(), c)
	for i, v := range im.Buffer()[:8*3] {
		assert.Equal(t, c, v, "index %d", i)
	}
}

func TestFillRectClipping(t *testing.T) {
	im := NewImage[colors.RGB32](4, 4)
	im.FillRect(math3d.B2(-5, 1, -5, 1), rgb(255, 255, 255))
	assert.Equal(t, rgb(255, 255, 255), im.At(0, 0))
	assert.Equal(t, rgb(255, 255, 255), im.At(1, 1))
	assert.Equal(t, colors.RGB32(0), im.At(2, 2))

	im.FillRect(math3d.EmptyBox2(), rgb(1, 1, 1)) // no-op
}

func TestSubImage(t *testing.T) {
	parent := NewImage[colors.RGB32](8, 8)
	child := parent.SubImage(math3d.B2(2, 5, 2, 5), false)
	require.True(t, child.IsValid())
	assert.Equal(t, 4, child.Width())
	assert.Equal(t, 4, child.Height())
	assert.Equal(t, 8, child.Stride())

	// Writes through the child land at the shifted parent location.
	child.DrawPixel(0, 0, rgb(7, 7, 7))
	assert.Equal(t, rgb(7, 7, 7), parent.At(2, 2))

	// Out-of-parent boxes fail without clamping and clamp with it.
	bad := parent.SubImage(math3d.B2(5, 9, 5, 9), false)
	assert.False(t, bad.IsValid())
	clamped := parent.SubImage(math3d.B2(5, 9, 5, 9), true)
	require.True(t, clamped.IsValid())
	assert.Equal(t, 3, clamped.Width())
}

// Filling a sub-image leaves the parent outside the sub-box untouched.
func TestSubImageNonInterference(t *testing.T) {
	parent := NewImage[colors.RGB32](8, 8)
	child := parent.SubImage(math3d.B2(2, 5, 2, 5), false)
	child.FillRect(child.Box(), rgb(255, 255, 255))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 2 && x <= 5 && y >= 2 && y <= 5
			if inside {
				assert.Equal(t, rgb(255, 255, 255), parent.At(x, y), "(%d,%d)", x, y)
			} else {
				assert.Equal(t, colors.RGB32(0), parent.At(x, y), "(%d,%d)", x, y)
			}
		}
	}
}

func TestBlitEqualExtentIdempotent(t *testing.T) {
	src := NewImage[colors.RGB32](5, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			src.DrawPixel(x, y, rgb(uint8(x*20), uint8(y*40), 5))
		}
	}
	dst := NewImage[colors.RGB32](5, 4)
	dst.Blit(src, 0, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, src.At(x, y), dst.At(x, y))
		}
	}
	// Repeating the blit changes nothing.
	snapshot := append([]colors.RGB32(nil), dst.Buffer()...)
	dst.Blit(src, 0, 0)
	assert.Equal(t, snapshot, dst.Buffer())
}

func TestBlitClipping(t *testing.T) {
	src := NewImage[colors.RGB32](4, 4)
	src.FillRect(src.Box(), rgb(9, 9, 9))
	dst := NewImage[colors.RGB32](4, 4)
	dst.Blit(src, -2, -2)
	assert.Equal(t, rgb(9, 9, 9), dst.At(0, 0))
	assert.Equal(t, rgb(9, 9, 9), dst.At(1, 1))
	assert.Equal(t, colors.RGB32(0), dst.At(2, 2))

	dst2 := NewImage[colors.RGB32](4, 4)
	dst2.Blit(src, 3, 3)
	assert.Equal(t, rgb(9, 9, 9), dst2.At(3, 3))
	assert.Equal(t, colors.RGB32(0), dst2.At(2, 2))
}

// A source view may overlap its destination in the same backing buffer;
// row order must be chosen so rows are read before they are clobbered.
func TestBlitOverlap(t *testing.T) {
	for _, down := range []bool{true, false} {
		parent := NewImage[colors.RGB32](4, 8)
		for y := 0; y < 8; y++ {
			for x := 0; x < 4; x++ {
				parent.DrawPixel(x, y, rgb(uint8(x), uint8(y), 0))
			}
		}
		src := parent.SubImage(math3d.B2(0, 3, 0, 5), false)
		want := make([]colors.RGB32, 0, 24)
		for y := 0; y < 6; y++ {
			for x := 0; x < 4; x++ {
				want = append(want, src.At(x, y))
			}
		}
		dy := 2
		if !down {
			// Shift a lower region up instead.
			src = parent.SubImage(math3d.B2(0, 3, 2, 7), false)
			want = want[:0]
			for y := 0; y < 6; y++ {
				for x := 0; x < 4; x++ {
					want = append(want, src.At(x, y))
				}
			}
			dy = -2
		}
		dstY := 0
		if dy > 0 {
			dstY = dy
		}
		parent.Blit(src, 0, dstY)
		for y := 0; y < 6; y++ {
			for x := 0; x < 4; x++ {
				assert.Equal(t, want[y*4+x], parent.At(x, dstY+y), "down=%v (%d,%d)", down, x, y)
			}
		}
	}
}

func TestBlitTransparentAndOpacity(t *testing.T) {
	src := NewImage[colors.RGB32](2, 1)
	key := rgb(255, 0, 255)
	src.DrawPixel(0, 0, key)
	src.DrawPixel(1, 0, rgb(10, 10, 10))

	dst := NewImage[colors.RGB32](2, 1)
	dst.FillRect(dst.Box(), rgb(100, 100, 100))
	dst.BlitOp(src, 0, 0, BlitOp[colors.RGB32]{Transparent: &key})
	assert.Equal(t, rgb(100, 100, 100), dst.At(0, 0))
	assert.Equal(t, rgb(10, 10, 10), dst.At(1, 0))

	dst2 := NewImage[colors.RGB32](2, 1)
	dst2.BlitOp(src, 0, 0, BlitOp[colors.RGB32]{Opacity: 0.5})
	half := dst2.At(1, 0)
	assert.InDelta(t, 5, int(half.R()), 1)
}

func TestDrawLineAxisAligned(t *testing.T) {
	im := NewImage[colors.RGB32](6, 6)
	c := rgb(255, 255, 255)
	im.DrawLine(1, 2, 4, 2, c)
	for x := 1; x <= 4; x++ {
		assert.Equal(t, c, im.At(x, 2))
	}
	assert.Equal(t, colors.RGB32(0), im.At(0, 2))
	assert.Equal(t, colors.RGB32(0), im.At(5, 2))

	im2 := NewImage[colors.RGB32](6, 6)
	im2.DrawLine(3, 5, 3, 1, c)
	for y := 1; y <= 5; y++ {
		assert.Equal(t, c, im2.At(3, y))
	}
}

func TestDrawLineDiagonal(t *testing.T) {
	im := NewImage[colors.RGB32](5, 5)
	c := rgb(255, 0, 0)
	im.DrawLine(0, 0, 4, 4, c)
	for i := 0; i < 5; i++ {
		assert.Equal(t, c, im.At(i, i))
	}
	// Endpoints outside clip silently.
	im.DrawLine(-2, -2, 2, 2, c)
}

func TestGradientEndpoints(t *testing.T) {
	im := NewImage[colors.RGB32](8, 2)
	c1 := rgb(0, 0, 0)
	c2 := rgb(255, 255, 255)
	im.FillRectHGradient(im.Box(), c1, c2)
	assert.Equal(t, c1, im.At(0, 0))
	assert.Equal(t, c2, im.At(7, 0))
	// Monotonic left to right.
	prev := -1
	for x := 0; x < 8; x++ {
		v := int(im.At(x, 0).R())
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}

	im2 := NewImage[colors.RGB32](2, 8)
	im2.FillRectVGradient(im2.Box(), c1, c2)
	assert.Equal(t, c1, im2.At(0, 0))
	assert.Equal(t, c2, im2.At(0, 7))
}

func TestFillRun16BitEquivalence(t *testing.T) {
	// The doubling fill writes the same bytes as a naive loop, for
	// every run length that straddles the chunked path.
	for n := 1; n <= 67; n += 3 {
		im := NewImage[colors.RGB565](n, 1)
		im.DrawFastHLine(0, 0, n, colors.FromRGB565(123, 45, 67))
		for x := 0; x < n; x++ {
			assert.Equal(t, colors.FromRGB565(123, 45, 67), im.At(x, 0))
		}
	}
}
