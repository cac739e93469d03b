package render

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindar/tgx/pkg/colors"
)

// coverageOracle reproduces the covered-pixel rule (O1 > 0, O2 >= 0,
// O3 >= 0 at integer sample points) by direct evaluation, for checking
// the scanline walk against first principles.
func coverageOracle(lx, ly int, v1, v2, v3 *rastVertex) map[[2]int]bool {
	// Match setupEdges rounding exactly (floor of f*256+0.5).
	fix := func(f float32) int64 {
		v := f*256 + 0.5
		i := int64(v)
		if float32(i) > v {
			i--
		}
		return i
	}
	x1, y1 := fix(v1.x), fix(v1.y)
	x2, y2 := fix(v2.x), fix(v2.y)
	x3, y3 := fix(v3.x), fix(v3.y)

	a1, b1 := y2-y3, x3-x2
	c1 := -(a1*x2 + b1*y2)
	a2, b2 := y3-y1, x1-x3
	c2 := -(a2*x3 + b2*y3)
	a3, b3 := y1-y2, x2-x1
	c3 := -(a3*x1 + b3*y1)

	area := a1*x1 + b1*y1 + c1
	out := map[[2]int]bool{}
	if area <= 0 {
		return out
	}
	for y := 0; y < ly; y++ {
		for x := 0; x < lx; x++ {
			px, py := int64(x)<<8, int64(y)<<8
			o1 := a1*px + b1*py + c1
			o2 := a2*px + b2*py + c2
			o3 := a3*px + b3*py + c3
			if o1 > 0 && o2 >= 0 && o3 >= 0 {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func rasterCoverage(lx, ly int, v1, v2, v3 *rastVertex) map[[2]int]bool {
	im := NewImage[colors.RGB32](lx, ly)
	u := uniforms[colors.RGB32, float32]{
		im:        im,
		shader:    ShaderFlat | ShaderNoTexture | ShaderNoZBuffer | ShaderOrthographic,
		facecolor: colors.F(1, 1, 1),
	}
	rasterizeTriangle(&u, v1, v2, v3)
	out := map[[2]int]bool{}
	for y := 0; y < ly; y++ {
		for x := 0; x < lx; x++ {
			if im.At(x, y) != 0 {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func vtx(x, y float32) rastVertex {
	return rastVertex{x: x, y: y, w: 1, col: colors.F(1, 1, 1)}
}

// orient returns the vertices reordered to positive signed area.
func orient(v1, v2, v3 rastVertex) (rastVertex, rastVertex, rastVertex) {
	area := (v2.x-v1.x)*(v3.y-v1.y) - (v2.y-v1.y)*(v3.x-v1.x)
	if area < 0 {
		return v1, v3, v2
	}
	return v1, v2, v3
}

func TestScanMatchesOracleHalfSquare(t *testing.T) {
	v1, v2, v3 := vtx(0, 0), vtx(4, 0), vtx(0, 4)
	got := rasterCoverage(4, 4, &v1, &v2, &v3)
	want := coverageOracle(4, 4, &v1, &v2, &v3)
	assert.Equal(t, want, got)
	// The lower-left diagonal half of the 4x4 grid: exactly 10 pixels,
	// diagonal excluded by the strict edge.
	assert.Len(t, got, 10)
	assert.True(t, got[[2]int{0, 0}])
	assert.True(t, got[[2]int{3, 0}])
	assert.True(t, got[[2]int{0, 3}])
	assert.False(t, got[[2]int{3, 3}])
}

func TestScanMatchesOracleRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		v1 := vtx(rng.Float32()*12-2, rng.Float32()*12-2)
		v2 := vtx(rng.Float32()*12-2, rng.Float32()*12-2)
		v3 := vtx(rng.Float32()*12-2, rng.Float32()*12-2)
		a, b, c := orient(v1, v2, v3)
		got := rasterCoverage(8, 8, &a, &b, &c)
		want := coverageOracle(8, 8, &a, &b, &c)
		require.Equal(t, want, got, "case %d: %v %v %v", i, v1, v2, v3)
	}
}

func TestDegenerateTriangle(t *testing.T) {
	// Two identical vertices: zero area, nothing drawn, no panic.
	v1, v2, v3 := vtx(1, 1), vtx(1, 1), vtx(3, 3)
	got := rasterCoverage(4, 4, &v1, &v2, &v3)
	assert.Empty(t, got)
}

func TestTriangleOutsideImage(t *testing.T) {
	v1, v2, v3 := vtx(10, 10), vtx(14, 10), vtx(10, 14)
	got := rasterCoverage(4, 4, &v1, &v2, &v3)
	assert.Empty(t, got)

	v1, v2, v3 = vtx(-10, -10), vtx(-6, -10), vtx(-10, -6)
	got = rasterCoverage(4, 4, &v1, &v2, &v3)
	assert.Empty(t, got)
}

// Two triangles sharing the image diagonal tile the whole square; with
// depth testing on, the shared edge is never written twice.
func TestSharedEdgeWithDepth(t *testing.T) {
	im := NewImage[colors.RGB32](4, 4)
	zbuf := make([]float32, 16)
	u := uniforms[colors.RGB32, float32]{
		im:        im,
		zbuf:      zbuf,
		shader:    ShaderFlat | ShaderNoTexture | ShaderZBuffer | ShaderOrthographic,
		facecolor: colors.F(1, 0, 0),
	}
	a1, a2, a3 := vtx(0, 0), vtx(4, 0), vtx(4, 4)
	rasterizeTriangle(&u, &a1, &a2, &a3)
	writes := 0
	for _, z := range zbuf {
		if z != 0 {
			writes++
		}
	}

	u.facecolor = colors.F(0, 1, 0)
	b1, b2, b3 := vtx(0, 0), vtx(4, 4), vtx(0, 4)
	rasterizeTriangle(&u, &b1, &b2, &b3)

	// Every pixel covered exactly once overall: pixels already owned by
	// the first triangle kept their color (equal depth loses).
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.NotEqual(t, colors.RGB32(0), im.At(x, y), "(%d,%d) uncovered", x, y)
		}
	}
	assert.Greater(t, writes, 0)
}

func TestGouraudInterpolatesVertexColors(t *testing.T) {
	im := NewImage[colors.RGB32](4, 4)
	u := uniforms[colors.RGB32, float32]{
		im:     im,
		shader: ShaderGouraud | ShaderNoTexture | ShaderNoZBuffer | ShaderOrthographic,
	}
	v1 := rastVertex{x: 0, y: 0, w: 1, col: colors.F(1, 0, 0)}
	v2 := rastVertex{x: 4, y: 0, w: 1, col: colors.F(0, 1, 0)}
	v3 := rastVertex{x: 2, y: 4, w: 1, col: colors.F(0, 0, 1)}
	rasterizeTriangle(&u, &v1, &v2, &v3)

	// Pixel (2,2) carries the barycentric mix of the three colors:
	// weights (1/4, 1/4, 1/2) for this geometry.
	c := im.At(2, 2)
	assert.InDelta(t, 64, int(c.R()), 1)
	assert.InDelta(t, 64, int(c.G()), 1)
	assert.InDelta(t, 128, int(c.B()), 1)

	// Near each vertex the color approaches that vertex's color.
	corner := im.At(0, 0)
	assert.Greater(t, int(corner.R()), 200)
	assert.Less(t, int(corner.G()), 60)
}
