package render

import (
	"github.com/chewxy/math32"

	"github.com/vindar/tgx/pkg/colors"
)

// rastVertex is a vertex after viewport mapping, ready for scan
// conversion. X and Y are pixel coordinates with Y down. W carries the
// interpolation weight: the reciprocal of the original homogeneous w for
// perspective projection, or 1-z for orthographic, so that larger W is
// nearer in both cases.
type rastVertex struct {
	x, y float32
	w    float32
	col  colors.Colorf
	u, v float32 // texture coordinates premultiplied by the texture size
	// (and by w for perspective-correct interpolation)
}

// uniforms is the per-triangle uniform block shared by the kernels.
// blend is an 8-bit opacity weight for the fragment writes; zero means
// opaque replacement.
type uniforms[T colors.Pixel[T], Z ZDepth] struct {
	im        Image[T]
	zbuf      []Z
	tex       Image[T]
	shader    Shader
	facecolor colors.Colorf
	blend     uint32
	wa, wb    float32
}

// put writes one fragment, honoring the uniform blend weight.
func (u *uniforms[T, Z]) put(row []T, x int, c T) {
	if u.blend != 0 {
		row[x] = row[x].Blend256(c, u.blend)
	} else {
		row[x] = c
	}
}

// subBits is the sub-pixel resolution of the integer edge equations.
const subBits = 8

// edgeSetup holds the integer edge equations and the float interpolation
// planes for one triangle. Sample points sit on the integer pixel
// lattice; a pixel is covered iff O1 > 0 && O2 >= 0 && O3 >= 0, which
// excludes the edge opposite the first vertex and implements the shared
// edge fill rule.
type edgeSetup struct {
	// a*x + b*y + c at fixed-point coordinates; o1 is the edge between
	// vertices 2 and 3 (the barycentric weight of vertex 1), and so on.
	a1, b1, c1 int64
	a2, b2, c2 int64
	a3, b3, c3 int64
	area       int64 // o1+o2+o3, positive for renderable triangles

	minX, maxX int
	minY, maxY int
}

// setupEdges builds the edge equations, clamped to the target image.
// Returns false when the triangle has non-positive area or no covered
// rows.
func setupEdges[T colors.Pixel[T], Z ZDepth](u *uniforms[T, Z], v1, v2, v3 *rastVertex, e *edgeSetup) bool {
	fix := func(f float32) int64 { return int64(math32.Floor(f*(1<<subBits) + 0.5)) }
	x1, y1 := fix(v1.x), fix(v1.y)
	x2, y2 := fix(v2.x), fix(v2.y)
	x3, y3 := fix(v3.x), fix(v3.y)

	e.a1, e.b1 = y2-y3, x3-x2
	e.c1 = -(e.a1*x2 + e.b1*y2)
	e.a2, e.b2 = y3-y1, x1-x3
	e.c2 = -(e.a2*x3 + e.b2*y3)
	e.a3, e.b3 = y1-y2, x2-x1
	e.c3 = -(e.a3*x1 + e.b3*y1)

	e.area = e.a1*x1 + e.b1*y1 + e.c1
	if e.area <= 0 {
		return false
	}

	// Bounds come from the fixed-point coordinates so they agree with
	// the edge equations; an arithmetic shift floors, (v+255)>>8 ceils.
	minY := int((min3i(y1, y2, y3) + (1<<subBits - 1)) >> subBits)
	maxY := int(max3i(y1, y2, y3) >> subBits)
	minX := int((min3i(x1, x2, x3) + (1<<subBits - 1)) >> subBits)
	maxX := int(max3i(x1, x2, x3) >> subBits)
	if minY < 0 {
		minY = 0
	}
	if maxY > u.im.ly-1 {
		maxY = u.im.ly - 1
	}
	if minX < 0 {
		minX = 0
	}
	if maxX > u.im.lx-1 {
		maxX = u.im.lx - 1
	}
	if minY > maxY || minX > maxX {
		return false
	}
	e.minX, e.maxX = minX, maxX
	e.minY, e.maxY = minY, maxY
	return true
}

// rowSpan finds the covered column span on row y by solving each edge
// half-plane in closed form. o1..o3 are the edge offsets at (minX, y).
// ok=false means the row is empty; dead=true means no later row can be
// entered either and the scan should abort.
func (e *edgeSetup) rowSpan(o1, o2, o3 int64) (left, right int, ok, dead bool) {
	// Per-column and per-row steps in sample units.
	sx1, sx2, sx3 := e.a1<<subBits, e.a2<<subBits, e.a3<<subBits
	sy1, sy2, sy3 := e.b1<<subBits, e.b2<<subBits, e.b3<<subBits

	left = e.minX
	adv := int64(0)
	// Thresholds: edge 1 is strict (o1 > 0), edges 2 and 3 inclusive.
	for _, ed := range [3]struct {
		o, sx, sy, thr int64
	}{{o1, sx1, sy1, 1}, {o2, sx2, sy2, 0}, {o3, sx3, sy3, 0}} {
		if ed.o >= ed.thr {
			continue
		}
		if ed.sx <= 0 {
			// The half-plane only recedes to the right; this row is
			// unenterable, and if it also recedes downward the
			// triangle has exited the scan region for good.
			return 0, 0, false, ed.sy <= 0
		}
		d := ed.thr - ed.o
		a := (d + ed.sx - 1) / ed.sx
		if a > adv {
			adv = a
		}
	}
	if adv > int64(e.maxX-e.minX) {
		return 0, 0, false, false
	}
	left = e.minX + int(adv)

	o1 += sx1 * adv
	o2 += sx2 * adv
	o3 += sx3 * adv

	span := int64(e.maxX - left)
	for _, ed := range [3]struct {
		o, sx, thr int64
	}{{o1, sx1, 1}, {o2, sx2, 0}, {o3, sx3, 0}} {
		if ed.sx >= 0 {
			continue
		}
		if ed.o < ed.thr {
			return 0, 0, false, false
		}
		s := (ed.o - ed.thr) / (-ed.sx)
		if s < span {
			span = s
		}
	}
	if span < 0 {
		return 0, 0, false, false
	}
	return left, left + int(span), true, false
}

// interp is a screen-space linear interpolant with precomputed per-column
// increment.
type interp struct {
	v1, v2, v3 float32 // vertex values
	dx         float32 // increment per column
	inv        float32 // 1/area
}

func makeInterp(e *edgeSetup, v1, v2, v3 float32) interp {
	inv := 1.0 / float32(e.area)
	return interp{
		v1: v1, v2: v2, v3: v3,
		dx:  (float32(e.a1)*v1 + float32(e.a2)*v2 + float32(e.a3)*v3) * float32(int64(1)<<subBits) * inv,
		inv: inv,
	}
}

// at evaluates the interpolant from the edge offsets at a sample.
func (ip *interp) at(o1, o2, o3 int64) float32 {
	return (float32(o1)*ip.v1 + float32(o2)*ip.v2 + float32(o3)*ip.v3) * ip.inv
}

// rasterizeTriangle dispatches the kernel selected by the shader mask.
// Vertices must already be viewport-mapped with positive signed area
// (back-face culling happens one level up).
func rasterizeTriangle[T colors.Pixel[T], Z ZDepth](u *uniforms[T, Z], v1, v2, v3 *rastVertex) {
	if !u.im.IsValid() {
		return
	}
	textured := u.shader.Has(ShaderTexture) && u.tex.IsValid()
	gouraud := u.shader.Has(ShaderGouraud)
	switch {
	case textured && gouraud:
		rasterGouraudTex(u, v1, v2, v3)
	case textured:
		rasterFlatTex(u, v1, v2, v3)
	case gouraud:
		rasterGouraud(u, v1, v2, v3)
	default:
		rasterFlat(u, v1, v2, v3)
	}
}

func min3i(a, b, c int64) int64 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3i(a, b, c int64) int64 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
