package render

import (
	"github.com/vindar/tgx/pkg/math3d"
)

// unitCubeVerts lists the corners of the axis-aligned unit cube centered
// at the origin.
var unitCubeVerts = [8]math3d.Vec3{
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
}

// unitCubeEdges lists the 12 cube edges as corner index pairs.
var unitCubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// unitCubeFaces lists the 6 cube faces as corner quads with outward
// winding.
var unitCubeFaces = [6][4]int{
	{0, 3, 2, 1}, // back  (-Z)
	{4, 5, 6, 7}, // front (+Z)
	{0, 4, 7, 3}, // left  (-X)
	{1, 2, 6, 5}, // right (+X)
	{3, 7, 6, 2}, // top   (+Y)
	{0, 1, 5, 4}, // bottom (-Y)
}

// DrawLine3D projects a model-space segment and draws it with the
// image's line routine. Segments behind the eye are skipped.
func (r *Renderer[T, Z]) DrawLine3D(p1, p2 math3d.Vec3, c T) {
	if !r.valid() {
		return
	}
	x1, y1, ok1 := r.worldToScreen(p1)
	x2, y2, ok2 := r.worldToScreen(p2)
	if !ok1 || !ok2 {
		return
	}
	r.im.DrawLine(int(x1), int(y1), int(x2), int(y2), c)
}

// DrawPixel3D projects a model-space point and writes a single pixel.
func (r *Renderer[T, Z]) DrawPixel3D(p math3d.Vec3, c T) {
	if !r.valid() {
		return
	}
	x, y, ok := r.worldToScreen(p)
	if !ok {
		return
	}
	r.im.DrawPixel(int(x), int(y), c)
}

// DrawDot3D projects a model-space point and fills a (2s+1)-pixel-wide
// square dot around it.
func (r *Renderer[T, Z]) DrawDot3D(p math3d.Vec3, s int, c T) {
	if !r.valid() || s < 0 {
		return
	}
	x, y, ok := r.worldToScreen(p)
	if !ok {
		return
	}
	box := math3d.B2(int(x)-s, int(x)+s, int(y)-s, int(y)+s)
	r.im.FillRect(box, c)
}

// DrawWireframeTriangle draws the three edges of a triangle.
func (r *Renderer[T, Z]) DrawWireframeTriangle(p1, p2, p3 math3d.Vec3, c T) {
	r.DrawLine3D(p1, p2, c)
	r.DrawLine3D(p2, p3, c)
	r.DrawLine3D(p3, p1, c)
}

// DrawWireframeQuad draws the four outer edges of a quad.
func (r *Renderer[T, Z]) DrawWireframeQuad(p1, p2, p3, p4 math3d.Vec3, c T) {
	r.DrawLine3D(p1, p2, c)
	r.DrawLine3D(p2, p3, c)
	r.DrawLine3D(p3, p4, c)
	r.DrawLine3D(p4, p1, c)
}

// DrawWireframeCube draws the unit cube under the current model
// transform.
func (r *Renderer[T, Z]) DrawWireframeCube(c T) {
	for _, e := range unitCubeEdges {
		r.DrawLine3D(unitCubeVerts[e[0]], unitCubeVerts[e[1]], c)
	}
}

// DrawWireframeSphere draws a lat/long wireframe of the unit sphere.
func (r *Renderer[T, Z]) DrawWireframeSphere(stacks, slices int, c T) {
	if stacks < 2 || slices < 3 {
		return
	}
	for st := 0; st <= stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			p00 := spherePoint(st, sl, stacks, slices)
			if st < stacks {
				r.DrawLine3D(p00, spherePoint(st+1, sl, stacks, slices), c)
			}
			if st > 0 && st < stacks {
				r.DrawLine3D(p00, spherePoint(st, sl+1, stacks, slices), c)
			}
		}
	}
}

// DrawWireframeMesh draws every face-stream edge of a mesh chain.
func (r *Renderer[T, Z]) DrawWireframeMesh(m *Mesh[T], c T) {
	if !r.valid() {
		return
	}
	for ; m != nil; m = m.Next {
		r.wireframeSingleMesh(m, c)
	}
}

func (r *Renderer[T, Z]) wireframeSingleMesh(m *Mesh[T], c T) {
	skip := 0
	if len(m.Texcoords) > 0 {
		skip++
	}
	if len(m.Normals) > 0 {
		skip++
	}
	f := m.Faces
	i := 0
	readVert := func() (math3d.Vec3, bool) {
		if i >= len(f) {
			return math3d.Vec3{}, false
		}
		vi := int(f[i] &^ DBit)
		i += 1 + skip
		if vi >= len(m.Vertices) {
			return math3d.Vec3{}, false
		}
		return m.Vertices[vi], true
	}
	for i < len(f) {
		n := int(f[i])
		i++
		if n == 0 {
			break
		}
		var a, b, cc math3d.Vec3
		var ok bool
		if a, ok = readVert(); !ok {
			return
		}
		if b, ok = readVert(); !ok {
			return
		}
		for t := 0; t < n; t++ {
			pivotOld := t > 0 && i < len(f) && f[i]&DBit != 0
			if t > 0 {
				if pivotOld {
					a = cc
				} else {
					b = cc
				}
			}
			if cc, ok = readVert(); !ok {
				return
			}
			r.DrawWireframeTriangle(a, b, cc, c)
		}
	}
}
