// Package models builds and imports chain-encoded meshes for the tgx
// renderer.
package models

import (
	"fmt"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
	"github.com/vindar/tgx/pkg/render"
)

// Corner references one triangle corner: a vertex index plus optional
// texcoord and normal indices (-1 when absent).
type Corner struct {
	V, T, N int
}

// Triangle is three corners in winding order.
type Triangle [3]Corner

// Builder accumulates indexed triangles and encodes them into the
// compact face-chain stream.
type Builder struct {
	Vertices  []math3d.Vec3
	Texcoords []math3d.Vec2
	Normals   []math3d.Vec3
	Triangles []Triangle
}

// AddVertex appends a vertex and returns its index.
func (b *Builder) AddVertex(v math3d.Vec3) int {
	b.Vertices = append(b.Vertices, v)
	return len(b.Vertices) - 1
}

// AddTexcoord appends a texture coordinate and returns its index.
func (b *Builder) AddTexcoord(t math3d.Vec2) int {
	b.Texcoords = append(b.Texcoords, t)
	return len(b.Texcoords) - 1
}

// AddNormal appends a unit normal and returns its index.
func (b *Builder) AddNormal(n math3d.Vec3) int {
	b.Normals = append(b.Normals, n)
	return len(b.Normals) - 1
}

// AddTriangle appends one triangle.
func (b *Builder) AddTriangle(t Triangle) {
	b.Triangles = append(b.Triangles, t)
}

// Encode emits the face stream: chains of strip-continued triangles
// terminated by the zero sentinel. Consecutive triangles sharing the
// right edge continue the chain, pivoting on the newer vertex (DBit
// clear) or the older one (DBit set).
func (b *Builder) Encode() []uint16 {
	hasT := len(b.Texcoords) > 0
	hasN := len(b.Normals) > 0

	var out []uint16
	// Corners missing an attribute index while the stream carries that
	// attribute fall back to entry 0.
	idx := func(i int) uint16 {
		if i < 0 {
			return 0
		}
		return uint16(i)
	}
	emit := func(c Corner, dbit bool) {
		code := uint16(c.V)
		if dbit {
			code |= render.DBit
		}
		out = append(out, code)
		if hasT {
			out = append(out, idx(c.T))
		}
		if hasN {
			out = append(out, idx(c.N))
		}
	}

	i := 0
	for i < len(b.Triangles) {
		// Start a chain; patch the length afterwards.
		lenAt := len(out)
		out = append(out, 0)
		t := b.Triangles[i]
		w0, w1, w2 := t[0], t[1], t[2]
		emit(w0, false)
		emit(w1, false)
		emit(w2, false)
		count := uint16(1)
		i++

		for i < len(b.Triangles) {
			next := b.Triangles[i]
			if d, ok := continuesNew(w0, w2, next); ok {
				emit(d, false)
				w1, w2 = w2, d
				count++
				i++
				continue
			}
			if d, ok := continuesOld(w2, w1, next); ok {
				emit(d, true)
				w0, w2 = w2, d
				count++
				i++
				continue
			}
			break
		}
		out[lenAt] = count
	}
	out = append(out, 0)
	return out
}

// continuesNew reports whether t equals (a, b, d) for some d, up to
// rotation, returning d.
func continuesNew(a, b Corner, t Triangle) (Corner, bool) {
	for r := 0; r < 3; r++ {
		if t[r] == a && t[(r+1)%3] == b {
			return t[(r+2)%3], true
		}
	}
	return Corner{}, false
}

// continuesOld is continuesNew for the other-side strip direction.
func continuesOld(a, b Corner, t Triangle) (Corner, bool) {
	return continuesNew(a, b, t)
}

// Decode expands a face stream back into triangles, mirroring the
// window walk the pipeline performs. Invalid streams return an error.
func Decode(faces []uint16, hasT, hasN bool) ([]Triangle, error) {
	var out []Triangle
	i := 0
	read := func() (Corner, bool, error) {
		if i >= len(faces) {
			return Corner{}, false, fmt.Errorf("face stream truncated at %d", i)
		}
		c := Corner{V: int(faces[i] &^ render.DBit), T: -1, N: -1}
		dbit := faces[i]&render.DBit != 0
		i++
		if hasT {
			if i >= len(faces) {
				return Corner{}, false, fmt.Errorf("face stream truncated at %d", i)
			}
			c.T = int(faces[i])
			i++
		}
		if hasN {
			if i >= len(faces) {
				return Corner{}, false, fmt.Errorf("face stream truncated at %d", i)
			}
			c.N = int(faces[i])
			i++
		}
		return c, dbit, nil
	}

	for {
		if i >= len(faces) {
			return nil, fmt.Errorf("missing stream sentinel")
		}
		n := int(faces[i])
		i++
		if n == 0 {
			return out, nil
		}
		a, _, err := read()
		if err != nil {
			return nil, err
		}
		b, _, err := read()
		if err != nil {
			return nil, err
		}
		c, _, err := read()
		if err != nil {
			return nil, err
		}
		out = append(out, Triangle{a, b, c})
		for t := 1; t < n; t++ {
			d, dbit, err := read()
			if err != nil {
				return nil, err
			}
			if dbit {
				a, c = c, d
			} else {
				b, c = c, d
			}
			out = append(out, Triangle{a, b, c})
		}
	}
}

// BuildMesh assembles the builder's content into a renderer mesh,
// enforcing the 16-bit index caps.
func BuildMesh[T colors.Pixel[T]](b *Builder) (*render.Mesh[T], error) {
	if len(b.Vertices) > render.MaxVertices {
		return nil, fmt.Errorf("too many vertices: %d > %d", len(b.Vertices), render.MaxVertices)
	}
	if len(b.Texcoords) > render.MaxTexcoords {
		return nil, fmt.Errorf("too many texcoords: %d > %d", len(b.Texcoords), render.MaxTexcoords)
	}
	if len(b.Normals) > render.MaxNormals {
		return nil, fmt.Errorf("too many normals: %d > %d", len(b.Normals), render.MaxNormals)
	}
	m := &render.Mesh[T]{
		Vertices:    b.Vertices,
		Texcoords:   b.Texcoords,
		Normals:     b.Normals,
		Faces:       b.Encode(),
		Color:       colors.F(1, 1, 1),
		Ambient:     0.1,
		Diffuse:     0.7,
		Specular:    0.5,
		SpecularExp: 16,
		Bounds:      render.ComputeBounds(b.Vertices),
	}
	if !m.Validate() {
		return nil, fmt.Errorf("encoded face stream failed validation")
	}
	return m, nil
}

// SmoothNormals computes area-weighted averaged normals for every
// vertex and rewrites each corner's normal index to its vertex index.
func (b *Builder) SmoothNormals() {
	acc := make([]math3d.Vec3, len(b.Vertices))
	for _, t := range b.Triangles {
		v0 := b.Vertices[t[0].V]
		v1 := b.Vertices[t[1].V]
		v2 := b.Vertices[t[2].V]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, c := range t {
			acc[c.V] = acc[c.V].Add(n)
		}
	}
	b.Normals = make([]math3d.Vec3, len(acc))
	for i, n := range acc {
		b.Normals[i] = n.Normalize()
	}
	for ti := range b.Triangles {
		for ci := range b.Triangles[ti] {
			b.Triangles[ti][ci].N = b.Triangles[ti][ci].V
		}
	}
}
