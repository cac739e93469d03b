package render

import (
	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// DBit marks a face-stream element that pivots on the older vertex when
// continuing a chain (the "other side" strip direction).
const DBit = 0x8000

// Mesh size caps imposed by the 16-bit face stream.
const (
	MaxVertices  = 32767
	MaxTexcoords = 65535
	MaxNormals   = 65535
)

// Mesh is an immutable triangle mesh with chain-encoded faces.
//
// The face stream is a sequence of 16-bit codes forming chains:
//
//	[chain_len n] [elem 0] [elem 1] ... [elem n+1]
//	...
//	0            // sentinel
//
// Each element is a vertex code (DBit | index), followed by a texture
// index when Texcoords is present and a normal index when Normals is
// present. The first three elements of a chain define the first
// triangle; every further element continues the strip, pivoting on the
// newer vertex when its DBit is clear and on the older one when set.
type Mesh[T colors.Pixel[T]] struct {
	Vertices  []math3d.Vec3 // at most MaxVertices entries
	Texcoords []math3d.Vec2 // optional, at most MaxTexcoords entries
	Normals   []math3d.Vec3 // optional unit vectors, at most MaxNormals entries
	Faces     []uint16

	Texture *Image[T]

	// Material.
	Color       colors.Colorf
	Ambient     float32
	Diffuse     float32
	Specular    float32
	SpecularExp int

	Bounds math3d.Box3

	Next *Mesh[T]
}

// Validate checks the face stream invariants: zero-terminated chains,
// strictly positive chain lengths, and every referenced index in range.
func (m *Mesh[T]) Validate() bool {
	if len(m.Vertices) > MaxVertices ||
		len(m.Texcoords) > MaxTexcoords ||
		len(m.Normals) > MaxNormals {
		return false
	}
	elemLen := 1
	if len(m.Texcoords) > 0 {
		elemLen++
	}
	if len(m.Normals) > 0 {
		elemLen++
	}

	f := m.Faces
	i := 0
	for {
		if i >= len(f) {
			return false // missing sentinel
		}
		n := int(f[i])
		i++
		if n == 0 {
			return true
		}
		for e := 0; e < n+2; e++ {
			if i+elemLen > len(f) {
				return false
			}
			vi := int(f[i] &^ DBit)
			if vi >= len(m.Vertices) {
				return false
			}
			i++
			if len(m.Texcoords) > 0 {
				if int(f[i]) >= len(m.Texcoords) {
					return false
				}
				i++
			}
			if len(m.Normals) > 0 {
				if int(f[i]) >= len(m.Normals) {
					return false
				}
				i++
			}
		}
	}
}

// TriangleCount walks the face stream and returns the number of encoded
// triangles (each chain of length n carries n triangles).
func (m *Mesh[T]) TriangleCount() int {
	elemLen := 1
	if len(m.Texcoords) > 0 {
		elemLen++
	}
	if len(m.Normals) > 0 {
		elemLen++
	}
	total := 0
	f := m.Faces
	i := 0
	for i < len(f) {
		n := int(f[i])
		i++
		if n == 0 {
			break
		}
		total += n
		i += (n + 2) * elemLen
	}
	return total
}

// ComputeBounds returns the bounding box of the vertex array.
func ComputeBounds(vertices []math3d.Vec3) math3d.Box3 {
	if len(vertices) == 0 {
		return math3d.Box3{Min: math3d.V3(1, 1, 1), Max: math3d.V3(-1, -1, -1)}
	}
	b := math3d.Box3{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b = b.Extend(v)
	}
	return b
}
