package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
	"github.com/vindar/tgx/pkg/render"
)

func quadBuilder() *Builder {
	var b Builder
	b.AddVertex(math3d.V3(0, 0, 0))
	b.AddVertex(math3d.V3(1, 0, 0))
	b.AddVertex(math3d.V3(1, 1, 0))
	b.AddVertex(math3d.V3(0, 1, 0))
	c := func(v int) Corner { return Corner{V: v, T: -1, N: -1} }
	b.AddTriangle(Triangle{c(0), c(1), c(2)})
	b.AddTriangle(Triangle{c(0), c(2), c(3)})
	return &b
}

// Encoding triangles as chains and decoding yields the same sequence.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := quadBuilder()
	faces := b.Encode()
	got, err := Decode(faces, false, false)
	require.NoError(t, err)
	assert.Equal(t, b.Triangles, got)
}

// A fan around one pivot encodes as a single chain.
func TestEncodeFanSingleChain(t *testing.T) {
	var b Builder
	for i := 0; i < 6; i++ {
		b.AddVertex(math3d.V3(float32(i), 0, 0))
	}
	c := func(v int) Corner { return Corner{V: v, T: -1, N: -1} }
	for i := 1; i < 5; i++ {
		b.AddTriangle(Triangle{c(0), c(i), c(i + 1)})
	}
	faces := b.Encode()
	// One chain of 4 triangles: [4] + 6 elements + sentinel.
	assert.Equal(t, uint16(4), faces[0])
	assert.Equal(t, 8, len(faces))

	got, err := Decode(faces, false, false)
	require.NoError(t, err)
	assert.Equal(t, b.Triangles, got)
}

// Unrelated triangles split into separate chains and still round-trip.
func TestEncodeDisjointTriangles(t *testing.T) {
	var b Builder
	for i := 0; i < 9; i++ {
		b.AddVertex(math3d.V3(float32(i), 0, 0))
	}
	c := func(v int) Corner { return Corner{V: v, T: -1, N: -1} }
	b.AddTriangle(Triangle{c(0), c(1), c(2)})
	b.AddTriangle(Triangle{c(3), c(4), c(5)})
	b.AddTriangle(Triangle{c(6), c(7), c(8)})
	faces := b.Encode()
	got, err := Decode(faces, false, false)
	require.NoError(t, err)
	assert.Equal(t, b.Triangles, got)
}

// Round trip with texture and normal indices interleaved.
func TestEncodeDecodeWithAttributes(t *testing.T) {
	b := quadBuilder()
	for i := range b.Vertices {
		b.AddTexcoord(math3d.V2(float32(i), 0))
		b.AddNormal(math3d.V3(0, 0, 1))
	}
	for ti := range b.Triangles {
		for ci := range b.Triangles[ti] {
			b.Triangles[ti][ci].T = b.Triangles[ti][ci].V
			b.Triangles[ti][ci].N = b.Triangles[ti][ci].V
		}
	}
	faces := b.Encode()
	got, err := Decode(faces, true, true)
	require.NoError(t, err)
	assert.Equal(t, b.Triangles, got)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]uint16{2, 0, 1}, false, false)
	assert.Error(t, err)
	_, err = Decode([]uint16{1, 0, 1, 2}, false, false)
	assert.Error(t, err)

	out, err := Decode([]uint16{0}, false, false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildMesh(t *testing.T) {
	m, err := BuildMesh[colors.RGB32](quadBuilder())
	require.NoError(t, err)
	assert.True(t, m.Validate())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, math3d.V3(0, 0, 0), m.Bounds.Min)
	assert.Equal(t, math3d.V3(1, 1, 0), m.Bounds.Max)
}

func TestBuildMeshCaps(t *testing.T) {
	var b Builder
	b.Vertices = make([]math3d.Vec3, render.MaxVertices+1)
	_, err := BuildMesh[colors.RGB32](&b)
	assert.Error(t, err)
}

func TestSmoothNormals(t *testing.T) {
	b := quadBuilder()
	b.SmoothNormals()
	require.Len(t, b.Normals, len(b.Vertices))
	for _, n := range b.Normals {
		assert.InDelta(t, 1, float64(n.Len()), 1e-5)
		assert.InDelta(t, 1, float64(n.Z), 1e-5)
	}
	for _, tri := range b.Triangles {
		for _, c := range tri {
			assert.Equal(t, c.V, c.N)
		}
	}
}

func TestCubeMesh(t *testing.T) {
	m := Cube[colors.RGB32]()
	require.NotNil(t, m)
	assert.True(t, m.Validate())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, math3d.V3(-0.5, -0.5, -0.5), m.Bounds.Min)
	assert.Equal(t, math3d.V3(0.5, 0.5, 0.5), m.Bounds.Max)
}

func TestSphereMesh(t *testing.T) {
	m := Sphere[colors.RGB32](8, 12)
	require.NotNil(t, m)
	assert.True(t, m.Validate())
	// stacks*slices quads minus the two polar rings of single triangles.
	assert.Equal(t, 2*8*12-2*12, m.TriangleCount())
	for _, n := range m.Normals {
		assert.InDelta(t, 1, float64(n.Len()), 1e-5)
	}
	assert.Nil(t, Sphere[colors.RGB32](1, 2))
}

func TestLoadGLBMissingFile(t *testing.T) {
	_, err := LoadGLB[colors.RGB32]("does-not-exist.glb")
	assert.Error(t, err)
}
