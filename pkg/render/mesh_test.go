package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// twoTriangleMesh encodes a quad as one two-triangle chain:
// (0,1,2) then, pivoting on the newer vertex, (0,2,3).
func twoTriangleMesh() *Mesh[colors.RGB32] {
	return &Mesh[colors.RGB32]{
		Vertices: []math3d.Vec3{
			{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		},
		Faces:       []uint16{2, 0, 1, 2, 3, 0},
		Color:       colors.F(1, 1, 1),
		Ambient:     1,
		SpecularExp: 0,
		Bounds:      math3d.B3(math3d.V3(-1, -1, 0), math3d.V3(1, 1, 0)),
	}
}

func TestMeshValidate(t *testing.T) {
	m := twoTriangleMesh()
	assert.True(t, m.Validate())
	assert.Equal(t, 2, m.TriangleCount())

	// Missing sentinel.
	bad := &Mesh[colors.RGB32]{Vertices: m.Vertices, Faces: []uint16{2, 0, 1, 2, 3}}
	assert.False(t, bad.Validate())

	// Vertex index out of range.
	bad = &Mesh[colors.RGB32]{Vertices: m.Vertices, Faces: []uint16{1, 0, 1, 9, 0}}
	assert.False(t, bad.Validate())
}

// Drawing a chain-encoded mesh paints the same pixels as issuing its
// triangles individually.
func TestDrawMeshMatchesImmediate(t *testing.T) {
	m := twoTriangleMesh()

	rA, imA := ndcRenderer(4, 4)
	rA.SetCulling(0)
	rA.DrawMesh(m)

	rB, imB := ndcRenderer(4, 4)
	rB.SetCulling(0)
	rB.DrawTriangle(m.Vertices[0], m.Vertices[1], m.Vertices[2])
	rB.DrawTriangle(m.Vertices[0], m.Vertices[2], m.Vertices[3])

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, imB.At(x, y), imA.At(x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, 16, countPixels(imA, colors.FromRGB32(255, 255, 255)))
}

// The other-side strip direction (DBit set) pivots on the older vertex.
func TestDrawMeshOtherSideStrip(t *testing.T) {
	// Chain: (0,1,2), then DBit element 3 gives (2,1,3).
	m := &Mesh[colors.RGB32]{
		Vertices: []math3d.Vec3{
			{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
		},
		Faces:   []uint16{2, 0, 1, 2, DBit | 3, 0},
		Color:   colors.F(1, 1, 1),
		Ambient: 1,
		Bounds:  math3d.B3(math3d.V3(-1, -1, 0), math3d.V3(1, 1, 0)),
	}
	require.True(t, m.Validate())

	rA, imA := ndcRenderer(4, 4)
	rA.SetCulling(0)
	rA.DrawMesh(m)

	rB, imB := ndcRenderer(4, 4)
	rB.SetCulling(0)
	rB.DrawTriangle(m.Vertices[0], m.Vertices[1], m.Vertices[2])
	rB.DrawTriangle(m.Vertices[2], m.Vertices[1], m.Vertices[3])

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, imB.At(x, y), imA.At(x, y), "(%d,%d)", x, y)
		}
	}
}

// A mesh chain renders every link; each keeps its own material color.
func TestDrawMeshChainLinks(t *testing.T) {
	left := &Mesh[colors.RGB32]{
		Vertices: []math3d.Vec3{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: 1}},
		Faces:    []uint16{1, 0, 1, 2, 0},
		Color:    colors.F(1, 0, 0),
		Ambient:  1,
		Bounds:   math3d.B3(math3d.V3(-1, -1, 0), math3d.V3(0, 1, 0)),
	}
	right := &Mesh[colors.RGB32]{
		Vertices: []math3d.Vec3{{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}},
		Faces:    []uint16{1, 0, 1, 2, 0},
		Color:    colors.F(0, 1, 0),
		Ambient:  1,
		Bounds:   math3d.B3(math3d.V3(0, -1, 0), math3d.V3(1, 1, 0)),
	}
	left.Next = right

	r, im := ndcRenderer(8, 8)
	r.SetCulling(0)
	r.DrawMesh(left)
	assert.Greater(t, countPixels(im, colors.FromRGB32(255, 0, 0)), 0)
	assert.Greater(t, countPixels(im, colors.FromRGB32(0, 255, 0)), 0)
}

// A mesh whose bounding box projects outside one frustum plane draws
// nothing.
func TestDrawMeshBoundingBoxReject(t *testing.T) {
	m := twoTriangleMesh()
	r, im := ndcRenderer(4, 4)
	r.SetCulling(0)
	r.SetModelMatrix(math3d.Translate(math3d.V3(10, 0, 0)))
	r.DrawMesh(m)
	assert.Equal(t, 0, countPixels(im, colors.FromRGB32(255, 255, 255)))
}

// DrawMesh restores the renderer's configured material afterwards.
func TestDrawMeshRestoresMaterial(t *testing.T) {
	m := twoTriangleMesh()
	m.Color = colors.F(0, 0, 1)

	r, im := ndcRenderer(4, 4)
	r.SetCulling(0)
	r.DrawMesh(m)
	require.Greater(t, countPixels(im, colors.FromRGB32(0, 0, 255)), 0)

	im.FillScreen(colors.RGB32(0))
	r.DrawTriangle(math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0), math3d.V3(-1, 1, 0))
	assert.Greater(t, countPixels(im, colors.FromRGB32(255, 255, 255)), 0)
}

func TestWireframeMesh(t *testing.T) {
	m := twoTriangleMesh()
	r, im := ndcRenderer(8, 8)
	c := colors.FromRGB32(0, 255, 128)
	r.DrawWireframeMesh(m, c)
	assert.Greater(t, countPixels(im, c), 0)
}

func TestWireframeCubeAndDots(t *testing.T) {
	im := NewImage[colors.RGB32](16, 16)
	r := NewRenderer[colors.RGB32, float32]()
	r.SetImage(im)
	r.SetViewport(16, 16)
	r.SetPerspective(1.0, 1, 0.1, 100)
	r.SetLookAt(math3d.V3(0, 0, 2), math3d.Zero3(), math3d.Up())

	c := colors.FromRGB32(255, 255, 0)
	r.DrawWireframeCube(c)
	assert.Greater(t, countPixels(im, c), 0)

	r.DrawDot3D(math3d.Zero3(), 1, colors.FromRGB32(255, 0, 0))
	assert.Greater(t, countPixels(im, colors.FromRGB32(255, 0, 0)), 0)

	r.DrawPixel3D(math3d.Zero3(), colors.FromRGB32(0, 0, 255))
}
