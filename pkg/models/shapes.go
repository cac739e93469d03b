package models

import (
	"github.com/chewxy/math32"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
	"github.com/vindar/tgx/pkg/render"
)

// cubeCorner positions of the unit cube centered at the origin.
var cubeCorners = [8]math3d.Vec3{
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
}

var cubeFaces = [6]struct {
	corners [4]int
	normal  math3d.Vec3
}{
	{[4]int{0, 3, 2, 1}, math3d.Vec3{Z: -1}},
	{[4]int{4, 5, 6, 7}, math3d.Vec3{Z: 1}},
	{[4]int{0, 4, 7, 3}, math3d.Vec3{X: -1}},
	{[4]int{1, 2, 6, 5}, math3d.Vec3{X: 1}},
	{[4]int{3, 7, 6, 2}, math3d.Vec3{Y: 1}},
	{[4]int{0, 1, 5, 4}, math3d.Vec3{Y: -1}},
}

// Cube builds a unit cube mesh with per-face normals and full-face
// texture coordinates.
func Cube[T colors.Pixel[T]]() *render.Mesh[T] {
	var b Builder
	uv := [4]int{
		b.AddTexcoord(math3d.V2(0, 0)),
		b.AddTexcoord(math3d.V2(1, 0)),
		b.AddTexcoord(math3d.V2(1, 1)),
		b.AddTexcoord(math3d.V2(0, 1)),
	}
	for _, v := range cubeCorners {
		b.AddVertex(v)
	}
	for _, f := range cubeFaces {
		n := b.AddNormal(f.normal)
		c0 := Corner{V: f.corners[0], T: uv[0], N: n}
		c1 := Corner{V: f.corners[1], T: uv[1], N: n}
		c2 := Corner{V: f.corners[2], T: uv[2], N: n}
		c3 := Corner{V: f.corners[3], T: uv[3], N: n}
		b.AddTriangle(Triangle{c0, c1, c2})
		b.AddTriangle(Triangle{c0, c2, c3})
	}
	m, _ := BuildMesh[T](&b)
	return m
}

// Sphere builds a unit UV-sphere mesh on a lat/long grid with smooth
// normals (each normal equals its vertex position).
func Sphere[T colors.Pixel[T]](stacks, slices int) *render.Mesh[T] {
	if stacks < 2 || slices < 3 {
		return nil
	}
	var b Builder
	idx := func(st, sl int) int { return st*(slices+1) + sl }
	for st := 0; st <= stacks; st++ {
		phi := math32.Pi * float32(st) / float32(stacks)
		sp, cp := math32.Sin(phi), math32.Cos(phi)
		for sl := 0; sl <= slices; sl++ {
			theta := 2 * math32.Pi * float32(sl) / float32(slices)
			p := math3d.V3(sp*math32.Cos(theta), cp, sp*math32.Sin(theta))
			b.AddVertex(p)
			b.AddNormal(p)
			b.AddTexcoord(math3d.V2(float32(sl)/float32(slices), float32(st)/float32(stacks)))
		}
	}
	corner := func(st, sl int) Corner {
		i := idx(st, sl)
		return Corner{V: i, T: i, N: i}
	}
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			if st > 0 {
				b.AddTriangle(Triangle{corner(st, sl), corner(st+1, sl), corner(st, sl+1)})
			}
			if st < stacks-1 {
				b.AddTriangle(Triangle{corner(st, sl+1), corner(st+1, sl), corner(st+1, sl+1)})
			}
		}
	}
	m, _ := BuildMesh[T](&b)
	return m
}
