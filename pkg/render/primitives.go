package render

import (
	"github.com/chewxy/math32"

	"github.com/vindar/tgx/pkg/math3d"
)

// DrawCube renders the solid unit cube under the current model
// transform and material.
func (r *Renderer[T, Z]) DrawCube() {
	for _, f := range unitCubeFaces {
		r.DrawQuad(
			unitCubeVerts[f[0]], unitCubeVerts[f[1]],
			unitCubeVerts[f[2]], unitCubeVerts[f[3]],
		)
	}
}

// cubeFaceUV maps each face corner to the full texture.
var cubeFaceUV = [4]math3d.Vec2{
	{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
}

// DrawCubeTextured renders the solid unit cube with the current texture
// repeated on every face.
func (r *Renderer[T, Z]) DrawCubeTextured() {
	for _, f := range unitCubeFaces {
		r.DrawQuadTextured(
			unitCubeVerts[f[0]], unitCubeVerts[f[1]],
			unitCubeVerts[f[2]], unitCubeVerts[f[3]],
			cubeFaceUV[0], cubeFaceUV[1], cubeFaceUV[2], cubeFaceUV[3],
		)
	}
}

// spherePoint returns the unit sphere point for a lat/long grid cell
// corner.
func spherePoint(stack, slice, stacks, slices int) math3d.Vec3 {
	phi := math32.Pi * float32(stack) / float32(stacks)
	theta := 2 * math32.Pi * float32(slice%slices) / float32(slices)
	sp := math32.Sin(phi)
	return math3d.V3(
		sp*math32.Cos(theta),
		math32.Cos(phi),
		sp*math32.Sin(theta),
	)
}

// DrawSphere renders a solid unit sphere tessellated on a lat/long
// grid. Vertex normals equal the positions, so gouraud shading is
// smooth.
func (r *Renderer[T, Z]) DrawSphere(stacks, slices int) {
	if stacks < 2 || slices < 3 {
		return
	}
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			p00 := spherePoint(st, sl, stacks, slices)
			p01 := spherePoint(st, sl+1, stacks, slices)
			p10 := spherePoint(st+1, sl, stacks, slices)
			p11 := spherePoint(st+1, sl+1, stacks, slices)
			if st > 0 {
				r.DrawTriangleShaded(p00, p10, p01, &p00, &p10, &p01)
			}
			if st < stacks-1 {
				r.DrawTriangleShaded(p01, p10, p11, &p01, &p10, &p11)
			}
		}
	}
}
