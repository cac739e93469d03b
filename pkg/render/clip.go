package render

import (
	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// clipVertex carries a clip-space position and the attributes that must
// survive clipping.
type clipVertex struct {
	pos math3d.Vec4
	col colors.Colorf
	uv  math3d.Vec2
}

// Clip half-space indices, processed in this order. There is no far
// plane; geometry beyond the far bound is either discarded whole by the
// outcode test or rasterized with out-of-range depth.
const (
	clipLeft = iota
	clipRight
	clipBottom
	clipTop
	clipNear
	clipPlaneCount
)

// clipDist returns the signed distance of a clip-space position to one
// half-space boundary. k widens the lateral planes slightly past the
// viewport so that edge pixels are never lost to rounding.
func clipDist(p math3d.Vec4, plane int, k float32) float32 {
	switch plane {
	case clipLeft:
		return p.X + k*p.W
	case clipRight:
		return k*p.W - p.X
	case clipBottom:
		return p.Y + k*p.W
	case clipTop:
		return k*p.W - p.Y
	default:
		return p.Z + p.W
	}
}

// lerpClip returns the intersection vertex on the edge a-b at clip
// factor f = da/(da-db), interpolating position, color and texcoord.
func lerpClip(a, b clipVertex, f float32) clipVertex {
	return clipVertex{
		pos: a.pos.Lerp(b.pos, f),
		col: a.col.Blend(b.col, f),
		uv:  a.uv.Lerp(b.uv, f),
	}
}

// clipTriangle clips recursively against the remaining half-spaces
// starting at plane, then hands the surviving triangles to projection.
// Recursion depth is bounded by the plane count; each frame holds at
// most four vertices of scratch.
func (r *Renderer[T, Z]) clipTriangle(plane int, p1, p2, p3 clipVertex) {
	if plane == clipPlaneCount {
		r.projectAndRaster(p1, p2, p3)
		return
	}

	cp1 := clipDist(p1.pos, plane, r.clipK)
	cp2 := clipDist(p2.pos, plane, r.clipK)
	cp3 := clipDist(p3.pos, plane, r.clipK)

	in1, in2, in3 := cp1 >= 0, cp2 >= 0, cp3 >= 0
	switch {
	case in1 && in2 && in3:
		r.clipTriangle(plane+1, p1, p2, p3)

	case !in1 && !in2 && !in3:
		// dropped

	case in1 && !in2 && !in3:
		a := lerpClip(p1, p2, cp1/(cp1-cp2))
		b := lerpClip(p1, p3, cp1/(cp1-cp3))
		r.clipTriangle(plane+1, p1, a, b)
	case !in1 && in2 && !in3:
		a := lerpClip(p2, p3, cp2/(cp2-cp3))
		b := lerpClip(p2, p1, cp2/(cp2-cp1))
		r.clipTriangle(plane+1, p2, a, b)
	case !in1 && !in2 && in3:
		a := lerpClip(p3, p1, cp3/(cp3-cp1))
		b := lerpClip(p3, p2, cp3/(cp3-cp2))
		r.clipTriangle(plane+1, p3, a, b)

	// Two-inside outputs are ordered so that the scan converter's
	// strict edge (between each triangle's second and third vertices)
	// is the internal diagonal for the first piece and the clip-plane
	// edge for the second; surviving pieces of the original edges stay
	// inclusive and shared boundary pixels are not dropped.
	case in1 && in2:
		a := lerpClip(p2, p3, cp2/(cp2-cp3))
		b := lerpClip(p1, p3, cp1/(cp1-cp3))
		r.clipTriangle(plane+1, p2, a, p1)
		r.clipTriangle(plane+1, p1, a, b)
	case in2 && in3:
		a := lerpClip(p3, p1, cp3/(cp3-cp1))
		b := lerpClip(p2, p1, cp2/(cp2-cp1))
		r.clipTriangle(plane+1, p3, a, p2)
		r.clipTriangle(plane+1, p2, a, b)
	default: // in1 && in3
		a := lerpClip(p1, p2, cp1/(cp1-cp2))
		b := lerpClip(p3, p2, cp3/(cp3-cp2))
		r.clipTriangle(plane+1, p1, a, p3)
		r.clipTriangle(plane+1, p3, a, b)
	}
}

// outcode returns the bitmask of frustum bounds the position lies
// outside of: the five clip half-spaces plus the far bound.
func outcode(p math3d.Vec4, k float32) uint8 {
	var c uint8
	for plane := 0; plane < clipPlaneCount; plane++ {
		if clipDist(p, plane, k) < 0 {
			c |= 1 << plane
		}
	}
	if p.Z > p.W {
		c |= 1 << clipPlaneCount
	}
	return c
}
