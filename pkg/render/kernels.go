package render

import (
	"github.com/chewxy/math32"

	"github.com/vindar/tgx/pkg/colors"
)

// The four scan loops below, doubled by the depth-test flag hoisted out
// of the dispatch, cover the eight kernel variants. Orthographic targets
// skip the per-pixel reciprocal inside the textured loops; untextured
// loops never take one.

func rasterFlat[T colors.Pixel[T], Z ZDepth](u *uniforms[T, Z], v1, v2, v3 *rastVertex) {
	var e edgeSetup
	if !setupEdges(u, v1, v2, v3, &e) {
		return
	}
	zb := u.zbuf != nil && u.shader.Has(ShaderZBuffer)
	var zero T
	col := zero.FromColor(u.facecolor)
	cw := makeInterp(&e, v1.w, v2.w, v3.w)

	px := int64(e.minX) << subBits
	py := int64(e.minY) << subBits
	o1 := e.a1*px + e.b1*py + e.c1
	o2 := e.a2*px + e.b2*py + e.c2
	o3 := e.a3*px + e.b3*py + e.c3

	for y := e.minY; y <= e.maxY; y++ {
		left, right, ok, dead := e.rowSpan(o1, o2, o3)
		if dead {
			return
		}
		if ok {
			adv := int64(left - e.minX)
			ro1 := o1 + (e.a1<<subBits)*adv
			ro2 := o2 + (e.a2<<subBits)*adv
			ro3 := o3 + (e.a3<<subBits)*adv
			w := cw.at(ro1, ro2, ro3)
			row := u.im.buf[y*u.im.stride:]
			var zrow []Z
			if zb {
				zrow = u.zbuf[y*u.im.lx:]
			}
			for x := left; x <= right; x++ {
				if zb {
					d := toDepth[Z](w, u.wa, u.wb)
					if d > zrow[x] {
						zrow[x] = d
						u.put(row, x, col)
					}
				} else {
					u.put(row, x, col)
				}
				w += cw.dx
			}
		}
		o1 += e.b1 << subBits
		o2 += e.b2 << subBits
		o3 += e.b3 << subBits
	}
}

func rasterGouraud[T colors.Pixel[T], Z ZDepth](u *uniforms[T, Z], v1, v2, v3 *rastVertex) {
	var e edgeSetup
	if !setupEdges(u, v1, v2, v3, &e) {
		return
	}
	zb := u.zbuf != nil && u.shader.Has(ShaderZBuffer)
	var zero T
	cw := makeInterp(&e, v1.w, v2.w, v3.w)
	// Vertex colors interpolate linearly in screen space, which is
	// acceptable for modest specular exponents.
	cr := makeInterp(&e, v1.col.R*255, v2.col.R*255, v3.col.R*255)
	cg := makeInterp(&e, v1.col.G*255, v2.col.G*255, v3.col.G*255)
	cb := makeInterp(&e, v1.col.B*255, v2.col.B*255, v3.col.B*255)

	px := int64(e.minX) << subBits
	py := int64(e.minY) << subBits
	o1 := e.a1*px + e.b1*py + e.c1
	o2 := e.a2*px + e.b2*py + e.c2
	o3 := e.a3*px + e.b3*py + e.c3

	for y := e.minY; y <= e.maxY; y++ {
		left, right, ok, dead := e.rowSpan(o1, o2, o3)
		if dead {
			return
		}
		if ok {
			adv := int64(left - e.minX)
			ro1 := o1 + (e.a1<<subBits)*adv
			ro2 := o2 + (e.a2<<subBits)*adv
			ro3 := o3 + (e.a3<<subBits)*adv
			w := cw.at(ro1, ro2, ro3)
			r := cr.at(ro1, ro2, ro3)
			g := cg.at(ro1, ro2, ro3)
			b := cb.at(ro1, ro2, ro3)
			row := u.im.buf[y*u.im.stride:]
			var zrow []Z
			if zb {
				zrow = u.zbuf[y*u.im.lx:]
			}
			for x := left; x <= right; x++ {
				if !zb {
					u.put(row, x, zero.FromRGB(chan8(r), chan8(g), chan8(b)))
				} else {
					d := toDepth[Z](w, u.wa, u.wb)
					if d > zrow[x] {
						zrow[x] = d
						u.put(row, x, zero.FromRGB(chan8(r), chan8(g), chan8(b)))
					}
				}
				w += cw.dx
				r += cr.dx
				g += cg.dx
				b += cb.dx
			}
		}
		o1 += e.b1 << subBits
		o2 += e.b2 << subBits
		o3 += e.b3 << subBits
	}
}

func rasterFlatTex[T colors.Pixel[T], Z ZDepth](u *uniforms[T, Z], v1, v2, v3 *rastVertex) {
	var e edgeSetup
	if !setupEdges(u, v1, v2, v3, &e) {
		return
	}
	zb := u.zbuf != nil && u.shader.Has(ShaderZBuffer)
	persp := u.shader.Has(ShaderPerspective)
	bilinear := u.shader.Has(ShaderTextureBilinear)
	mr := mod256(u.facecolor.R)
	mg := mod256(u.facecolor.G)
	mb := mod256(u.facecolor.B)

	cw := makeInterp(&e, v1.w, v2.w, v3.w)
	tx := makeInterp(&e, v1.u, v2.u, v3.u)
	ty := makeInterp(&e, v1.v, v2.v, v3.v)

	px := int64(e.minX) << subBits
	py := int64(e.minY) << subBits
	o1 := e.a1*px + e.b1*py + e.c1
	o2 := e.a2*px + e.b2*py + e.c2
	o3 := e.a3*px + e.b3*py + e.c3

	for y := e.minY; y <= e.maxY; y++ {
		left, right, ok, dead := e.rowSpan(o1, o2, o3)
		if dead {
			return
		}
		if ok {
			adv := int64(left - e.minX)
			ro1 := o1 + (e.a1<<subBits)*adv
			ro2 := o2 + (e.a2<<subBits)*adv
			ro3 := o3 + (e.a3<<subBits)*adv
			w := cw.at(ro1, ro2, ro3)
			fu := tx.at(ro1, ro2, ro3)
			fv := ty.at(ro1, ro2, ro3)
			row := u.im.buf[y*u.im.stride:]
			var zrow []Z
			if zb {
				zrow = u.zbuf[y*u.im.lx:]
			}
			for x := left; x <= right; x++ {
				write := true
				var d Z
				if zb {
					d = toDepth[Z](w, u.wa, u.wb)
					write = d > zrow[x]
				}
				if write {
					sx, sy := fu, fv
					if persp {
						iw := 1.0 / w
						sx *= iw
						sy *= iw
					}
					var texel T
					if bilinear {
						texel = texelBilinear(u.tex, u.shader, sx, sy)
					} else {
						texel = texelNearest(u.tex, u.shader, sx, sy)
					}
					u.put(row, x, texel.Mult256(mr, mg, mb))
					if zb {
						zrow[x] = d
					}
				}
				w += cw.dx
				fu += tx.dx
				fv += ty.dx
			}
		}
		o1 += e.b1 << subBits
		o2 += e.b2 << subBits
		o3 += e.b3 << subBits
	}
}

func rasterGouraudTex[T colors.Pixel[T], Z ZDepth](u *uniforms[T, Z], v1, v2, v3 *rastVertex) {
	var e edgeSetup
	if !setupEdges(u, v1, v2, v3, &e) {
		return
	}
	zb := u.zbuf != nil && u.shader.Has(ShaderZBuffer)
	persp := u.shader.Has(ShaderPerspective)
	bilinear := u.shader.Has(ShaderTextureBilinear)

	cw := makeInterp(&e, v1.w, v2.w, v3.w)
	tx := makeInterp(&e, v1.u, v2.u, v3.u)
	ty := makeInterp(&e, v1.v, v2.v, v3.v)
	cr := makeInterp(&e, v1.col.R*256, v2.col.R*256, v3.col.R*256)
	cg := makeInterp(&e, v1.col.G*256, v2.col.G*256, v3.col.G*256)
	cb := makeInterp(&e, v1.col.B*256, v2.col.B*256, v3.col.B*256)

	px := int64(e.minX) << subBits
	py := int64(e.minY) << subBits
	o1 := e.a1*px + e.b1*py + e.c1
	o2 := e.a2*px + e.b2*py + e.c2
	o3 := e.a3*px + e.b3*py + e.c3

	for y := e.minY; y <= e.maxY; y++ {
		left, right, ok, dead := e.rowSpan(o1, o2, o3)
		if dead {
			return
		}
		if ok {
			adv := int64(left - e.minX)
			ro1 := o1 + (e.a1<<subBits)*adv
			ro2 := o2 + (e.a2<<subBits)*adv
			ro3 := o3 + (e.a3<<subBits)*adv
			w := cw.at(ro1, ro2, ro3)
			fu := tx.at(ro1, ro2, ro3)
			fv := ty.at(ro1, ro2, ro3)
			r := cr.at(ro1, ro2, ro3)
			g := cg.at(ro1, ro2, ro3)
			b := cb.at(ro1, ro2, ro3)
			row := u.im.buf[y*u.im.stride:]
			var zrow []Z
			if zb {
				zrow = u.zbuf[y*u.im.lx:]
			}
			for x := left; x <= right; x++ {
				write := true
				var d Z
				if zb {
					d = toDepth[Z](w, u.wa, u.wb)
					write = d > zrow[x]
				}
				if write {
					sx, sy := fu, fv
					if persp {
						iw := 1.0 / w
						sx *= iw
						sy *= iw
					}
					var texel T
					if bilinear {
						texel = texelBilinear(u.tex, u.shader, sx, sy)
					} else {
						texel = texelNearest(u.tex, u.shader, sx, sy)
					}
					u.put(row, x, texel.Mult256(chan256(r), chan256(g), chan256(b)))
					if zb {
						zrow[x] = d
					}
				}
				w += cw.dx
				fu += tx.dx
				fv += ty.dx
				r += cr.dx
				g += cg.dx
				b += cb.dx
			}
		}
		o1 += e.b1 << subBits
		o2 += e.b2 << subBits
		o3 += e.b3 << subBits
	}
}

// wrapTexel maps a texel index to the texture domain, either by
// power-of-two bitmask or by clamping to the edge.
func wrapTexel(i, size int, sh Shader) int {
	if sh.Has(ShaderTextureWrapPow2) {
		return i & (size - 1)
	}
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// texelNearest samples the nearest texel at (fx, fy) in texel units.
func texelNearest[T colors.Pixel[T]](tex Image[T], sh Shader, fx, fy float32) T {
	x := wrapTexel(int(math32.Floor(fx)), tex.lx, sh)
	y := wrapTexel(int(math32.Floor(fy)), tex.ly, sh)
	return tex.buf[y*tex.stride+x]
}

// texelBilinear blends the four texels around (fx, fy) in texel units.
func texelBilinear[T colors.Pixel[T]](tex Image[T], sh Shader, fx, fy float32) T {
	fx -= 0.5
	fy -= 0.5
	x0f := math32.Floor(fx)
	y0f := math32.Floor(fy)
	ax := uint32((fx - x0f) * 256)
	ay := uint32((fy - y0f) * 256)
	x0 := wrapTexel(int(x0f), tex.lx, sh)
	x1 := wrapTexel(int(x0f)+1, tex.lx, sh)
	y0 := wrapTexel(int(y0f), tex.ly, sh)
	y1 := wrapTexel(int(y0f)+1, tex.ly, sh)
	c00 := tex.buf[y0*tex.stride+x0]
	c10 := tex.buf[y0*tex.stride+x1]
	c01 := tex.buf[y1*tex.stride+x0]
	c11 := tex.buf[y1*tex.stride+x1]
	return c00.BlendBilinear(c10, c01, c11, ax, ay)
}

// chan8 rounds an interpolated channel to 8 bits.
func chan8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// chan256 rounds an interpolated channel to 0..256 fixed point.
func chan256(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 256 {
		return 256
	}
	return uint32(v)
}

// mod256 converts a [0,1] channel to a 0..256 fixed-point factor.
func mod256(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 256
	}
	return uint32(v * 256)
}
