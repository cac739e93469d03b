package render

import (
	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// The 2D drawing surface reuses the triangle rasterizer for textured
// quads and gradient fills; coordinates are pixel units with affine
// attribute interpolation (unit interpolation weight).

// DrawGradientTriangle fills a 2D triangle whose vertex colors are
// interpolated across the surface.
func (im Image[T]) DrawGradientTriangle(p1, p2, p3 math3d.Vec2, c1, c2, c3 colors.Colorf) {
	if !im.IsValid() {
		return
	}
	u := uniforms[T, float32]{
		im:     im,
		shader: ShaderGouraud | ShaderNoTexture | ShaderNoZBuffer | ShaderOrthographic,
	}
	v1 := rastVertex{x: p1.X, y: p1.Y, w: 1, col: c1}
	v2 := rastVertex{x: p2.X, y: p2.Y, w: 1, col: c2}
	v3 := rastVertex{x: p3.X, y: p3.Y, w: 1, col: c3}
	orientAndRaster(&u, &v1, &v2, &v3)
}

// DrawTexturedTriangle maps a triangle of the source image onto a
// destination triangle with affine interpolation.
func (im Image[T]) DrawTexturedTriangle(src Image[T], srcP1, srcP2, srcP3, dstP1, dstP2, dstP3 math3d.Vec2) {
	im.drawTexturedTriangle(src, srcP1, srcP2, srcP3, dstP1, dstP2, dstP3, colors.F(1, 1, 1))
}

func (im Image[T]) drawTexturedTriangle(src Image[T], srcP1, srcP2, srcP3, dstP1, dstP2, dstP3 math3d.Vec2, tint colors.Colorf) {
	if !im.IsValid() || !src.IsValid() {
		return
	}
	u := uniforms[T, float32]{
		im:        im,
		tex:       src,
		shader:    ShaderFlat | ShaderTexture | ShaderNoZBuffer | ShaderOrthographic | ShaderTextureClamp | ShaderTextureNearest,
		facecolor: tint,
	}
	v1 := rastVertex{x: dstP1.X, y: dstP1.Y, w: 1, u: srcP1.X, v: srcP1.Y}
	v2 := rastVertex{x: dstP2.X, y: dstP2.Y, w: 1, u: srcP2.X, v: srcP2.Y}
	v3 := rastVertex{x: dstP3.X, y: dstP3.Y, w: 1, u: srcP3.X, v: srcP3.Y}
	orientAndRaster(&u, &v1, &v2, &v3)
}

// DrawTexturedQuad maps a source quad onto a destination quad as two
// triangles sharing the first diagonal. Source coordinates are texel
// units.
func (im Image[T]) DrawTexturedQuad(src Image[T], srcQuad, dstQuad [4]math3d.Vec2) {
	im.DrawTexturedTriangle(src, srcQuad[0], srcQuad[1], srcQuad[2], dstQuad[0], dstQuad[1], dstQuad[2])
	im.DrawTexturedTriangle(src, srcQuad[0], srcQuad[2], srcQuad[3], dstQuad[0], dstQuad[2], dstQuad[3])
}

// DrawTexturedQuadTint is DrawTexturedQuad with the source modulated by
// a color.
func (im Image[T]) DrawTexturedQuadTint(src Image[T], srcQuad, dstQuad [4]math3d.Vec2, tint colors.Colorf) {
	im.drawTexturedTriangle(src, srcQuad[0], srcQuad[1], srcQuad[2], dstQuad[0], dstQuad[1], dstQuad[2], tint)
	im.drawTexturedTriangle(src, srcQuad[0], srcQuad[2], srcQuad[3], dstQuad[0], dstQuad[2], dstQuad[3], tint)
}

// DrawTexturedQuadBlend is DrawTexturedQuad blended over the existing
// destination with the given opacity in (0, 1]; values at or above 1
// copy opaquely.
func (im Image[T]) DrawTexturedQuadBlend(src Image[T], srcQuad, dstQuad [4]math3d.Vec2, opacity float32) {
	if !im.IsValid() || !src.IsValid() {
		return
	}
	u := uniforms[T, float32]{
		im:        im,
		tex:       src,
		shader:    ShaderFlat | ShaderTexture | ShaderNoZBuffer | ShaderOrthographic | ShaderTextureClamp | ShaderTextureNearest,
		facecolor: colors.F(1, 1, 1),
	}
	if opacity > 0 && opacity < 1 {
		u.blend = uint32(opacity * 256)
	}
	tri := func(s1, s2, s3, d1, d2, d3 math3d.Vec2) {
		v1 := rastVertex{x: d1.X, y: d1.Y, w: 1, u: s1.X, v: s1.Y}
		v2 := rastVertex{x: d2.X, y: d2.Y, w: 1, u: s2.X, v: s2.Y}
		v3 := rastVertex{x: d3.X, y: d3.Y, w: 1, u: s3.X, v: s3.Y}
		orientAndRaster(&u, &v1, &v2, &v3)
	}
	tri(srcQuad[0], srcQuad[1], srcQuad[2], dstQuad[0], dstQuad[1], dstQuad[2])
	tri(srcQuad[0], srcQuad[2], srcQuad[3], dstQuad[0], dstQuad[2], dstQuad[3])
}

// orientAndRaster flips the winding if needed and rasterizes.
func orientAndRaster[T colors.Pixel[T]](u *uniforms[T, float32], v1, v2, v3 *rastVertex) {
	area := (v2.x-v1.x)*(v3.y-v1.y) - (v2.y-v1.y)*(v3.x-v1.x)
	if area < 0 {
		v2, v3 = v3, v2
	}
	rasterizeTriangle(u, v1, v2, v3)
}
