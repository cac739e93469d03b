package render

import (
	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// Renderer is the fixed-function 3D pipeline. It renders into a
// caller-supplied image view with an optional depth buffer, entirely on
// the calling goroutine, and never allocates during a draw call.
//
// T is the pixel encoding of the target image; Z the depth cell
// encoding.
type Renderer[T colors.Pixel[T], Z ZDepth] struct {
	im   Image[T]
	zbuf []Z

	proj  math3d.Mat4 // Y axis already negated (image coordinates are Y-down)
	ortho bool

	lx, ly int // viewport size
	ox, oy int // viewport offset for tiled rendering

	view  math3d.Mat4
	model math3d.Mat4

	lightDir    math3d.Vec3
	lightA      colors.Colorf
	lightD      colors.Colorf
	lightS      colors.Colorf
	color       colors.Colorf
	ambientStr  float32
	diffuseStr  float32
	specularStr float32
	specularExp int
	culling     int

	shaders Shader
	enabled Shader

	tex *Image[T]

	// Derived cache, recomputed when an input it depends on changes.
	dirty       bool
	modelView   math3d.Mat4
	lightView   math3d.Vec3
	halfView    math3d.Vec3
	inorm       float32
	effAmbient  colors.Colorf
	effDiffuse  colors.Colorf
	effSpecular colors.Colorf
	powTable    [powTableSize + 1]float32
	powExp      int
	wa, wb      float32
	clipK       float32

	uni uniforms[T, Z]
}

// NewRenderer creates a pipeline with every shader capability enabled.
func NewRenderer[T colors.Pixel[T], Z ZDepth]() *Renderer[T, Z] {
	return NewRendererWith[T, Z](ShaderAll)
}

// NewRendererWith creates a pipeline restricted to the given capability
// set; configuration requests outside the set fall back to the closest
// available variant.
func NewRendererWith[T colors.Pixel[T], Z ZDepth](enabled Shader) *Renderer[T, Z] {
	r := &Renderer[T, Z]{
		proj:        math3d.Identity().InvertYAxis(),
		view:        math3d.Identity(),
		model:       math3d.Identity(),
		lightDir:    math3d.V3(0, 0, -1),
		lightA:      colors.F(1, 1, 1),
		lightD:      colors.F(1, 1, 1),
		lightS:      colors.F(1, 1, 1),
		color:       colors.F(1, 1, 1),
		ambientStr:  0.1,
		diffuseStr:  0.7,
		specularStr: 0.5,
		specularExp: 16,
		culling:     1,
		enabled:     enabled,
		powExp:      -1,
		dirty:       true,
	}
	r.shaders = (ShaderFlat | ShaderNoTexture | ShaderNoZBuffer | ShaderPerspective |
		ShaderTextureWrapPow2 | ShaderTextureNearest).normalize(enabled)
	r.updateProjDeps()
	return r
}

// SetImage sets the target image view. An invalid view makes every draw
// call a no-op. The viewport defaults to the image size.
func (r *Renderer[T, Z]) SetImage(im Image[T]) {
	r.im = im
	if im.IsValid() && (r.lx == 0 || r.ly == 0) {
		r.SetViewport(im.Width(), im.Height())
	}
}

// SetViewport sets the logical viewport size used for screen mapping.
// It may exceed the target image size when rendering tiles.
func (r *Renderer[T, Z]) SetViewport(lx, ly int) {
	r.lx, r.ly = lx, ly
	m := lx
	if ly > m {
		m = ly
	}
	if m > 0 {
		r.clipK = 1 + 1/float32(m)
	} else {
		r.clipK = 1
	}
}

// SetOffset sets the viewport offset, letting the image cover a tile of
// a larger virtual viewport.
func (r *Renderer[T, Z]) SetOffset(ox, oy int) {
	r.ox, r.oy = ox, oy
}

// SetZBuffer attaches a depth buffer of lx*ly cells (stride lx) and
// promotes the shader mask to the z-buffered family. A nil buffer
// detaches it and demotes the mask.
func (r *Renderer[T, Z]) SetZBuffer(zbuf []Z) {
	r.zbuf = zbuf
	if zbuf != nil {
		r.shaders = r.shaders.set(ShaderZBuffer, ShaderNoZBuffer).normalize(r.enabled)
	} else {
		r.shaders = r.shaders.set(ShaderNoZBuffer, ShaderZBuffer).normalize(r.enabled)
	}
}

// ClearZBuffer resets the attached depth buffer.
func (r *Renderer[T, Z]) ClearZBuffer() {
	ClearZBuffer(r.zbuf)
}

// SetProjectionMatrix loads a projection matrix. The Y axis is negated
// once here so downstream math works in Y-down image coordinates;
// ProjectionMatrix undoes the negation. ortho selects the affine
// interpolation path.
func (r *Renderer[T, Z]) SetProjectionMatrix(m math3d.Mat4, ortho bool) {
	r.proj = m.InvertYAxis()
	r.setOrtho(ortho)
	r.updateProjDeps()
}

// ProjectionMatrix returns the projection matrix as loaded.
func (r *Renderer[T, Z]) ProjectionMatrix() math3d.Mat4 {
	return r.proj.InvertYAxis()
}

// SetPerspective loads a perspective projection from a vertical field of
// view (radians), aspect ratio and clip planes.
func (r *Renderer[T, Z]) SetPerspective(fovy, aspect, near, far float32) {
	r.SetProjectionMatrix(math3d.Perspective(fovy, aspect, near, far), false)
}

// SetFrustum loads a perspective projection from frustum extents.
func (r *Renderer[T, Z]) SetFrustum(left, right, bottom, top, near, far float32) {
	r.SetProjectionMatrix(math3d.Frustum(left, right, bottom, top, near, far), false)
}

// SetOrtho loads an orthographic projection and switches the mask to the
// orthographic family.
func (r *Renderer[T, Z]) SetOrtho(left, right, bottom, top, near, far float32) {
	r.SetProjectionMatrix(math3d.Orthographic(left, right, bottom, top, near, far), true)
}

func (r *Renderer[T, Z]) setOrtho(ortho bool) {
	r.ortho = ortho
	if ortho {
		r.shaders = r.shaders.set(ShaderOrthographic, ShaderPerspective).normalize(r.enabled)
	} else {
		r.shaders = r.shaders.set(ShaderPerspective, ShaderOrthographic).normalize(r.enabled)
	}
}

// updateProjDeps refreshes the 16-bit depth remapping coefficients.
func (r *Renderer[T, Z]) updateProjDeps() {
	r.wa = -32768 * r.proj[14]
	r.wb = 32768 * (r.proj[10] + 1)
}

// SetViewMatrix sets the world-to-view transform.
func (r *Renderer[T, Z]) SetViewMatrix(m math3d.Mat4) {
	r.view = m
	r.dirty = true
}

// SetLookAt positions the camera.
func (r *Renderer[T, Z]) SetLookAt(eye, center, up math3d.Vec3) {
	r.SetViewMatrix(math3d.LookAt(eye, center, up))
}

// SetModelMatrix sets the model-to-world transform.
func (r *Renderer[T, Z]) SetModelMatrix(m math3d.Mat4) {
	r.model = m
	r.dirty = true
}

// ModelMatrix returns the current model transform.
func (r *Renderer[T, Z]) ModelMatrix() math3d.Mat4 {
	return r.model
}

// SetLightDirection sets the direction light rays travel, in world
// space.
func (r *Renderer[T, Z]) SetLightDirection(dir math3d.Vec3) {
	r.lightDir = dir
	r.dirty = true
}

// SetLightColors sets the ambient, diffuse and specular light colors.
func (r *Renderer[T, Z]) SetLightColors(ambient, diffuse, specular colors.Colorf) {
	r.lightA, r.lightD, r.lightS = ambient, diffuse, specular
	r.dirty = true
}

// SetLight configures direction and colors together.
func (r *Renderer[T, Z]) SetLight(dir math3d.Vec3, ambient, diffuse, specular colors.Colorf) {
	r.SetLightDirection(dir)
	r.SetLightColors(ambient, diffuse, specular)
}

// SetMaterialColor sets the surface base color.
func (r *Renderer[T, Z]) SetMaterialColor(c colors.Colorf) {
	r.color = c
}

// SetMaterial configures the full material: base color, the three
// reflectance strengths, and the specular exponent.
func (r *Renderer[T, Z]) SetMaterial(c colors.Colorf, ambient, diffuse, specular float32, exponent int) {
	r.color = c
	r.ambientStr = ambient
	r.diffuseStr = diffuse
	r.specularStr = specular
	r.specularExp = exponent
	r.dirty = true
}

// SetMaterialSpecularExponent sets the specular exponent; the power
// table is rebuilt lazily on the next lit draw.
func (r *Renderer[T, Z]) SetMaterialSpecularExponent(exponent int) {
	r.specularExp = exponent
}

// SetCulling sets the face culling direction: +1 or -1 select a winding,
// 0 disables culling.
func (r *Renderer[T, Z]) SetCulling(dir int) {
	r.culling = dir
}

// SetShaders requests a shader mask; it is normalized against the
// enabled capability set so that exactly one flag of each exclusive
// group remains.
func (r *Renderer[T, Z]) SetShaders(s Shader) {
	// Keep the projection and z-buffer families in sync with the actual
	// configuration rather than the request.
	s = s.normalize(r.enabled)
	if r.ortho {
		s = s.set(ShaderOrthographic, ShaderPerspective)
	} else {
		s = s.set(ShaderPerspective, ShaderOrthographic)
	}
	if r.zbuf == nil {
		s = s.set(ShaderNoZBuffer, ShaderZBuffer)
	}
	r.shaders = s.normalize(r.enabled)
}

// Shaders returns the current (consistent) shader mask.
func (r *Renderer[T, Z]) Shaders() Shader {
	return r.shaders
}

// SetShading selects flat or gouraud shading.
func (r *Renderer[T, Z]) SetShading(gouraud bool) {
	if gouraud {
		r.shaders = r.shaders.set(ShaderGouraud, ShaderFlat).normalize(r.enabled)
	} else {
		r.shaders = r.shaders.set(ShaderFlat, ShaderGouraud).normalize(r.enabled)
	}
}

// SetTextureWrap selects power-of-two wrapping or clamping for texture
// lookups.
func (r *Renderer[T, Z]) SetTextureWrap(clamp bool) {
	if clamp {
		r.shaders = r.shaders.set(ShaderTextureClamp, ShaderTextureWrapPow2).normalize(r.enabled)
	} else {
		r.shaders = r.shaders.set(ShaderTextureWrapPow2, ShaderTextureClamp).normalize(r.enabled)
	}
}

// SetTextureQuality selects bilinear or nearest sampling; a build
// without the requested variant falls back to the other.
func (r *Renderer[T, Z]) SetTextureQuality(bilinear bool) {
	if bilinear {
		r.shaders = r.shaders.set(ShaderTextureBilinear, ShaderTextureNearest).normalize(r.enabled)
	} else {
		r.shaders = r.shaders.set(ShaderTextureNearest, ShaderTextureBilinear).normalize(r.enabled)
	}
}

// SetTexture sets the texture used by the immediate-mode textured draws.
func (r *Renderer[T, Z]) SetTexture(tex *Image[T]) {
	r.tex = tex
	if tex != nil {
		r.shaders = r.shaders.set(ShaderTexture, ShaderNoTexture).normalize(r.enabled)
	} else {
		r.shaders = r.shaders.set(ShaderNoTexture, ShaderTexture).normalize(r.enabled)
	}
}

// ensureCache refreshes the derived transform and lighting state.
func (r *Renderer[T, Z]) ensureCache() {
	if !r.dirty {
		return
	}
	r.modelView = r.view.Mul(r.model)
	r.lightView = r.view.MulVec3Dir(r.lightDir).Negate().Normalize()
	// Blinn halfway vector with the view-space eye taken at (0, 0, 1).
	r.halfView = r.lightView.Add(math3d.V3(0, 0, 1)).Normalize()
	n := r.modelView.MulVec3Dir(math3d.V3(0, 0, 1)).Len()
	if n > 0 {
		r.inorm = 1 / n
	} else {
		r.inorm = 1
	}
	r.effAmbient = r.lightA.Scale(r.ambientStr)
	r.effDiffuse = r.lightD.Scale(r.diffuseStr)
	r.effSpecular = r.lightS.Scale(r.specularStr)
	r.dirty = false
}

// valid reports whether the pipeline can draw at all.
func (r *Renderer[T, Z]) valid() bool {
	return r.im.IsValid() && r.lx > 0 && r.ly > 0
}

// setUniforms primes the kernel uniform block for a draw call. The
// texture flag follows the texture actually supplied, gated by the
// enabled capability set.
func (r *Renderer[T, Z]) setUniforms(tex *Image[T]) {
	r.uni.im = r.im
	r.uni.wa, r.uni.wb = r.wa, r.wb
	if r.shaders.Has(ShaderZBuffer) && len(r.zbuf) >= r.im.lx*r.im.ly {
		r.uni.zbuf = r.zbuf
	} else {
		r.uni.zbuf = nil
	}
	sh := r.shaders
	if tex != nil && tex.IsValid() && r.enabled&ShaderTexture != 0 {
		r.uni.tex = *tex
		sh = sh.set(ShaderTexture, ShaderNoTexture)
	} else {
		r.uni.tex = Image[T]{}
		sh = sh.set(ShaderNoTexture, ShaderTexture)
	}
	r.uni.shader = sh
}

// pvert is a vertex after transform and lighting, cached in the 3-slot
// window during strip traversal so that continuing a chain only
// processes the newly introduced vertex.
type pvert struct {
	view math3d.Vec3
	clip math3d.Vec4
	col  colors.Colorf
	uv   math3d.Vec2
	oc   uint8
}

// processVertex transforms one model-space vertex to view and clip space
// and evaluates its lighting when gouraud shading is active.
func (r *Renderer[T, Z]) processVertex(pos math3d.Vec3, n *math3d.Vec3, uv math3d.Vec2, textured bool, pv *pvert) {
	pv.view = r.modelView.MulPoint(pos)
	pv.clip = r.proj.MulVec4(math3d.V4FromV3(pv.view, 1))
	pv.uv = uv
	pv.oc = outcode(pv.clip, r.clipK)
	if n != nil && r.shaders.Has(ShaderGouraud) {
		// Rescale by the cached reciprocal norm instead of normalizing;
		// exact when the model transform is an isotropic similarity.
		nn := r.modelView.MulVec3Dir(*n).Scale(r.inorm)
		pv.col = r.shade(nn, textured)
	} else {
		pv.col = r.color
	}
}

// triangle culls, shades and clips one processed triangle, then sends
// the surviving pieces to the rasterizer.
func (r *Renderer[T, Z]) triangle(v1, v2, v3 *pvert, textured bool) {
	// Back-face culling in view space.
	fn := v2.view.Sub(v1.view).Cross(v3.view.Sub(v1.view))
	var viewDir math3d.Vec3
	if r.ortho {
		viewDir = math3d.V3(0, 0, -1)
	} else {
		viewDir = v1.view
	}
	cd := fn.Dot(viewDir)
	if r.culling != 0 && cd*float32(r.culling) > 0 {
		return
	}

	if r.shaders.Has(ShaderFlat) {
		nrm := fn.NormalizeFast()
		if cd > 0 {
			nrm = nrm.Negate()
		}
		r.uni.facecolor = r.shade(nrm, textured)
	}

	c1 := clipVertex{pos: v1.clip, col: v1.col, uv: v1.uv}
	c2 := clipVertex{pos: v2.clip, col: v2.col, uv: v2.uv}
	c3 := clipVertex{pos: v3.clip, col: v3.col, uv: v3.uv}

	switch {
	case (v1.oc | v2.oc | v3.oc) == 0:
		// Entirely inside the bounding frustum.
		r.projectAndRaster(c1, c2, c3)
	case (v1.oc & v2.oc & v3.oc) != 0:
		// A single plane separates all three vertices.
	default:
		r.clipTriangle(0, c1, c2, c3)
	}
}

// projectAndRaster applies the perspective divide (or the 1-z weight for
// orthographic projection), maps to the viewport and rasterizes.
func (r *Renderer[T, Z]) projectAndRaster(p1, p2, p3 clipVertex) {
	var rv [3]rastVertex
	persp := !r.ortho
	texLx := float32(r.uni.tex.lx)
	texLy := float32(r.uni.tex.ly)
	textured := r.uni.tex.IsValid()

	for i, c := range [3]clipVertex{p1, p2, p3} {
		v := &rv[i]
		if persp {
			if c.pos.W < 1e-20 {
				return
			}
			iw := 1 / c.pos.W
			v.x = (c.pos.X*iw+1)*float32(r.lx)/2 - float32(r.ox)
			v.y = (c.pos.Y*iw+1)*float32(r.ly)/2 - float32(r.oy)
			v.w = iw
			if textured {
				v.u = c.uv.X * texLx * iw
				v.v = c.uv.Y * texLy * iw
			}
		} else {
			v.x = (c.pos.X+1)*float32(r.lx)/2 - float32(r.ox)
			v.y = (c.pos.Y+1)*float32(r.ly)/2 - float32(r.oy)
			v.w = 1 - c.pos.Z
			if textured {
				v.u = c.uv.X * texLx
				v.v = c.uv.Y * texLy
			}
		}
		v.col = c.col
	}

	// The rasterizer wants positive signed area; orientation may have
	// flipped during projection or when culling is disabled.
	area := (rv[1].x-rv[0].x)*(rv[2].y-rv[0].y) - (rv[1].y-rv[0].y)*(rv[2].x-rv[0].x)
	if area < 0 {
		rv[1], rv[2] = rv[2], rv[1]
	}
	rasterizeTriangle(&r.uni, &rv[0], &rv[1], &rv[2])
}

// DrawTriangle renders one triangle with the current material. Normals
// default to the face normal, so flat and gouraud shading agree.
func (r *Renderer[T, Z]) DrawTriangle(p1, p2, p3 math3d.Vec3) {
	r.DrawTriangleShaded(p1, p2, p3, nil, nil, nil)
}

// DrawTriangleShaded renders one triangle with per-vertex normals for
// gouraud shading. Nil normals fall back to flat shading for that
// vertex.
func (r *Renderer[T, Z]) DrawTriangleShaded(p1, p2, p3 math3d.Vec3, n1, n2, n3 *math3d.Vec3) {
	if !r.valid() {
		return
	}
	r.ensureCache()
	r.setUniforms(nil)
	if n1 == nil || n2 == nil || n3 == nil {
		fn := p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()
		if n1 == nil {
			n1 = &fn
		}
		if n2 == nil {
			n2 = &fn
		}
		if n3 == nil {
			n3 = &fn
		}
	}
	var a, b, c pvert
	r.processVertex(p1, n1, math3d.Vec2{}, false, &a)
	r.processVertex(p2, n2, math3d.Vec2{}, false, &b)
	r.processVertex(p3, n3, math3d.Vec2{}, false, &c)
	r.triangle(&a, &b, &c, false)
}

// DrawTriangleTextured renders one textured triangle using the current
// texture.
func (r *Renderer[T, Z]) DrawTriangleTextured(p1, p2, p3 math3d.Vec3, uv1, uv2, uv3 math3d.Vec2) {
	r.DrawTriangleTexturedShaded(p1, p2, p3, nil, nil, nil, uv1, uv2, uv3)
}

// DrawTriangleTexturedShaded renders one textured triangle with
// per-vertex normals.
func (r *Renderer[T, Z]) DrawTriangleTexturedShaded(p1, p2, p3 math3d.Vec3, n1, n2, n3 *math3d.Vec3, uv1, uv2, uv3 math3d.Vec2) {
	if !r.valid() {
		return
	}
	r.ensureCache()
	r.setUniforms(r.tex)
	textured := r.uni.tex.IsValid()
	var a, b, c pvert
	r.processVertex(p1, n1, uv1, textured, &a)
	r.processVertex(p2, n2, uv2, textured, &b)
	r.processVertex(p3, n3, uv3, textured, &c)
	r.triangle(&a, &b, &c, textured)
}

// DrawTriangleGradient renders one triangle with explicit vertex colors,
// bypassing lighting. The mask is treated as gouraud for this call.
func (r *Renderer[T, Z]) DrawTriangleGradient(p1, p2, p3 math3d.Vec3, c1, c2, c3 colors.Colorf) {
	if !r.valid() {
		return
	}
	r.ensureCache()
	saved := r.shaders
	r.shaders = r.shaders.set(ShaderGouraud, ShaderFlat).normalize(r.enabled)
	r.setUniforms(nil)
	var a, b, c pvert
	r.processVertex(p1, nil, math3d.Vec2{}, false, &a)
	r.processVertex(p2, nil, math3d.Vec2{}, false, &b)
	r.processVertex(p3, nil, math3d.Vec2{}, false, &c)
	a.col, b.col, c.col = c1, c2, c3
	r.triangle(&a, &b, &c, false)
	r.shaders = saved
}

// DrawQuad renders a quad as two triangles sharing the diagonal
// p1-p3.
func (r *Renderer[T, Z]) DrawQuad(p1, p2, p3, p4 math3d.Vec3) {
	r.DrawTriangle(p1, p2, p3)
	r.DrawTriangle(p1, p3, p4)
}

// DrawQuadTextured renders a textured quad as two triangles.
func (r *Renderer[T, Z]) DrawQuadTextured(p1, p2, p3, p4 math3d.Vec3, uv1, uv2, uv3, uv4 math3d.Vec2) {
	r.DrawTriangleTextured(p1, p2, p3, uv1, uv2, uv3)
	r.DrawTriangleTextured(p1, p3, p4, uv1, uv3, uv4)
}

// DrawMesh renders a mesh chain. Each linked mesh is drawn with its own
// material and texture; the renderer's configured material is restored
// afterwards.
func (r *Renderer[T, Z]) DrawMesh(m *Mesh[T]) {
	if !r.valid() {
		return
	}
	r.ensureCache()
	savedColor := r.color
	savedA, savedD, savedS, savedE := r.ambientStr, r.diffuseStr, r.specularStr, r.specularExp
	for ; m != nil; m = m.Next {
		r.drawSingleMesh(m)
	}
	r.color = savedColor
	r.ambientStr, r.diffuseStr, r.specularStr, r.specularExp = savedA, savedD, savedS, savedE
	r.dirty = true
	r.ensureCache()
}

// drawSingleMesh draws one link of a mesh chain.
func (r *Renderer[T, Z]) drawSingleMesh(m *Mesh[T]) {
	if len(m.Vertices) == 0 || len(m.Faces) == 0 {
		return
	}

	// Bounding box rejection: when every corner of the projected box
	// falls outside the same frustum plane the whole mesh is invisible.
	if !m.Bounds.IsEmpty() {
		full := r.proj.Mul(r.modelView)
		and := uint8(0xff)
		for i := 0; i < 8; i++ {
			c := math3d.V3(
				pick(i&1 != 0, m.Bounds.Max.X, m.Bounds.Min.X),
				pick(i&2 != 0, m.Bounds.Max.Y, m.Bounds.Min.Y),
				pick(i&4 != 0, m.Bounds.Max.Z, m.Bounds.Min.Z),
			)
			and &= outcode(full.MulVec4(math3d.V4FromV3(c, 1)), r.clipK)
			if and == 0 {
				break
			}
		}
		if and != 0 {
			return
		}
	}

	r.color = m.Color
	r.ambientStr = m.Ambient
	r.diffuseStr = m.Diffuse
	r.specularStr = m.Specular
	r.specularExp = m.SpecularExp
	r.effAmbient = r.lightA.Scale(r.ambientStr)
	r.effDiffuse = r.lightD.Scale(r.diffuseStr)
	r.effSpecular = r.lightS.Scale(r.specularStr)

	r.setUniforms(m.Texture)
	textured := r.uni.tex.IsValid()

	hasUV := len(m.Texcoords) > 0
	hasN := len(m.Normals) > 0

	// Rotating 3-slot vertex window: strip continuation reprocesses only
	// the newly introduced vertex.
	var win [3]pvert
	f := m.Faces
	i := 0
	for i < len(f) {
		n := int(f[i])
		i++
		if n == 0 {
			break
		}

		read := func(pv *pvert) bool {
			if i >= len(f) {
				return false
			}
			code := f[i]
			i++
			vi := int(code &^ DBit)
			if vi >= len(m.Vertices) {
				return false
			}
			var uv math3d.Vec2
			if hasUV {
				if i >= len(f) || int(f[i]) >= len(m.Texcoords) {
					return false
				}
				uv = m.Texcoords[f[i]]
				i++
			}
			var nr *math3d.Vec3
			if hasN {
				if i >= len(f) || int(f[i]) >= len(m.Normals) {
					return false
				}
				nr = &m.Normals[f[i]]
				i++
			}
			r.processVertex(m.Vertices[vi], nr, uv, textured, pv)
			return true
		}

		// DBit of the fourth and later elements selects the pivot.
		dbit := func() bool { return f[i]&DBit != 0 }

		if !read(&win[0]) || !read(&win[1]) {
			return
		}
		for t := 0; t < n; t++ {
			if i >= len(f) {
				return
			}
			pivotOld := t > 0 && dbit()
			if t == 0 {
				if !read(&win[2]) {
					return
				}
			} else if pivotOld {
				// (V3, V2, V4): slide the window onto the older edge.
				win[0] = win[2]
				if !read(&win[2]) {
					return
				}
			} else {
				// (V1, V3, V4): pivot on the newer vertex.
				win[1] = win[2]
				if !read(&win[2]) {
					return
				}
			}
			r.triangle(&win[0], &win[1], &win[2], textured)
		}
	}
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

// ScreenBox returns the viewport box in pixel coordinates.
func (r *Renderer[T, Z]) ScreenBox() math3d.Box2 {
	if r.lx <= 0 || r.ly <= 0 {
		return math3d.EmptyBox2()
	}
	return math3d.B2(0, r.lx-1, 0, r.ly-1)
}

// worldToScreen projects a model-space point to pixel coordinates.
// Returns false when the point is behind the eye.
func (r *Renderer[T, Z]) worldToScreen(p math3d.Vec3) (float32, float32, bool) {
	r.ensureCache()
	clip := r.proj.MulVec4(math3d.V4FromV3(r.modelView.MulPoint(p), 1))
	if r.ortho {
		return (clip.X+1)*float32(r.lx)/2 - float32(r.ox),
			(clip.Y+1)*float32(r.ly)/2 - float32(r.oy), true
	}
	if clip.W < 1e-20 {
		return 0, 0, false
	}
	iw := 1 / clip.W
	return (clip.X*iw+1)*float32(r.lx)/2 - float32(r.ox),
		(clip.Y*iw+1)*float32(r.ly)/2 - float32(r.oy), true
}
