package render

// Shader is the bag of flags selecting a fragment kernel. A mask is
// consistent when exactly one flag of each exclusive group is set; the
// renderer keeps its mask consistent after every configuration change.
type Shader uint32

const (
	// ShaderFlat selects uniform per-face color.
	ShaderFlat Shader = 1 << iota
	// ShaderGouraud selects interpolated per-vertex color.
	ShaderGouraud
	// ShaderNoTexture disables texturing.
	ShaderNoTexture
	// ShaderTexture enables texturing.
	ShaderTexture
	// ShaderNoZBuffer disables depth testing.
	ShaderNoZBuffer
	// ShaderZBuffer enables depth testing.
	ShaderZBuffer
	// ShaderPerspective selects perspective-correct interpolation.
	ShaderPerspective
	// ShaderOrthographic selects affine interpolation (no per-pixel
	// reciprocal).
	ShaderOrthographic
	// ShaderTextureClamp clamps texture lookups to the texture edge.
	ShaderTextureClamp
	// ShaderTextureWrapPow2 wraps texture lookups with a power-of-two
	// bitmask. Non-power-of-two textures will show seams; that is a
	// documented restriction, not a runtime error.
	ShaderTextureWrapPow2
	// ShaderTextureNearest selects nearest-texel sampling.
	ShaderTextureNearest
	// ShaderTextureBilinear selects bilinear sampling.
	ShaderTextureBilinear
)

// ShaderAll enables every capability.
const ShaderAll = ShaderFlat | ShaderGouraud | ShaderNoTexture | ShaderTexture |
	ShaderNoZBuffer | ShaderZBuffer | ShaderPerspective | ShaderOrthographic |
	ShaderTextureClamp | ShaderTextureWrapPow2 | ShaderTextureNearest | ShaderTextureBilinear

// shaderGroups lists the exclusive groups with the preferred flag first;
// normalization falls back to the preferred member when none or both of a
// group's flags survive.
var shaderGroups = [6][2]Shader{
	{ShaderFlat, ShaderGouraud},
	{ShaderNoTexture, ShaderTexture},
	{ShaderNoZBuffer, ShaderZBuffer},
	{ShaderPerspective, ShaderOrthographic},
	{ShaderTextureWrapPow2, ShaderTextureClamp},
	{ShaderTextureNearest, ShaderTextureBilinear},
}

// normalize makes the mask consistent against the enabled capability set:
// requested flags not present in enabled fall back to the closest
// available variant, and each exclusive group ends with exactly one flag.
func (s Shader) normalize(enabled Shader) Shader {
	out := s & enabled
	for _, g := range shaderGroups {
		a, b := g[0]&enabled, g[1]&enabled
		switch {
		case out&g[0] != 0 && out&g[1] != 0:
			out &^= g[1]
		case out&(g[0]|g[1]) == 0:
			if a != 0 {
				out |= a
			} else {
				out |= b
			}
		}
	}
	return out
}

// set switches on one flag of a group and clears the other.
func (s Shader) set(on, off Shader) Shader {
	return (s | on) &^ off
}

// Has reports whether every flag in f is set.
func (s Shader) Has(f Shader) bool {
	return s&f == f
}
