package render

import (
	"github.com/chewxy/math32"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// powTableSize is the resolution of the specular power table. The table
// maps v in [0, 1] to v^exponent through index floor((1-v)*powTableSize)
// and is rebuilt whenever the exponent changes.
const powTableSize = 32

func (r *Renderer[T, Z]) rebuildPowTable() {
	e := float32(r.specularExp)
	for i := 0; i <= powTableSize; i++ {
		v := 1 - float32(i)/powTableSize
		r.powTable[i] = math32.Pow(v, e)
	}
	r.powExp = r.specularExp
}

// specularFactor looks up v^exponent for v = clamped N·H.
func (r *Renderer[T, Z]) specularFactor(v float32) float32 {
	if r.specularExp <= 0 {
		return 0
	}
	if r.powExp != r.specularExp {
		r.rebuildPowTable()
	}
	idx := int((1 - v) * powTableSize)
	if idx < 0 {
		idx = 0
	} else if idx > powTableSize {
		idx = powTableSize
	}
	return r.powTable[idx]
}

// shade evaluates the Phong reflectance for a unit normal in view space.
// Textured fragments keep the light color unmultiplied; the texture
// supplies the base color at the pixel.
func (r *Renderer[T, Z]) shade(n math3d.Vec3, textured bool) colors.Colorf {
	dt := n.Dot(r.lightView)
	if dt < 0 {
		dt = 0
	}
	col := r.effAmbient.Add(r.effDiffuse.Scale(dt))
	if r.specularExp > 0 {
		hv := n.Dot(r.halfView)
		if hv < 0 {
			hv = 0
		} else if hv > 1 {
			hv = 1
		}
		col = col.Add(r.effSpecular.Scale(r.specularFactor(hv)))
	}
	col = col.Clamp()
	if !textured {
		col = col.Mul(r.color)
	}
	return col
}
