package colors

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ToColorful converts a float color to a colorful.Color, dropping alpha.
func (c Colorf) ToColorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// FromColorful wraps a colorful.Color as an opaque float color.
func FromColorful(c colorful.Color) Colorf {
	return Colorf{float32(c.R), float32(c.G), float32(c.B), 1}
}

// BlendHSV mixes two float colors through HSV space, which keeps ramp
// midpoints saturated where plain RGB interpolation washes them out.
func BlendHSV(a, b Colorf, t float32) Colorf {
	return FromColorful(a.ToColorful().BlendHsv(b.ToColorful(), float64(t)))
}

// Ramp returns n colors interpolated from a to b through HSV space.
// Gradient fills accept the result directly.
func Ramp(a, b Colorf, n int) []Colorf {
	if n <= 0 {
		return nil
	}
	out := make([]Colorf, n)
	if n == 1 {
		out[0] = a
		return out
	}
	for i := range out {
		out[i] = BlendHSV(a, b, float32(i)/float32(n-1))
	}
	return out
}
