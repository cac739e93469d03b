package colors

// RGB24 is the 24-bit 8/8/8 encoding.
type RGB24 struct {
	R, G, B uint8
}

// FromRGB24 builds a 24-bit color from its channels.
func FromRGB24(r, g, b uint8) RGB24 {
	return RGB24{r, g, b}
}

// Blend256 mixes src into c with an 8-bit weight k in [0, 256].
func (c RGB24) Blend256(src RGB24, k uint32) RGB24 {
	ik := int32(k)
	return RGB24{
		uint8(int32(c.R) + (int32(src.R)-int32(c.R))*ik>>8),
		uint8(int32(c.G) + (int32(src.G)-int32(c.G))*ik>>8),
		uint8(int32(c.B) + (int32(src.B)-int32(c.B))*ik>>8),
	}
}

// Blend mixes src into c with a float weight in [0, 1].
func (c RGB24) Blend(src RGB24, opacity float32) RGB24 {
	return c.Blend256(src, uint32(opacity*256))
}

// Mult256 modulates the channels by 0..256 fixed-point factors.
func (c RGB24) Mult256(r, g, b uint32) RGB24 {
	return RGB24{
		uint8((uint32(c.R) * r) >> 8),
		uint8((uint32(c.G) * g) >> 8),
		uint8((uint32(c.B) * b) >> 8),
	}
}

// BlendBilinear returns the bilinear mix of the quad c(=c00), c10, c01,
// c11 with 0..256 fixed-point fractions ax, ay.
func (c RGB24) BlendBilinear(c10, c01, c11 RGB24, ax, ay uint32) RGB24 {
	return RGB24{
		uint8(bilerp256(uint32(c.R), uint32(c10.R), uint32(c01.R), uint32(c11.R), ax, ay)),
		uint8(bilerp256(uint32(c.G), uint32(c10.G), uint32(c01.G), uint32(c11.G), ax, ay)),
		uint8(bilerp256(uint32(c.B), uint32(c10.B), uint32(c01.B), uint32(c11.B), ax, ay)),
	}
}

// FromRGB builds the color. The receiver is unused.
func (RGB24) FromRGB(r, g, b uint8) RGB24 {
	return RGB24{r, g, b}
}

// FromColor narrows a float color. The receiver is unused.
func (RGB24) FromColor(c Colorf) RGB24 {
	return c.ToRGB24()
}

// ToColor promotes to the float encoding.
func (c RGB24) ToColor() Colorf {
	return Colorf{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}

// RGBA implements image/color.Color.
func (c RGB24) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, 0xffff
}

// ToRGB565 narrows to the 16-bit encoding (lossy).
func (c RGB24) ToRGB565() RGB565 {
	return FromRGB565(c.R, c.G, c.B)
}

// ToRGB32 promotes with opaque alpha (lossless).
func (c RGB24) ToRGB32() RGB32 {
	return FromRGBA32(c.R, c.G, c.B, 255)
}

// ToRGB64 promotes with opaque alpha (lossless).
func (c RGB24) ToRGB64() RGB64 {
	return c.ToRGB32().ToRGB64()
}
