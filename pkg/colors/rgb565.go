package colors

// RGB565 is the 16-bit 5/6/5 packed encoding: red in the top 5 bits,
// green in the middle 6, blue in the bottom 5.
type RGB565 uint16

// FromRGB565 packs 8-bit channels into 5/6/5.
func FromRGB565(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// R returns the red channel expanded to 8 bits.
func (c RGB565) R() uint8 {
	r5 := uint8(c >> 11)
	return r5<<3 | r5>>2
}

// G returns the green channel expanded to 8 bits.
func (c RGB565) G() uint8 {
	g6 := uint8(c>>5) & 0x3f
	return g6<<2 | g6>>4
}

// B returns the blue channel expanded to 8 bits.
func (c RGB565) B() uint8 {
	b5 := uint8(c) & 0x1f
	return b5<<3 | b5>>2
}

// Blend256 mixes src into c with an 8-bit weight k in [0, 256], operating
// on both pixels at once through the spread-565 representation.
func (c RGB565) Blend256(src RGB565, k uint32) RGB565 {
	k5 := (k + 4) >> 3 // 0..32
	bg := (uint32(c) | uint32(c)<<16) & 0x07e0f81f
	fg := (uint32(src) | uint32(src)<<16) & 0x07e0f81f
	mix := ((fg*k5 + bg*(32-k5)) >> 5) & 0x07e0f81f
	return RGB565(mix | mix>>16)
}

// Blend mixes src into c with a float weight in [0, 1].
func (c RGB565) Blend(src RGB565, opacity float32) RGB565 {
	return c.Blend256(src, uint32(opacity*256))
}

// Mult256 modulates the channels by 0..256 fixed-point factors.
func (c RGB565) Mult256(r, g, b uint32) RGB565 {
	r5 := (uint32(c>>11) * r) >> 8
	g6 := ((uint32(c>>5) & 0x3f) * g) >> 8
	b5 := ((uint32(c) & 0x1f) * b) >> 8
	return RGB565(r5<<11 | g6<<5 | b5)
}

// BlendBilinear returns the bilinear mix of the quad c(=c00), c10, c01,
// c11 with 0..256 fixed-point fractions ax, ay. Mixing happens on the
// native 5/6/5 channels so a uniform quad reproduces its texel exactly.
func (c RGB565) BlendBilinear(c10, c01, c11 RGB565, ax, ay uint32) RGB565 {
	r := bilerp256(uint32(c>>11), uint32(c10>>11), uint32(c01>>11), uint32(c11>>11), ax, ay)
	g := bilerp256(uint32(c>>5)&0x3f, uint32(c10>>5)&0x3f, uint32(c01>>5)&0x3f, uint32(c11>>5)&0x3f, ax, ay)
	b := bilerp256(uint32(c)&0x1f, uint32(c10)&0x1f, uint32(c01)&0x1f, uint32(c11)&0x1f, ax, ay)
	return RGB565(r<<11 | g<<5 | b)
}

// FromRGB packs 8-bit channels. The receiver is unused.
func (RGB565) FromRGB(r, g, b uint8) RGB565 {
	return FromRGB565(r, g, b)
}

// FromColor narrows a float color. The receiver is unused.
func (RGB565) FromColor(c Colorf) RGB565 {
	return c.ToRGB565()
}

// ToColor promotes to the float encoding.
func (c RGB565) ToColor() Colorf {
	return Colorf{float32(c.R()) / 255, float32(c.G()) / 255, float32(c.B()) / 255, 1}
}

// RGBA implements image/color.Color.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	return uint32(c.R()) * 0x101, uint32(c.G()) * 0x101, uint32(c.B()) * 0x101, 0xffff
}

// ToRGB24 promotes to the 24-bit encoding (lossless).
func (c RGB565) ToRGB24() RGB24 {
	return RGB24{c.R(), c.G(), c.B()}
}

// ToRGB32 promotes to the 32-bit encoding with opaque alpha (lossless).
func (c RGB565) ToRGB32() RGB32 {
	return FromRGBA32(c.R(), c.G(), c.B(), 255)
}

// ToRGB64 promotes to the 64-bit encoding with opaque alpha (lossless).
func (c RGB565) ToRGB64() RGB64 {
	return c.ToRGB32().ToRGB64()
}
