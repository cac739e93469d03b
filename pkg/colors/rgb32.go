package colors

// RGB32 is the 32-bit 8/8/8/8 encoding packed as A<<24 | R<<16 | G<<8 | B.
// Constructors that take no alpha produce opaque pixels.
type RGB32 uint32

// FromRGB32 packs 8-bit channels with opaque alpha.
func FromRGB32(r, g, b uint8) RGB32 {
	return FromRGBA32(r, g, b, 255)
}

// FromRGBA32 packs 8-bit channels with explicit alpha.
func FromRGBA32(r, g, b, a uint8) RGB32 {
	return RGB32(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c RGB32) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c RGB32) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c RGB32) B() uint8 { return uint8(c) }

// A returns the alpha channel.
func (c RGB32) A() uint8 { return uint8(c >> 24) }

// Blend256 mixes src into c with an 8-bit weight k in [0, 256]. Alpha
// blends along with the color channels.
func (c RGB32) Blend256(src RGB32, k uint32) RGB32 {
	ik := int32(k)
	r := int32(c.R()) + (int32(src.R())-int32(c.R()))*ik>>8
	g := int32(c.G()) + (int32(src.G())-int32(c.G()))*ik>>8
	b := int32(c.B()) + (int32(src.B())-int32(c.B()))*ik>>8
	a := int32(c.A()) + (int32(src.A())-int32(c.A()))*ik>>8
	return FromRGBA32(uint8(r), uint8(g), uint8(b), uint8(a))
}

// Blend mixes src into c with a float weight in [0, 1].
func (c RGB32) Blend(src RGB32, opacity float32) RGB32 {
	return c.Blend256(src, uint32(opacity*256))
}

// Mult256 modulates the color channels by 0..256 fixed-point factors,
// leaving alpha untouched.
func (c RGB32) Mult256(r, g, b uint32) RGB32 {
	return FromRGBA32(
		uint8((uint32(c.R())*r)>>8),
		uint8((uint32(c.G())*g)>>8),
		uint8((uint32(c.B())*b)>>8),
		c.A(),
	)
}

// BlendBilinear returns the bilinear mix of the quad c(=c00), c10, c01,
// c11 with 0..256 fixed-point fractions ax, ay.
func (c RGB32) BlendBilinear(c10, c01, c11 RGB32, ax, ay uint32) RGB32 {
	return FromRGBA32(
		uint8(bilerp256(uint32(c.R()), uint32(c10.R()), uint32(c01.R()), uint32(c11.R()), ax, ay)),
		uint8(bilerp256(uint32(c.G()), uint32(c10.G()), uint32(c01.G()), uint32(c11.G()), ax, ay)),
		uint8(bilerp256(uint32(c.B()), uint32(c10.B()), uint32(c01.B()), uint32(c11.B()), ax, ay)),
		uint8(bilerp256(uint32(c.A()), uint32(c10.A()), uint32(c01.A()), uint32(c11.A()), ax, ay)),
	)
}

// FromRGB packs opaque 8-bit channels. The receiver is unused.
func (RGB32) FromRGB(r, g, b uint8) RGB32 {
	return FromRGB32(r, g, b)
}

// FromColor narrows a float color. The receiver is unused.
func (RGB32) FromColor(c Colorf) RGB32 {
	return c.ToRGB32()
}

// ToColor promotes to the float encoding.
func (c RGB32) ToColor() Colorf {
	return Colorf{
		float32(c.R()) / 255,
		float32(c.G()) / 255,
		float32(c.B()) / 255,
		float32(c.A()) / 255,
	}
}

// RGBA implements image/color.Color (non-premultiplied channels are
// reported premultiplied as the interface requires).
func (c RGB32) RGBA() (r, g, b, a uint32) {
	aa := uint32(c.A()) * 0x101
	r = uint32(c.R()) * 0x101 * aa / 0xffff
	g = uint32(c.G()) * 0x101 * aa / 0xffff
	b = uint32(c.B()) * 0x101 * aa / 0xffff
	return r, g, b, aa
}

// ToRGB565 narrows to the 16-bit encoding (lossy, drops alpha).
func (c RGB32) ToRGB565() RGB565 {
	return FromRGB565(c.R(), c.G(), c.B())
}

// ToRGB24 narrows to the 24-bit encoding (drops alpha).
func (c RGB32) ToRGB24() RGB24 {
	return RGB24{c.R(), c.G(), c.B()}
}

// ToRGB64 promotes to the 64-bit encoding (lossless).
func (c RGB32) ToRGB64() RGB64 {
	e := func(v uint8) uint16 { return uint16(v)<<8 | uint16(v) }
	return FromRGBA64(e(c.R()), e(c.G()), e(c.B()), e(c.A()))
}
