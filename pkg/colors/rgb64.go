package colors

// RGB64 is the 64-bit 16/16/16/16 encoding packed as
// A<<48 | R<<32 | G<<16 | B. It doubles as the wide accumulator for
// gradient fills, where per-pixel rounding drift would show in the
// narrower encodings.
type RGB64 uint64

// FromRGB64 packs 16-bit channels with opaque alpha.
func FromRGB64(r, g, b uint16) RGB64 {
	return FromRGBA64(r, g, b, 0xffff)
}

// FromRGBA64 packs 16-bit channels with explicit alpha.
func FromRGBA64(r, g, b, a uint16) RGB64 {
	return RGB64(uint64(a)<<48 | uint64(r)<<32 | uint64(g)<<16 | uint64(b))
}

// R returns the red channel.
func (c RGB64) R() uint16 { return uint16(c >> 32) }

// G returns the green channel.
func (c RGB64) G() uint16 { return uint16(c >> 16) }

// B returns the blue channel.
func (c RGB64) B() uint16 { return uint16(c) }

// A returns the alpha channel.
func (c RGB64) A() uint16 { return uint16(c >> 48) }

// Blend256 mixes src into c with an 8-bit weight k in [0, 256].
func (c RGB64) Blend256(src RGB64, k uint32) RGB64 {
	ik := int64(k)
	r := int64(c.R()) + (int64(src.R())-int64(c.R()))*ik>>8
	g := int64(c.G()) + (int64(src.G())-int64(c.G()))*ik>>8
	b := int64(c.B()) + (int64(src.B())-int64(c.B()))*ik>>8
	a := int64(c.A()) + (int64(src.A())-int64(c.A()))*ik>>8
	return FromRGBA64(uint16(r), uint16(g), uint16(b), uint16(a))
}

// Blend mixes src into c with a float weight in [0, 1].
func (c RGB64) Blend(src RGB64, opacity float32) RGB64 {
	return c.Blend256(src, uint32(opacity*256))
}

// Mult256 modulates the color channels by 0..256 fixed-point factors,
// leaving alpha untouched.
func (c RGB64) Mult256(r, g, b uint32) RGB64 {
	return FromRGBA64(
		uint16((uint64(c.R())*uint64(r))>>8),
		uint16((uint64(c.G())*uint64(g))>>8),
		uint16((uint64(c.B())*uint64(b))>>8),
		c.A(),
	)
}

// BlendBilinear returns the bilinear mix of the quad c(=c00), c10, c01,
// c11 with 0..256 fixed-point fractions ax, ay.
func (c RGB64) BlendBilinear(c10, c01, c11 RGB64, ax, ay uint32) RGB64 {
	mix := func(v00, v10, v01, v11 uint16) uint16 {
		fax, fay := uint64(ax), uint64(ay)
		top := uint64(v00)*(256-fax) + uint64(v10)*fax
		bot := uint64(v01)*(256-fax) + uint64(v11)*fax
		return uint16((top*(256-fay) + bot*fay) >> 16)
	}
	return FromRGBA64(
		mix(c.R(), c10.R(), c01.R(), c11.R()),
		mix(c.G(), c10.G(), c01.G(), c11.G()),
		mix(c.B(), c10.B(), c01.B(), c11.B()),
		mix(c.A(), c10.A(), c01.A(), c11.A()),
	)
}

// FromRGB expands opaque 8-bit channels. The receiver is unused.
func (RGB64) FromRGB(r, g, b uint8) RGB64 {
	e := func(v uint8) uint16 { return uint16(v)<<8 | uint16(v) }
	return FromRGB64(e(r), e(g), e(b))
}

// FromColor narrows a float color. The receiver is unused.
func (RGB64) FromColor(c Colorf) RGB64 {
	return c.ToRGB64()
}

// ToColor promotes to the float encoding.
func (c RGB64) ToColor() Colorf {
	return Colorf{
		float32(c.R()) / 65535,
		float32(c.G()) / 65535,
		float32(c.B()) / 65535,
		float32(c.A()) / 65535,
	}
}

// RGBA implements image/color.Color.
func (c RGB64) RGBA() (r, g, b, a uint32) {
	aa := uint32(c.A())
	r = uint32(c.R()) * aa / 0xffff
	g = uint32(c.G()) * aa / 0xffff
	b = uint32(c.B()) * aa / 0xffff
	return r, g, b, aa
}

// ToRGB565 narrows to the 16-bit encoding (lossy).
func (c RGB64) ToRGB565() RGB565 {
	return FromRGB565(uint8(c.R()>>8), uint8(c.G()>>8), uint8(c.B()>>8))
}

// ToRGB24 narrows to the 24-bit encoding (lossy).
func (c RGB64) ToRGB24() RGB24 {
	return RGB24{uint8(c.R() >> 8), uint8(c.G() >> 8), uint8(c.B() >> 8)}
}

// ToRGB32 narrows to the 32-bit encoding (lossy).
func (c RGB64) ToRGB32() RGB32 {
	return FromRGBA32(uint8(c.R()>>8), uint8(c.G()>>8), uint8(c.B()>>8), uint8(c.A()>>8))
}
