package render

// ZDepth is the set of depth cell encodings: raw float32 reciprocal-w, or
// 16-bit unsigned remapped from clip depth with the wa/wb coefficients.
// Cleared cells are zero ("no sample yet"); larger values are nearer.
type ZDepth interface {
	uint16 | float32
}

// ClearZBuffer resets every cell to the empty value, after which any new
// sample wins the depth test.
func ClearZBuffer[Z ZDepth](zbuf []Z) {
	if len(zbuf) == 0 {
		return
	}
	var zero Z
	zbuf[0] = zero
	for i := 1; i < len(zbuf); i *= 2 {
		copy(zbuf[i:], zbuf[:i])
	}
}

// toDepth encodes an interpolated reciprocal-w as a depth cell. The
// float32 encoding stores the value raw; the 16-bit encoding remaps it
// linearly with the precomputed wa/wb pair, clamped to the cell range.
// Both encodings are monotonic in cw, preserving the nearer-wins order.
func toDepth[Z ZDepth](cw, wa, wb float32) Z {
	var z Z
	switch p := any(&z).(type) {
	case *float32:
		*p = cw
	case *uint16:
		v := wa*cw + wb
		if v < 0 {
			v = 0
		} else if v > 65535 {
			v = 65535
		}
		*p = uint16(v)
	}
	return z
}
