package math3d

import (
	"math"

	"github.com/chewxy/math32"
)

// FastMath selects the approximate reciprocal and reciprocal square root
// paths. When false (the default) the precise library routines are used.
var FastMath = false

// InvSqrt returns 1/sqrt(x), using the fast integer-reinterpretation
// approximation with one Newton step when FastMath is set.
func InvSqrt(x float32) float32 {
	if FastMath {
		return FastInvSqrt(x)
	}
	return 1.0 / math32.Sqrt(x)
}

// FastInvSqrt computes an approximate 1/sqrt(x) via the classic 32-bit
// reinterpretation trick followed by one Newton refinement step.
func FastInvSqrt(x float32) float32 {
	xhalf := 0.5 * x
	i := math.Float32bits(x)
	i = 0x5f375a86 - (i >> 1)
	y := math.Float32frombits(i)
	return y * (1.5 - xhalf*y*y)
}

// Inv returns 1/x, using the fast approximation when FastMath is set.
func Inv(x float32) float32 {
	if FastMath {
		return FastInv(x)
	}
	return 1.0 / x
}

// FastInv computes an approximate 1/x as sign(x) * invsqrt(x*x).
func FastInv(x float32) float32 {
	if x == 0 {
		return math32.Inf(1)
	}
	r := FastInvSqrt(x * x)
	if x < 0 {
		return -r
	}
	return r
}

// FastInv64 falls back to true division: the reinterpretation trick has no
// worthwhile double-precision form on the targets this library serves.
func FastInv64(x float64) float64 {
	return 1.0 / x
}

// SafeMulB returns min(b, math.MaxInt32/|a|), bounding index arithmetic so
// that a*b cannot overflow a 32-bit signed accumulator. a == 0 leaves b
// unchanged.
func SafeMulB(a, b int32) int32 {
	if a == 0 {
		return b
	}
	if a < 0 {
		a = -a
	}
	lim := int32(math.MaxInt32) / a
	if b > lim {
		return lim
	}
	return b
}
