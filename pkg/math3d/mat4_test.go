package math3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func matNear(t *testing.T, want, got Mat4, tol float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, float64(want[i]), float64(got[i]), tol, "element %d", i)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7)).Mul(ScaleUniform(2))
	matNear(t, m, Identity().Mul(m), 1e-6)
	matNear(t, m, m.Mul(Identity()), 1e-6)
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(V3(1, -2, 3)).Mul(Rotate(V3(1, 2, 3), 0.6)).Mul(ScaleUniform(1.5))
	matNear(t, Identity(), m.Mul(m.Inverse()), 1e-4)

	var singular Mat4
	matNear(t, Identity(), singular.Inverse(), 0)
}

func TestMat4MulVec(t *testing.T) {
	m := Translate(V3(5, 0, 0))
	p := m.MulPoint(V3(1, 2, 3))
	assert.Equal(t, V3(6, 2, 3), p)
	// Directions ignore translation.
	d := m.MulVec3Dir(V3(1, 2, 3))
	assert.Equal(t, V3(1, 2, 3), d)

	v := m.MulVec4(V4(1, 2, 3, 1))
	assert.Equal(t, V4(6, 2, 3, 1), v)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := V3(3, 4, 5)
	m := LookAt(eye, Zero3(), Up())
	p := m.MulPoint(eye)
	assert.InDelta(t, 0, float64(p.X), 1e-5)
	assert.InDelta(t, 0, float64(p.Y), 1e-5)
	assert.InDelta(t, 0, float64(p.Z), 1e-5)

	// The target lands on the negative Z axis at its distance from the eye.
	q := m.MulPoint(Zero3())
	assert.InDelta(t, float64(-eye.Len()), float64(q.Z), 1e-4)
}

func TestInvertYAxisInvolution(t *testing.T) {
	m := Perspective(1.0, 1.5, 0.1, 100)
	matNear(t, m, m.InvertYAxis().InvertYAxis(), 0)
	flipped := m.InvertYAxis()
	assert.Equal(t, -m[5], flipped[5])
	assert.Equal(t, m[0], flipped[0])
}

func TestPerspectiveDivide(t *testing.T) {
	m := Perspective(1.0, 1.0, 1, 10)
	// A point on the near plane projects to z = -1.
	v := m.MulVec4(V4(0, 0, -1, 1))
	assert.InDelta(t, -1, float64(v.Z/v.W), 1e-5)
	// A point on the far plane projects to z = +1.
	v = m.MulVec4(V4(0, 0, -10, 1))
	assert.InDelta(t, 1, float64(v.Z/v.W), 1e-5)
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 2)
	assert.InDelta(t, 3, float64(a.Len()), 1e-6)
	n := a.Normalize()
	assert.InDelta(t, 1, float64(n.Len()), 1e-6)
	assert.InDelta(t, 1, float64(a.NormalizeFast().Len()), 1e-3)

	c := V3(1, 0, 0).Cross(V3(0, 1, 0))
	assert.Equal(t, V3(0, 0, 1), c)
	assert.Equal(t, float32(0), V3(1, 0, 0).Dot(V3(0, 1, 0)))

	assert.Equal(t, V3(2, 3, 4), V3(0, 1, 2).Lerp(V3(4, 5, 6), 0.5))
}
