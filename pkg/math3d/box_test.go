package math3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox2Empty(t *testing.T) {
	e := EmptyBox2()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, 0, e.Width())
	assert.Equal(t, 0, e.Height())
	assert.False(t, e.Contains(0, 0))

	b := B2(0, 3, 0, 3)
	assert.Equal(t, b, b.Union(e))
	assert.Equal(t, b, e.Union(b))
	assert.True(t, b.Intersect(e).IsEmpty())
	assert.True(t, b.ContainsBox(e))
	assert.False(t, e.ContainsBox(b))
}

func TestBox2ClosedWidth(t *testing.T) {
	b := B2(2, 5, 1, 1)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 1, b.Height())
	assert.True(t, b.Contains(5, 1))
	assert.False(t, b.Contains(6, 1))
}

func TestBox2Ops(t *testing.T) {
	a := B2(0, 4, 0, 4)
	b := B2(2, 6, 3, 8)
	i := a.Intersect(b)
	assert.Equal(t, B2(2, 4, 3, 4), i)
	u := a.Union(b)
	assert.Equal(t, B2(0, 6, 0, 8), u)
	assert.True(t, u.ContainsBox(a))
	assert.True(t, u.ContainsBox(b))

	assert.True(t, B2(3, 4, 0, 1).Intersect(B2(5, 6, 0, 1)).IsEmpty())
	assert.Equal(t, B2(1, 5, 2, 6), B2(0, 4, 0, 4).Translate(1, 2))
}

func TestBox3(t *testing.T) {
	b := B3(V3(-1, -1, -1), V3(1, 1, 1))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, V3(0, 0, 0), b.Center())
	assert.Equal(t, V3(2, 2, 2), b.Size())
	assert.True(t, b.ContainsPoint(V3(1, 0, -1)))
	assert.False(t, b.ContainsPoint(V3(1.1, 0, 0)))

	e := Box3{Min: V3(1, 1, 1), Max: V3(-1, -1, -1)}
	assert.True(t, e.IsEmpty())
	assert.Equal(t, b, b.Union(e))
	assert.Equal(t, b, e.Union(b))

	ext := e.Extend(V3(2, 3, 4))
	assert.Equal(t, V3(2, 3, 4), ext.Min)
	assert.Equal(t, V3(2, 3, 4), ext.Max)
}

func TestBox3Transform(t *testing.T) {
	b := B3(V3(-1, -2, -3), V3(1, 2, 3))
	tr := b.Transform(Translate(V3(10, 0, 0)))
	assert.InDelta(t, 9, tr.Min.X, 1e-6)
	assert.InDelta(t, 11, tr.Max.X, 1e-6)

	rot := b.Transform(RotateZ(3.14159265 / 2))
	// After a quarter turn around Z the X and Y extents swap.
	assert.InDelta(t, 2, rot.Max.X, 1e-4)
	assert.InDelta(t, 1, rot.Max.Y, 1e-4)
}
