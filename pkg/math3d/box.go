package math3d

// Box2 is a closed axis-aligned box [MinX,MaxX]x[MinY,MaxY] with integer
// bounds, used for image regions. The box is empty iff MaxX < MinX or
// MaxY < MinY.
type Box2 struct {
	MinX, MaxX int
	MinY, MaxY int
}

// B2 creates a Box2 from its bounds.
func B2(minX, maxX, minY, maxY int) Box2 {
	return Box2{minX, maxX, minY, maxY}
}

// EmptyBox2 returns a canonical empty box.
func EmptyBox2() Box2 {
	return Box2{1, 0, 1, 0}
}

// IsEmpty reports whether the box contains no point.
func (b Box2) IsEmpty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// Width returns the number of columns covered (closed bounds).
func (b Box2) Width() int {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX + 1
}

// Height returns the number of rows covered (closed bounds).
func (b Box2) Height() int {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY + 1
}

// Contains reports whether the point (x, y) lies inside the box.
func (b Box2) Contains(x, y int) bool {
	return !b.IsEmpty() &&
		x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// ContainsBox reports whether o lies entirely inside b. An empty o is
// contained in everything.
func (b Box2) ContainsBox(o Box2) bool {
	if o.IsEmpty() {
		return true
	}
	if b.IsEmpty() {
		return false
	}
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX &&
		o.MinY >= b.MinY && o.MaxY <= b.MaxY
}

// Intersect returns the intersection of the two boxes.
func (b Box2) Intersect(o Box2) Box2 {
	r := Box2{
		MinX: maxi(b.MinX, o.MinX),
		MaxX: mini(b.MaxX, o.MaxX),
		MinY: maxi(b.MinY, o.MinY),
		MaxY: mini(b.MaxY, o.MaxY),
	}
	if r.IsEmpty() {
		return EmptyBox2()
	}
	return r
}

// Union returns the smallest box containing both. Empty boxes are
// absorbing: the union with an empty box is the other box.
func (b Box2) Union(o Box2) Box2 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box2{
		MinX: mini(b.MinX, o.MinX),
		MaxX: maxi(b.MaxX, o.MaxX),
		MinY: mini(b.MinY, o.MinY),
		MaxY: maxi(b.MaxY, o.MaxY),
	}
}

// Translate returns the box shifted by (dx, dy).
func (b Box2) Translate(dx, dy int) Box2 {
	return Box2{b.MinX + dx, b.MaxX + dx, b.MinY + dy, b.MaxY + dy}
}

// Box3 is a closed axis-aligned box in 3D model space with float bounds,
// used for mesh extents. Empty iff any max bound is below its min bound.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// B3 creates a Box3 from min and max corners.
func B3(min, max Vec3) Box3 {
	return Box3{Min: min, Max: max}
}

// IsEmpty reports whether the box contains no point.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Center returns the center of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box (float bounds: max - min).
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether the point lies inside the box.
func (b Box3) ContainsPoint(p Vec3) bool {
	return !b.IsEmpty() &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Union returns the smallest box containing both. Empty is absorbing.
func (b Box3) Union(o Box3) Box3 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Extend returns the box grown to contain p.
func (b Box3) Extend(p Vec3) Box3 {
	if b.IsEmpty() {
		return Box3{Min: p, Max: p}
	}
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Transform returns a box bounding the original after transformation,
// computed from the 8 transformed corners.
func (b Box3) Transform(m Mat4) Box3 {
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}

	t := m.MulPoint(corners[0])
	r := Box3{Min: t, Max: t}
	for i := 1; i < 8; i++ {
		r = r.Extend(m.MulPoint(corners[i]))
	}
	return r
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
