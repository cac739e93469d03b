// Package render provides the tgx drawing surface, the triangle
// rasterizer and the fixed-function 3D pipeline. Everything draws into
// caller-supplied pixel buffers; the package never allocates during a
// draw call.
package render

import (
	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
)

// Image is a non-owning view over a pixel buffer: base slice, width lx,
// height ly and row stride in pixel units (stride >= lx). Pixel (x, y)
// lives at buf[y*stride+x]. Sub-views share the backing buffer with their
// parent; the owner must outlive every view, and concurrent draws into
// overlapping views are forbidden.
type Image[T colors.Pixel[T]] struct {
	buf    []T
	lx, ly int
	stride int
}

// NewImage allocates a fresh buffer and returns a view covering it.
func NewImage[T colors.Pixel[T]](lx, ly int) Image[T] {
	if lx <= 0 || ly <= 0 {
		return Image[T]{}
	}
	return Image[T]{buf: make([]T, lx*ly), lx: lx, ly: ly, stride: lx}
}

// FromBuffer wraps a caller-supplied buffer. The view is invalid when the
// buffer is too small for the requested geometry or stride < lx.
func FromBuffer[T colors.Pixel[T]](buf []T, lx, ly, stride int) Image[T] {
	if lx <= 0 || ly <= 0 || stride < lx {
		return Image[T]{}
	}
	if len(buf) < (ly-1)*stride+lx {
		return Image[T]{}
	}
	return Image[T]{buf: buf, lx: lx, ly: ly, stride: stride}
}

// IsValid reports whether the view can be drawn into.
func (im Image[T]) IsValid() bool {
	return im.buf != nil && im.lx > 0 && im.ly > 0 && im.stride >= im.lx
}

// Width returns the view width in pixels.
func (im Image[T]) Width() int { return im.lx }

// Height returns the view height in pixels.
func (im Image[T]) Height() int { return im.ly }

// Stride returns the row stride in pixel units.
func (im Image[T]) Stride() int { return im.stride }

// Buffer returns the backing slice of the view.
func (im Image[T]) Buffer() []T { return im.buf }

// Box returns the image box [0, lx-1] x [0, ly-1].
func (im Image[T]) Box() math3d.Box2 {
	if !im.IsValid() {
		return math3d.EmptyBox2()
	}
	return math3d.B2(0, im.lx-1, 0, im.ly-1)
}

// At returns the pixel at (x, y), or the zero pixel when out of bounds.
func (im Image[T]) At(x, y int) T {
	var zero T
	if !im.IsValid() || x < 0 || x >= im.lx || y < 0 || y >= im.ly {
		return zero
	}
	return im.buf[y*im.stride+x]
}

// DrawPixel writes c at (x, y). Out-of-bounds writes are no-ops.
func (im Image[T]) DrawPixel(x, y int, c T) {
	if !im.IsValid() || x < 0 || x >= im.lx || y < 0 || y >= im.ly {
		return
	}
	im.buf[y*im.stride+x] = c
}

// DrawPixelBlend blends c over the pixel at (x, y) with the given opacity
// in [0, 1]. Out-of-bounds writes are no-ops.
func (im Image[T]) DrawPixelBlend(x, y int, c T, opacity float32) {
	if !im.IsValid() || x < 0 || x >= im.lx || y < 0 || y >= im.ly {
		return
	}
	i := y*im.stride + x
	im.buf[i] = im.buf[i].Blend256(c, uint32(opacity*256))
}

// SubImage returns a view of the given box. With clamp the box is first
// intersected with the image box; without it, a box that is not fully
// contained yields an invalid view.
func (im Image[T]) SubImage(box math3d.Box2, clamp bool) Image[T] {
	if !im.IsValid() {
		return Image[T]{}
	}
	if clamp {
		box = box.Intersect(im.Box())
	} else if !im.Box().ContainsBox(box) {
		return Image[T]{}
	}
	if box.IsEmpty() {
		return Image[T]{}
	}
	off := box.MinY*im.stride + box.MinX
	return Image[T]{
		buf:    im.buf[off:],
		lx:     box.Width(),
		ly:     box.Height(),
		stride: im.stride,
	}
}

// sameBuffer reports whether two views share a backing array, and if so
// the offset of im's base relative to o's base in pixel units. Views over
// the same array slice it at different starts, so the element at the end
// of the shared capacity is identical exactly when the arrays are one.
func (im Image[T]) sameBuffer(o Image[T]) (shared bool, delta int) {
	if !im.IsValid() || !o.IsValid() {
		return false, 0
	}
	ca, cb := cap(im.buf), cap(o.buf)
	if ca == 0 || cb == 0 {
		return false, 0
	}
	ea := im.buf[:ca]
	eb := o.buf[:cb]
	if &ea[ca-1] != &eb[cb-1] {
		return false, 0
	}
	return true, cb - ca
}
