package render

import (
	"github.com/vindar/tgx/pkg/math3d"
)

// FillScreen fills the whole view with c.
func (im Image[T]) FillScreen(c T) {
	im.FillRect(im.Box(), c)
}

// Clear is an alias for FillScreen.
func (im Image[T]) Clear(c T) {
	im.FillScreen(c)
}

// FillRect fills the intersection of box with the image with c. When the
// view is contiguous (stride == lx) and covers the whole image, the fill
// degenerates to one run over the backing slice.
func (im Image[T]) FillRect(box math3d.Box2, c T) {
	if !im.IsValid() {
		return
	}
	box = box.Intersect(im.Box())
	if box.IsEmpty() {
		return
	}
	if im.stride == im.lx && box == im.Box() {
		fillRun(im.buf[:im.lx*im.ly], c)
		return
	}
	for y := box.MinY; y <= box.MaxY; y++ {
		row := im.buf[y*im.stride+box.MinX : y*im.stride+box.MaxX+1]
		fillRun(row, c)
	}
}

// FillRectBlend blends c over the intersection of box with the image.
func (im Image[T]) FillRectBlend(box math3d.Box2, c T, opacity float32) {
	if !im.IsValid() {
		return
	}
	box = box.Intersect(im.Box())
	if box.IsEmpty() {
		return
	}
	k := uint32(opacity * 256)
	for y := box.MinY; y <= box.MaxY; y++ {
		row := im.buf[y*im.stride+box.MinX : y*im.stride+box.MaxX+1]
		for i := range row {
			row[i] = row[i].Blend256(c, k)
		}
	}
}

// FillRectHGradient fills box with a left-to-right gradient from c1 to
// c2. Interpolation runs in the 64-bit encoding so that narrow targets do
// not accumulate per-pixel rounding drift.
func (im Image[T]) FillRectHGradient(box math3d.Box2, c1, c2 T) {
	if !im.IsValid() {
		return
	}
	full := box.Intersect(im.Box())
	if full.IsEmpty() {
		return
	}
	var zero T
	w1 := c1.ToColor().ToRGB64()
	w2 := c2.ToColor().ToRGB64()
	n := box.Width()
	for x := full.MinX; x <= full.MaxX; x++ {
		var t float32
		if n > 1 {
			t = float32(x-box.MinX) / float32(n-1)
		}
		wc := w1.Blend(w2, t)
		col := zero.FromColor(wc.ToColor())
		for y := full.MinY; y <= full.MaxY; y++ {
			im.buf[y*im.stride+x] = col
		}
	}
}

// FillRectVGradient fills box with a top-to-bottom gradient from c1 to
// c2, interpolated in the 64-bit encoding.
func (im Image[T]) FillRectVGradient(box math3d.Box2, c1, c2 T) {
	if !im.IsValid() {
		return
	}
	full := box.Intersect(im.Box())
	if full.IsEmpty() {
		return
	}
	var zero T
	w1 := c1.ToColor().ToRGB64()
	w2 := c2.ToColor().ToRGB64()
	n := box.Height()
	for y := full.MinY; y <= full.MaxY; y++ {
		var t float32
		if n > 1 {
			t = float32(y-box.MinY) / float32(n-1)
		}
		wc := w1.Blend(w2, t)
		col := zero.FromColor(wc.ToColor())
		row := im.buf[y*im.stride+full.MinX : y*im.stride+full.MaxX+1]
		fillRun(row, col)
	}
}

// DrawFastHLine fills the horizontal run of w pixels starting at (x, y).
func (im Image[T]) DrawFastHLine(x, y, w int, c T) {
	if !im.IsValid() || y < 0 || y >= im.ly || w <= 0 {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > im.lx {
		w = im.lx - x
	}
	if w <= 0 {
		return
	}
	fillRun(im.buf[y*im.stride+x:y*im.stride+x+w], c)
}

// DrawFastVLine fills the vertical run of h pixels starting at (x, y).
func (im Image[T]) DrawFastVLine(x, y, h int, c T) {
	if !im.IsValid() || x < 0 || x >= im.lx || h <= 0 {
		return
	}
	if y < 0 {
		h += y
		y = 0
	}
	if y+h > im.ly {
		h = im.ly - y
	}
	for i := y * im.stride; h > 0; h, i = h-1, i+im.stride {
		im.buf[i+x] = c
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Axis-aligned lines dispatch to the specialized run fills.
func (im Image[T]) DrawLine(x0, y0, x1, y1 int, c T) {
	if !im.IsValid() {
		return
	}
	if y0 == y1 {
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		im.DrawFastHLine(x0, y0, x1-x0+1, c)
		return
	}
	if x0 == x1 {
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		im.DrawFastVLine(x0, y0, y1-y0+1, c)
		return
	}

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		im.DrawPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLineBlend draws a Bresenham line blended with the given opacity.
func (im Image[T]) DrawLineBlend(x0, y0, x1, y1 int, c T, opacity float32) {
	if !im.IsValid() {
		return
	}
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		im.DrawPixelBlend(x0, y0, c, opacity)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws the outline of box.
func (im Image[T]) DrawRect(box math3d.Box2, c T) {
	if box.IsEmpty() {
		return
	}
	im.DrawFastHLine(box.MinX, box.MinY, box.Width(), c)
	im.DrawFastHLine(box.MinX, box.MaxY, box.Width(), c)
	if box.Height() > 2 {
		im.DrawFastVLine(box.MinX, box.MinY+1, box.Height()-2, c)
		im.DrawFastVLine(box.MaxX, box.MinY+1, box.Height()-2, c)
	}
}

// fillRun writes c over the whole slice using copy doubling, which the
// compiler lowers to wide block stores; long 16-bit runs fill several
// pixels per machine word per iteration.
func fillRun[T any](dst []T, c T) {
	n := len(dst)
	if n == 0 {
		return
	}
	dst[0] = c
	for i := 1; i < n; i *= 2 {
		copy(dst[i:], dst[:i])
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
