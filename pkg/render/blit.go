package render

import (
	"github.com/vindar/tgx/pkg/math3d"
)

// BlitOp tunes a blit. The zero value copies the full source opaquely.
type BlitOp[T comparable] struct {
	// SrcBox restricts the copy to a region of the source. Nil means the
	// whole source.
	SrcBox *math3d.Box2
	// Opacity blends the source over the destination when in (0, 1).
	// Values outside [0, 1) copy opaquely.
	Opacity float32
	// Transparent skips source pixels equal to this value.
	Transparent *T
}

// Blit copies src onto the view with its top-left corner at (dstX, dstY),
// clipping independently against both views. Sources overlapping the
// destination in the same backing buffer are handled by picking the row
// traversal direction that never reads an already-written row.
func (im Image[T]) Blit(src Image[T], dstX, dstY int) {
	im.BlitOp(src, dstX, dstY, BlitOp[T]{})
}

// BlitOp is Blit with options.
func (im Image[T]) BlitOp(src Image[T], dstX, dstY int, op BlitOp[T]) {
	if !im.IsValid() || !src.IsValid() {
		return
	}

	sbox := src.Box()
	if op.SrcBox != nil {
		sbox = sbox.Intersect(*op.SrcBox)
	}
	if sbox.IsEmpty() {
		return
	}

	// Clip against the destination. sx, sy track the source origin of
	// the clipped region.
	sx, sy := sbox.MinX, sbox.MinY
	w, h := sbox.Width(), sbox.Height()
	if dstX < 0 {
		sx -= dstX
		w += dstX
		dstX = 0
	}
	if dstY < 0 {
		sy -= dstY
		h += dstY
		dstY = 0
	}
	if dstX+w > im.lx {
		w = im.lx - dstX
	}
	if dstY+h > im.ly {
		h = im.ly - dstY
	}
	if w <= 0 || h <= 0 {
		return
	}

	blend := op.Opacity > 0 && op.Opacity < 1
	k := uint32(op.Opacity * 256)

	// Row order: when both views share a backing buffer and destination
	// rows sit at higher addresses than source rows, copy bottom-up so a
	// row is consumed before it is overwritten. A row copied to a
	// strictly higher or lower row never self-clobbers, so no column
	// order choice is needed.
	y0, y1, ystep := 0, h, 1
	if shared, delta := im.sameBuffer(src); shared {
		dstStart := delta + dstY*im.stride + dstX
		srcStart := sy*src.stride + sx
		if dstStart > srcStart {
			y0, y1, ystep = h-1, -1, -1
		}
	}

	for y := y0; y != y1; y += ystep {
		srow := src.buf[(sy+y)*src.stride+sx : (sy+y)*src.stride+sx+w]
		drow := im.buf[(dstY+y)*im.stride+dstX : (dstY+y)*im.stride+dstX+w]
		switch {
		case op.Transparent != nil && blend:
			for i, c := range srow {
				if c != *op.Transparent {
					drow[i] = drow[i].Blend256(c, k)
				}
			}
		case op.Transparent != nil:
			for i, c := range srow {
				if c != *op.Transparent {
					drow[i] = c
				}
			}
		case blend:
			for i, c := range srow {
				drow[i] = drow[i].Blend256(c, k)
			}
		default:
			copy(drow, srow)
		}
	}
}
