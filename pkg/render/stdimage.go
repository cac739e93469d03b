package render

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/vindar/tgx/pkg/colors"
)

// ToNRGBA copies the view into a standard image, channel-converting
// through the float encoding.
func ToNRGBA[T colors.Pixel[T]](im Image[T]) *image.NRGBA {
	if !im.IsValid() {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	out := image.NewNRGBA(image.Rect(0, 0, im.Width(), im.Height()))
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			c := im.At(x, y).ToColor().Clamp()
			i := y*out.Stride + x*4
			out.Pix[i] = uint8(c.R*255 + 0.5)
			out.Pix[i+1] = uint8(c.G*255 + 0.5)
			out.Pix[i+2] = uint8(c.B*255 + 0.5)
			out.Pix[i+3] = uint8(c.A*255 + 0.5)
		}
	}
	return out
}

// TextureFromImage copies a standard image into a freshly allocated
// texture of the target encoding.
func TextureFromImage[T colors.Pixel[T]](src image.Image) Image[T] {
	b := src.Bounds()
	im := NewImage[T](b.Dx(), b.Dy())
	if !im.IsValid() {
		return im
	}
	var zero T
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bb, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c := colors.FA(
				float32(r)/0xffff,
				float32(g)/0xffff,
				float32(bb)/0xffff,
				float32(a)/0xffff,
			)
			im.DrawPixel(x, y, zero.FromColor(c))
		}
	}
	return im
}

// TextureFromImagePow2 rescales a standard image up to power-of-two
// dimensions before conversion, so the wrap-power-of-two sampling mode is
// safe to use on it. Each side doubles from 1 until it reaches the image
// size or maxSize (a maxSize that is not a power of two is rounded up).
func TextureFromImagePow2[T colors.Pixel[T]](src image.Image, maxSize int) Image[T] {
	b := src.Bounds()
	w := ceilPow2(b.Dx(), maxSize)
	h := ceilPow2(b.Dy(), maxSize)
	if w == b.Dx() && h == b.Dy() {
		return TextureFromImage[T](src)
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), src, b, xdraw.Src, nil)
	return TextureFromImage[T](scaled)
}

func ceilPow2(v, max int) int {
	p := 1
	for p < v && p < max {
		p <<= 1
	}
	return p
}
