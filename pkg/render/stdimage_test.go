package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindar/tgx/pkg/colors"
)

func TestToNRGBA(t *testing.T) {
	im := NewImage[colors.RGB32](2, 2)
	im.DrawPixel(0, 0, colors.FromRGB32(255, 0, 0))
	im.DrawPixel(1, 1, colors.FromRGBA32(0, 0, 255, 128))

	out := ToNRGBA(im)
	require.Equal(t, 2, out.Bounds().Dx())
	c := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.A)
	c = out.NRGBAAt(1, 1)
	assert.Equal(t, uint8(255), c.B)
	assert.Equal(t, uint8(128), c.A)

	empty := ToNRGBA(Image[colors.RGB32]{})
	assert.Equal(t, 0, empty.Bounds().Dx())
}

func TestTextureFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Pix[0], src.Pix[1], src.Pix[2], src.Pix[3] = 10, 20, 30, 255
	src.Pix[4], src.Pix[5], src.Pix[6], src.Pix[7] = 200, 100, 0, 255

	tex := TextureFromImage[colors.RGB32](src)
	require.True(t, tex.IsValid())
	assert.Equal(t, colors.FromRGB32(10, 20, 30), tex.At(0, 0))
	assert.Equal(t, colors.FromRGB32(200, 100, 0), tex.At(1, 0))
}

func TestTextureFromImagePow2(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	tex := TextureFromImagePow2[colors.RGB32](src, 64)
	require.True(t, tex.IsValid())
	assert.Equal(t, 8, tex.Width())
	assert.Equal(t, 4, tex.Height())

	// Already power-of-two sizes pass through unscaled.
	src2 := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	tex2 := TextureFromImagePow2[colors.RGB32](src2, 64)
	assert.Equal(t, 4, tex2.Width())
}

func TestCeilPow2(t *testing.T) {
	assert.Equal(t, 1, ceilPow2(1, 64))
	assert.Equal(t, 4, ceilPow2(3, 64))
	assert.Equal(t, 8, ceilPow2(8, 64))
	assert.Equal(t, 64, ceilPow2(100, 64))
}
