package render

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/vindar/tgx/pkg/colors"
)

// DrawCells presents the image onto a terminal screen area using ▀
// half-block cells: each terminal row shows two pixel rows, the top one
// as the foreground color and the bottom one as the background.
func DrawCells[T colors.Pixel[T]](im Image[T], scr uv.Screen, area uv.Rectangle) {
	if !im.IsValid() {
		return
	}
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		for col := area.Min.X; col < area.Max.X && col-area.Min.X < im.Width(); col++ {
			x := col - area.Min.X
			top := im.At(x, topY).ToColor().ToRGB32()
			bot := im.At(x, botY).ToColor().ToRGB32()
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: top,
					Bg: bot,
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}
