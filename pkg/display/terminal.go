// Package display presents finished framebuffers: to the terminal with
// half-block cells, or to PNG files for inspection. It only reads the color
// and depth planes the renderer produced.
package display

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/chewxy/math32"

	"github.com/taigrr/prism/pkg/render"
)

// TerminalRenderer draws framebuffers onto a terminal screen using ▀ (upper
// half block) cells: each terminal row carries two framebuffer rows, the top
// pixel as foreground and the bottom as background.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int // terminal columns
	height int // terminal rows
}

// NewTerminalRenderer wraps a terminal of the given size.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the framebuffer dimensions matching the terminal:
// one pixel per column, two pixel rows per terminal row.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Present converts the framebuffer's float color plane to terminal cells and
// flushes the screen.
func (t *TerminalRenderer) Present(fb *render.Framebuffer) error {
	DrawFramebuffer(t.term, uv.Rect(0, 0, t.width, t.height), fb)
	return t.term.Display()
}

// DrawFramebuffer writes the framebuffer into any ultraviolet screen region.
func DrawFramebuffer(scr uv.Screen, area uv.Rectangle, fb *render.Framebuffer) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: pixelColor(fb, col, topY),
					Bg: pixelColor(fb, col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// pixelColor converts one float pixel to an 8-bit color, clamping to [0,1].
func pixelColor(fb *render.Framebuffer, x, y int) color.Color {
	if y >= fb.Height {
		return nil
	}
	r, g, b := fb.ColorAt(x, y)
	return color.RGBA{toByte(r), toByte(g), toByte(b), 255}
}

func toByte(v float32) uint8 {
	return uint8(math32.Min(math32.Max(v, 0), 1) * 255)
}
