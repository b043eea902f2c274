package emul8

import (
	"bufio"
	"io"

	"github.com/senojj/emul8/chip8"
)

// TextRenderer writes every frame to w as Height lines of Width characters,
// '#' for a set pixel and '.' otherwise, followed by an empty line.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (t *TextRenderer) Render(d *chip8.Display) error {
	bw := bufio.NewWriter(t.w)

	for y := range chip8.Height {
		for x := range chip8.Width {
			c := byte('.')
			if d.Pixel(x, y) {
				c = '#'
			}
			_ = bw.WriteByte(c)
		}
		_ = bw.WriteByte('\n')
	}
	_ = bw.WriteByte('\n')

	return bw.Flush()
}
