package chip8

const (
	Width  int = 64
	Height int = 32
	Area   int = Width * Height

	spriteWidth = 8
)

// Display is the monochrome framebuffer. Each pixel is stored as 0 or 1,
// row-major from the top-left corner.
//
// The processor only ever sets the dirty flag; the consumer that paints a
// frame clears it.
type Display struct {
	pixels [Area]byte
	dirty  bool
}

func (d *Display) Pixels() []byte {
	return d.pixels[:]
}

// Pixel reports whether the pixel at (x, y) is set. Coordinates outside the
// grid are never set.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return d.pixels[y*Width+x] == 1
}

func (d *Display) Dirty() bool {
	return d.dirty
}

func (d *Display) ClearDirty() {
	d.dirty = false
}

func (d *Display) clear() {
	for i := range d.pixels {
		d.pixels[i] = 0
	}
	d.dirty = true
}

// draw XORs an 8-pixel-wide sprite onto the grid. The start position wraps
// around the grid; rows and columns that run past the right or bottom edge
// are clipped. It reports whether any set pixel was turned off.
func (d *Display) draw(x, y byte, sprite []byte) bool {
	startX := int(x) % Width
	startY := int(y) % Height

	var collision bool

	for row, bits := range sprite {
		if startY+row >= Height {
			// Reached the bottom of the display.
			break
		}

		for col := range spriteWidth {
			if startX+col >= Width {
				break
			}

			if bits&(0x80>>col) == 0 {
				continue
			}

			index := (startX + col) + (startY+row)*Width
			if d.pixels[index] == 1 {
				collision = true
			}
			d.pixels[index] ^= 1
		}
	}

	d.dirty = true
	return collision
}
