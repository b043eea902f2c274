package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplayDraw(t *testing.T) {
	t.Run("msb is leftmost", func(t *testing.T) {
		var d Display
		collision := d.draw(0, 0, []byte{0x81})

		assert.False(t, collision)
		assert.True(t, d.Dirty())
		assert.True(t, d.Pixel(0, 0))
		assert.False(t, d.Pixel(1, 0))
		assert.True(t, d.Pixel(7, 0))
	})

	t.Run("start position wraps", func(t *testing.T) {
		var d Display
		d.draw(byte(Width+3), byte(Height+1), []byte{0x80})

		assert.True(t, d.Pixel(3, 1))
	})

	t.Run("clips at the right edge", func(t *testing.T) {
		var d Display
		d.draw(byte(Width-2), 0, []byte{0xFF})

		assert.True(t, d.Pixel(Width-2, 0))
		assert.True(t, d.Pixel(Width-1, 0))
		assert.False(t, d.Pixel(0, 0))
		assert.False(t, d.Pixel(0, 1))
	})

	t.Run("clips at the bottom edge", func(t *testing.T) {
		var d Display
		d.draw(0, byte(Height-1), []byte{0x80, 0x80})

		assert.True(t, d.Pixel(0, Height-1))
		assert.False(t, d.Pixel(0, 0))
	})

	t.Run("collision only on set pixels", func(t *testing.T) {
		var d Display
		d.draw(0, 0, []byte{0xF0})

		assert.False(t, d.draw(4, 0, []byte{0xF0}))
		assert.True(t, d.draw(6, 0, []byte{0xF0}))
		assert.False(t, d.Pixel(6, 0))
		assert.True(t, d.Pixel(9, 0))
	})

	t.Run("empty sprite marks dirty", func(t *testing.T) {
		var d Display
		assert.False(t, d.draw(0, 0, nil))
		assert.True(t, d.Dirty())

		d.ClearDirty()
		assert.False(t, d.Dirty())
	})
}

func TestDisplayPixelOutOfRange(t *testing.T) {
	var d Display
	d.clear()

	assert.False(t, d.Pixel(-1, 0))
	assert.False(t, d.Pixel(Width, 0))
	assert.False(t, d.Pixel(0, Height))
}
