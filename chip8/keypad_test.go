package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.First()
	assert.False(t, ok)

	k.Set(0x1C, true) // only the low nibble counts
	assert.True(t, k.Pressed(0xC))

	k.Set(0x7, true)
	key, ok := k.First()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x7), key)

	k.Set(0x7, false)
	key, _ = k.First()
	assert.Equal(t, uint8(0xC), key)

	k.Release()
	assert.False(t, k.Pressed(0xC))
}
