package emul8

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/senojj/emul8/chip8"
)

func TestTextRenderer(t *testing.T) {
	// LD I, 050; DRW V0, V0, 1
	cpu := newProcessor(t, 0xA0, 0x50, 0xD0, 0x01)
	_, err := cpu.StepBatch(2)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, NewTextRenderer(&buf).Render(cpu.Display()))

	lines := strings.Split(buf.String(), "\n")
	// Height rows, the blank separator and the empty string after it.
	assert.Equal(t, chip8.Height+2, len(lines))
	assert.Equal(t, "####"+strings.Repeat(".", chip8.Width-4), lines[0])
	assert.Equal(t, strings.Repeat(".", chip8.Width), lines[1])
	assert.Equal(t, "", lines[chip8.Height])
}
