package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		opcode Opcode
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS 123"},
		{0x1228, "JP 228"},
		{0x2ABC, "CALL ABC"},
		{0x3A2F, "SE VA, 2F"},
		{0x4B00, "SNE VB, 00"},
		{0x5120, "SE V1, V2"},
		{0x6C7F, "LD VC, 7F"},
		{0x7D01, "ADD VD, 01"},
		{0x8120, "LD V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8126, "SHR V1"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1"},
		{0xA2EA, "LD I, 2EA"},
		{0xB300, "JP V0, 300"},
		{0xC0FF, "RND V0, FF"},
		{0xD015, "DRW V0, V1, 5"},
		{0xE59E, "SKP V5"},
		{0xE5A1, "SKNP V5"},
		{0xF307, "LD V3, DT"},
		{0xF30A, "LD V3, K"},
		{0xF315, "LD DT, V3"},
		{0xF318, "LD ST, V3"},
		{0xF31E, "ADD I, V3"},
		{0xF329, "LD F, V3"},
		{0xF333, "LD B, V3"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0x8008, "DW 8008"},
		{0xFFFF, "DW FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opcode.String())
		})
	}
}
