package emul8

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0x00, 0xE0,
		0xA2, 0x2A,
		0xD0, 0x15,
		0x12, 0x06,
		0xFF, 0xFF,
		0x42,
	}

	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, program))

	want := "200: 00E0  CLS\n" +
		"202: A22A  LD I, 22A\n" +
		"204: D015  DRW V0, V1, 5\n" +
		"206: 1206  JP 206\n" +
		"208: FFFF  DW FFFF\n" +
		"20A: 42    DB 42\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestDisassembleEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, nil))
	assert.Equal(t, 0, buf.Len())
}
