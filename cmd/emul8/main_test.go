package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8"
	"github.com/senojj/emul8/chip8"
)

func writeROM(t *testing.T, program []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, program, 0o600))
	return path
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-mode", "headless", "-frames", "5", "-batch", "8", "-stack", "4", "-q", "rom.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, emul8.ModeHeadless, opts.Mode)
	assert.Equal(t, 5, opts.Frames)
	assert.Equal(t, 8, opts.BatchSize)
	assert.Equal(t, 4, opts.StackDepth)
	assert.True(t, opts.Quiet)
	assert.False(t, opts.Disasm)
	assert.Equal(t, "rom.ch8", opts.File)

	opts, err = parseFlags([]string{"rom.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, emul8.DefaultConfig(), opts.Config)
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no file", nil},
		{"two files", []string{"a.ch8", "b.ch8"}},
		{"unknown flag", []string{"-turbo", "rom.ch8"}},
		{"bad mode", []string{"-mode", "tty", "rom.ch8"}},
		{"bad batch", []string{"-batch", "0", "rom.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			var buf bytes.Buffer
			usageErr.ShowUsage(&buf)
			assert.True(t, strings.HasPrefix(buf.String(), "usage: emul8"))
			assert.True(t, strings.Contains(buf.String(), "-mode"))
		})
	}
}

func TestRunHeadless(t *testing.T) {
	// LD I, 050; DRW V0, V0, 5; JP 204
	path := writeROM(t, []byte{0xA0, 0x50, 0xD0, 0x05, 0x12, 0x04})

	opts, err := parseFlags([]string{"-mode", "headless", "-frames", "2", path})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, run(context.Background(), log.NewTestLogger(t), opts, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "####...."))
}

func TestRunDisasm(t *testing.T) {
	path := writeROM(t, []byte{0x00, 0xE0})

	opts, err := parseFlags([]string{"-disasm", path})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, run(context.Background(), log.NewTestLogger(t), opts, &buf))
	assert.Equal(t, "200: 00E0  CLS\n", buf.String())
}

func TestRunErrors(t *testing.T) {
	opts, err := parseFlags([]string{"-mode", "headless", filepath.Join(t.TempDir(), "missing.ch8")})
	assert.NoError(t, err)
	err = run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := writeROM(t, make([]byte, chip8.MaxProgramSize+1))
	opts, err = parseFlags([]string{"-mode", "headless", path})
	assert.NoError(t, err)
	err = run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
}
