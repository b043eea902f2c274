package emul8

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

func newSimulationTerminal(t *testing.T, cpu *chip8.Processor) (*Terminal, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	return NewTerminal(screen, cpu, log.NewTestLogger(t)), screen
}

func TestTerminalRender(t *testing.T) {
	// LD I, 050; DRW V0, V0, 3: rows F0, 90, F0 of the zero glyph
	cpu := newProcessor(t, 0xA0, 0x50, 0xD0, 0x03)
	_, err := cpu.StepBatch(2)
	assert.NoError(t, err)

	term, screen := newSimulationTerminal(t, cpu)
	assert.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(chip8.Width, chip8.Height/2)

	assert.NoError(t, term.Render(cpu.Display()))

	cell := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}
	assert.Equal(t, '█', cell(0, 0))
	assert.Equal(t, '▀', cell(1, 0))
	assert.Equal(t, '▀', cell(0, 1))
	assert.Equal(t, '█', cell(3, 0))
	assert.Equal(t, ' ', cell(4, 0))
	assert.Equal(t, ' ', cell(4, 1))
}

func TestTerminalHandle(t *testing.T) {
	// ADD V0, 01; JP 200
	cpu := newProcessor(t, 0x70, 0x01, 0x12, 0x00)
	term, _ := newSimulationTerminal(t, cpu)
	r := NewRunner(cpu, DefaultConfig())

	err := term.handle(r, tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	assert.NoError(t, err)
	assert.True(t, cpu.Keypad().Pressed(0x5))

	assert.NoError(t, term.handle(r, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, r.Paused())

	assert.NoError(t, term.handle(r, tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)))
	assert.NoError(t, r.Tick(context.Background()))
	assert.Equal(t, uint16(0x202), cpu.ProgramCounter())

	assert.NoError(t, term.handle(r, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))

	err = term.handle(r, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, errors.Is(err, errQuit))
}

func TestTerminalKeyRelease(t *testing.T) {
	cpu := newProcessor(t, 0x12, 0x00)
	term, _ := newSimulationTerminal(t, cpu)

	term.press(0xA)
	assert.True(t, cpu.Keypad().Pressed(0xA))

	deadline := time.Now().Add(2 * time.Second)
	for cpu.Keypad().Pressed(0xA) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.False(t, cpu.Keypad().Pressed(0xA))
}

func TestTerminalRunStopsOnFault(t *testing.T) {
	cpu := newProcessor(t, 0xFF, 0xFF)
	term := NewTerminal(tcell.NewSimulationScreen(""), cpu, NewLogger(false, true))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := term.Run(ctx, DefaultConfig(), nopBeeper{})
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
}

func TestTerminalRunCanceled(t *testing.T) {
	cpu := newProcessor(t, 0x12, 0x00)
	term, _ := newSimulationTerminal(t, cpu)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	assert.NoError(t, term.Run(ctx, DefaultConfig(), nopBeeper{}))
}
