package emul8

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
	"golang.org/x/sync/errgroup"
)

// keyHold is how long a key stays pressed after a keystroke. Terminals
// report presses only, and repeats arrive while a key is held.
const keyHold = 150 * time.Millisecond

var errQuit = errors.New("quit")

// Terminal draws the display with half block characters, two pixel rows per
// cell row.
type Terminal struct {
	screen tcell.Screen
	cpu    *chip8.Processor
	logger *log.Logger

	on  tcell.Style
	off tcell.Style

	mu     sync.Mutex
	timers [chip8.KeyCount]*time.Timer
}

func NewTerminal(screen tcell.Screen, cpu *chip8.Processor, logger *log.Logger) *Terminal {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return &Terminal{
		screen: screen,
		cpu:    cpu,
		logger: logger,
		on:     base.Foreground(tcell.ColorWhite),
		off:    base.Foreground(tcell.ColorBlack),
	}
}

func (t *Terminal) Render(d *chip8.Display) error {
	for y := 0; y < chip8.Height; y += 2 {
		for x := range chip8.Width {
			top, bottom := d.Pixel(x, y), d.Pixel(x, y+1)

			r, style := ' ', t.off
			switch {
			case top && bottom:
				r, style = '█', t.on
			case top:
				r, style = '▀', t.on
			case bottom:
				r, style = '▄', t.on
			}
			t.screen.SetContent(x, y/2, r, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// press holds key down for keyHold, extending the hold on repeats.
func (t *Terminal) press(key uint8) {
	t.cpu.SetKey(key, true)

	t.mu.Lock()
	defer t.mu.Unlock()

	if tm := t.timers[key]; tm != nil && tm.Reset(keyHold) {
		return
	}
	t.timers[key] = time.AfterFunc(keyHold, func() {
		t.cpu.SetKey(key, false)
	})
}

// handle applies one key event. It returns errQuit when the user asked to
// leave.
func (t *Terminal) handle(r *Runner, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return errQuit
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case ' ':
		r.Toggle()
		return nil
	case 'n', 'N':
		r.Next()
		return nil
	}

	if key, ok := KeyFor(ev.Rune()); ok {
		t.press(key)
	}
	return nil
}

// Run drives the processor inside the terminal until ctx is done, the user
// quits or the program faults.
func (t *Terminal) Run(ctx context.Context, cfg Config, beeper Beeper) error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	defer t.screen.Fini()

	t.screen.SetStyle(t.off)
	t.screen.Clear()

	runner := NewRunner(t.cpu, cfg,
		WithRenderer(t),
		WithBeeper(beeper),
		WithRunnerLogger(t.logger),
	)

	g, ctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch ev := ev.(type) {
				case *tcell.EventResize:
					t.screen.Sync()
				case *tcell.EventKey:
					if err := t.handle(runner, ev); err != nil {
						return err
					}
				}
			}
		}
	})

	g.Go(func() error {
		return runner.Run(ctx)
	})

	err := g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunTerminal runs the processor on the controlling terminal.
func RunTerminal(ctx context.Context, cpu *chip8.Processor, cfg Config, logger *log.Logger, beeper Beeper) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	return NewTerminal(screen, cpu, logger).Run(ctx, cfg, beeper)
}
