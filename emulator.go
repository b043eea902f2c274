//go:build !headless

/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package emul8

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/byteconv"
	"github.com/senojj/emul8/chip8"
	"golang.org/x/sync/errgroup"
)

var ErrNoDesktop = errors.New("emulator cannot be run on mobile")

// keyFor maps a fyne key name onto the keypad. Letter and digit keys are
// named by their single character.
func keyFor(name fyne.KeyName) (uint8, bool) {
	r := []rune(string(name))
	if len(r) != 1 {
		return 0, false
	}
	return KeyFor(r[0])
}

// Emulator is the desktop frontend: the scaled display, a console of recent
// opcodes, the register file and a play/pause/step toolbar.
type Emulator struct {
	cfg    Config
	cpu    *chip8.Processor
	beep   *Beep
	logger *log.Logger

	buffer  *image.RGBA // owned by the UI thread
	console *Console

	mu     sync.Mutex // guards frame, fresh and recent
	frame  [chip8.Area]byte
	fresh  bool
	recent []string
}

func NewEmulator(cpu *chip8.Processor, cfg Config, logger *log.Logger) *Emulator {
	return &Emulator{
		cfg:     cfg,
		cpu:     cpu,
		beep:    NewBeep(cfg.BeepDuration),
		logger:  logger,
		buffer:  image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height)),
		console: NewConsole(9),
	}
}

func (e *Emulator) onKeyDown(k *fyne.KeyEvent) {
	if hex, ok := keyFor(k.Name); ok {
		e.cpu.SetKey(hex, true)
	}
}

func (e *Emulator) onKeyUp(r *Runner, k *fyne.KeyEvent) {
	if k.Name == fyne.KeyP {
		r.Toggle()
		return
	}

	if k.Name == fyne.KeyN {
		r.Next()
		return
	}

	if hex, ok := keyFor(k.Name); ok {
		e.cpu.SetKey(hex, false)
	}
}

// Render snapshots the display on the frame loop goroutine. The snapshot is
// painted into the image buffer by paint, on the UI thread.
func (e *Emulator) Render(d *chip8.Display) error {
	e.mu.Lock()
	copy(e.frame[:], d.Pixels())
	e.fresh = true
	e.mu.Unlock()
	return nil
}

// paint copies the latest snapshot into the image buffer and reports whether
// there was a new one.
func (e *Emulator) paint() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fresh {
		return false
	}
	e.fresh = false

	for i, val := range e.frame {
		x, y := i%chip8.Width, i/chip8.Width
		c := color.Black
		if val == 1 {
			c = color.White
		}
		e.buffer.Set(x, y, c) // Directly sets pixels in the buffer
	}
	return true
}

// onFault shows the fault in the opcode console. The processor stays halted
// until another ROM is opened.
func (e *Emulator) onFault(err error) {
	e.mu.Lock()
	e.recent = append(e.recent, "! "+err.Error())
	e.mu.Unlock()
}

// openROM reads a ROM and hands it to the frame loop.
func (e *Emulator) openROM(r *Runner, rc io.ReadCloser) error {
	defer func() {
		_ = rc.Close()
	}()

	program, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	r.RequestLoad(program)
	return nil
}

func (e *Emulator) traceOpcode(pc uint16) {
	opcode, err := e.cpu.OpcodeAt(pc)
	if err != nil {
		return
	}

	e.mu.Lock()
	e.recent = append(e.recent, opcode.String())
	e.mu.Unlock()
}

type Console struct {
	capacity  int
	container *fyne.Container
}

func NewConsole(capacity int) *Console {
	labels := make([]fyne.CanvasObject, capacity)
	for i := range capacity {
		labels[i] = widget.NewLabel("")
	}
	return &Console{
		capacity:  capacity,
		container: container.NewVBox(labels...),
	}
}

func (o *Console) Prepend(msg string) {
	newEntry := widget.NewLabelWithStyle(msg, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	o.container.Objects = append([]fyne.CanvasObject{newEntry}, o.container.Objects[:o.capacity-1]...)
}

func (o *Console) Refresh() {
	o.container.Refresh()
}

func (o *Console) Object() fyne.CanvasObject {
	return o.container
}

func registerLines(cpu *chip8.Processor, lines []string) {
	for i := uint8(0); i <= 0xF; i++ {
		registerName := byteconv.Hex(uint16(i), 1)
		registerValue := byteconv.Hex(uint16(cpu.Register(i)), 2)
		lines[i] = "V" + registerName + ": " + registerValue
	}
}

func hex3(v uint16) string {
	return byteconv.Hex(v, 3)
}

// Run opens the window and drives the processor until the window closes or
// ctx is done.
func (e *Emulator) Run(ctx context.Context) error {
	a := app.New()
	w := a.NewWindow("Chip-8 Emulator")

	img := canvas.NewImageFromImage(e.buffer)
	img.FillMode = canvas.ImageFillStretch  // Scales the grid to window size
	img.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	canv, ok := w.Canvas().(desktop.Canvas) // Extension that exposes OnKeyUp event
	if !ok {
		return ErrNoDesktop
	}

	scale := float32(e.cfg.Scale)

	imageContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale)),
		img,
	)

	opcodeContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(125, float32(chip8.Height))),
		e.console.Object(),
	)

	registerData := make([]string, chip8.RegisterCount)
	registerLines(e.cpu, registerData)
	boundRegisters := binding.BindStringList(&registerData)

	registerList := widget.NewListWithData(
		boundRegisters,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(di binding.DataItem, obj fyne.CanvasObject) {
			s, _ := di.(binding.String).Get()
			obj.(*widget.Label).SetText(s)
		},
	)

	runner := NewRunner(e.cpu, e.cfg,
		WithRenderer(e),
		WithBeeper(e.beep),
		WithRunnerLogger(e.logger),
		WithTrace(e.traceOpcode),
		WithFaultHandler(e.onFault),
	)

	canv.SetOnKeyDown(e.onKeyDown)
	canv.SetOnKeyUp(func(k *fyne.KeyEvent) {
		e.onKeyUp(runner, k)
	})

	openDialog := func() {
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if rc == nil {
				return // canceled
			}
			if err := e.openROM(runner, rc); err != nil {
				dialog.ShowError(err, w)
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{".ch8", ".c8"}))
		d.Show()
	}

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), openDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPlayIcon(), runner.Resume),
		widget.NewToolbarAction(theme.MediaPauseIcon(), runner.Pause),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), runner.Next),
	)

	programCounter := widget.NewLabel("PC: " + hex3(e.cpu.ProgramCounter()))
	index := widget.NewLabel("I: " + hex3(e.cpu.Index()))
	stackDepth := widget.NewLabel("Stack: " + strconv.Itoa(e.cpu.StackDepth()))

	hbox := container.NewHBox(layout.NewSpacer(), programCounter, layout.NewSpacer(), index, layout.NewSpacer(), stackDepth, layout.NewSpacer())

	box := container.NewBorder(toolbar, hbox, opcodeContent, registerList, imageContent)

	w.SetContent(box)

	w.Resize(fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale))

	w.SetFixedSize(true)

	// The frame loop publishes its state to the widgets once per frame; the
	// widgets are only touched inside fyne.Do.
	observe := func(chip8.Batch) {
		e.mu.Lock()
		recent := e.recent
		e.recent = nil
		e.mu.Unlock()

		lines := make([]string, chip8.RegisterCount)
		registerLines(e.cpu, lines)

		pc := e.cpu.ProgramCounter()
		i := e.cpu.Index()
		sd := e.cpu.StackDepth()

		fyne.Do(func() {
			if e.paint() {
				img.Refresh()
			}

			if n := len(recent); n > 0 {
				for _, s := range recent[max(0, n-e.console.capacity):] {
					e.console.Prepend(s)
				}
				e.console.Refresh()
			}

			copy(registerData, lines)
			_ = boundRegisters.Reload()

			programCounter.SetText("PC: " + hex3(pc))
			index.SetText("I: " + hex3(i))
			stackDepth.SetText("Stack: " + strconv.Itoa(sd))
		})
	}
	WithObserver(observe)(runner)

	ctx, cancel := context.WithCancel(ctx)
	w.SetOnClosed(cancel)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() {
			_ = e.beep.Stop()
		}()

		err := runner.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		fyne.Do(a.Quit)
		return nil
	})

	w.ShowAndRun()
	cancel()
	return g.Wait()
}
