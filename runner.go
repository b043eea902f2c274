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
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

// Renderer paints a frame. It is called from the frame loop goroutine
// whenever the display is dirty.
type Renderer interface {
	Render(d *chip8.Display) error
}

// Beeper plays a fixed tone. Play must not block for the tone's duration.
type Beeper interface {
	Play(ctx context.Context) error
}

type nopRenderer struct{}

func (nopRenderer) Render(*chip8.Display) error { return nil }

type nopBeeper struct{}

func (nopBeeper) Play(context.Context) error { return nil }

// Runner drives a processor at a fixed frame rate. Every frame runs a bounded
// batch of steps, ticks the timers once and presents the display if it
// changed.
type Runner struct {
	cpu      *chip8.Processor
	cfg      Config
	clock    Clock
	renderer Renderer
	beeper   Beeper
	logger   *log.Logger
	trace    func(pc uint16)
	observe  func(chip8.Batch)
	onFault  func(error)
	loads    chan []byte

	paused atomic.Bool
	next   atomic.Bool
	frames atomic.Uint64
}

type RunnerOption func(*Runner)

func WithClock(c Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

func WithRenderer(rd Renderer) RunnerOption {
	return func(r *Runner) { r.renderer = rd }
}

func WithBeeper(b Beeper) RunnerOption {
	return func(r *Runner) { r.beeper = b }
}

func WithRunnerLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithTrace registers fn to be called with the program counter before every
// step.
func WithTrace(fn func(pc uint16)) RunnerOption {
	return func(r *Runner) { r.trace = fn }
}

// WithObserver registers fn to be called at the end of every frame with the
// steps that ran in it.
func WithObserver(fn func(chip8.Batch)) RunnerOption {
	return func(r *Runner) { r.observe = fn }
}

// WithFaultHandler keeps the loop alive after a fault. fn is called with the
// fault once, then frames keep running without steps until a new program is
// loaded. fn also receives programs that failed to load.
func WithFaultHandler(fn func(error)) RunnerOption {
	return func(r *Runner) { r.onFault = fn }
}

func NewRunner(cpu *chip8.Processor, cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		loads:    make(chan []byte, 1),
		cpu:      cpu,
		cfg:      cfg,
		clock:    WallClock(),
		renderer: nopRenderer{},
		beeper:   nopBeeper{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Processor() *chip8.Processor {
	return r.cpu
}

// Load replaces the running program. It must be called from the goroutine
// that runs the frame loop, or while the loop is stopped.
func (r *Runner) Load(program []byte) error {
	if err := r.cpu.Load(program); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Info("Program loaded", log.Int("bytes", len(program)))
	}
	return nil
}

// RequestLoad queues program to be loaded at the start of the next frame. It
// is safe to call from any goroutine; a pending request is replaced.
func (r *Runner) RequestLoad(program []byte) {
	for {
		select {
		case r.loads <- program:
			return
		default:
		}

		select {
		case <-r.loads:
		default:
		}
	}
}

func (r *Runner) loadPending() {
	select {
	case program := <-r.loads:
		if err := r.Load(program); err != nil {
			if r.logger != nil {
				r.logger.Warn("Loading program failed", log.Err(err))
			}
			if r.onFault != nil {
				r.onFault(err)
			}
		}
	default:
	}
}

func (r *Runner) Pause() {
	r.paused.Store(true)
}

func (r *Runner) Resume() {
	r.paused.Store(false)
}

func (r *Runner) Toggle() {
	r.paused.Store(!r.paused.Load())
}

func (r *Runner) Paused() bool {
	return r.paused.Load()
}

// Next requests a single step while paused.
func (r *Runner) Next() {
	r.next.Store(true)
}

// Frames returns the number of frames run so far.
func (r *Runner) Frames() uint64 {
	return r.frames.Load()
}

// Tick runs one frame. While paused no steps run and the timers hold, except
// that a pending Next runs exactly one step.
func (r *Runner) Tick(ctx context.Context) error {
	defer r.frames.Add(1)

	r.loadPending()

	limit := r.cfg.BatchSize
	if r.paused.Load() {
		limit = 0
		if r.next.CompareAndSwap(true, false) {
			limit = 1
		}
	}

	halted := r.cpu.State() == chip8.Halted
	if halted && r.onFault != nil {
		limit = 0
	}

	batch, err := r.steps(limit)
	if r.observe != nil {
		r.observe(batch)
	}
	if err != nil {
		if r.logger != nil {
			r.logger.Error("Execution stopped", log.Err(err))
		}
		if r.onFault == nil {
			return err
		}
		r.onFault(err)
		return r.present()
	}

	if !r.paused.Load() && !halted && r.cpu.TickTimers() {
		if err := r.beeper.Play(ctx); err != nil && r.logger != nil {
			r.logger.Warn("Playing tone failed", log.Err(err))
		}
	}

	return r.present()
}

func (r *Runner) steps(limit int) (chip8.Batch, error) {
	if r.trace == nil {
		return r.cpu.StepBatch(limit)
	}

	var b chip8.Batch
	for b.Steps < limit {
		r.trace(r.cpu.ProgramCounter())

		one, err := r.cpu.StepBatch(1)
		b.Steps += one.Steps
		b.Info |= one.Info
		if err != nil {
			return b, err
		}

		if one.Info&chip8.Redraw != 0 {
			break
		}
	}
	return b, nil
}

func (r *Runner) present() error {
	d := r.cpu.Display()
	if !d.Dirty() {
		return nil
	}

	if err := r.renderer.Render(d); err != nil {
		return err
	}
	d.ClearDirty()
	return nil
}

// Run ticks frames until ctx is done or a frame fails. Deadlines are derived
// from the previous deadline rather than from the time a frame finished, so
// scheduling jitter does not accumulate. A loop that falls more than a frame
// behind waits a full frame from the current time instead of catching up.
func (r *Runner) Run(ctx context.Context) error {
	frame := r.cfg.FrameDuration()
	deadline := r.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.Tick(ctx); err != nil {
			return err
		}

		deadline = deadline.Add(frame)
		now := r.clock.Now()
		if now.Sub(deadline) > frame {
			deadline = now.Add(frame)
		}

		if err := r.clock.Sleep(ctx, deadline.Sub(now)); err != nil {
			return err
		}
	}
}

// frameTime converts a frame count to emulated time.
func (r *Runner) frameTime(frames int) time.Duration {
	return time.Duration(frames) * r.cfg.FrameDuration()
}
