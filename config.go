package emul8

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

// Mode selects the frontend the emulator runs under.
type Mode string

const (
	ModeGUI      Mode = "gui"
	ModeTerminal Mode = "term"
	ModeHeadless Mode = "headless"
)

const (
	DefaultBatchSize    = 32
	DefaultFrameRate    = 60
	DefaultScale        = 10
	DefaultFrames       = 600
	DefaultBeepDuration = 100 * time.Millisecond
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the emulator settings.
type Config struct {
	Mode         Mode
	BatchSize    int           // steps per frame at most
	FrameRate    int           // frames per second, also the timer rate
	StackDepth   int           // maximum call depth
	Scale        int           // window pixels per CHIP-8 pixel
	Frames       int           // frames to run in headless mode
	BeepDuration time.Duration // tone length when the sound timer expires

	Debug bool
	Quiet bool
}

// DefaultConfig runs 32 steps per 60hz frame with a 16 level stack.
func DefaultConfig() Config {
	return Config{
		Mode:         ModeGUI,
		BatchSize:    DefaultBatchSize,
		FrameRate:    DefaultFrameRate,
		StackDepth:   chip8.DefaultStackDepth,
		Scale:        DefaultScale,
		Frames:       DefaultFrames,
		BeepDuration: DefaultBeepDuration,
	}
}

// FrameDuration is the ideal time between two frames.
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeGUI, ModeTerminal, ModeHeadless:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidConfig)
	}
	if c.FrameRate < 1 {
		return fmt.Errorf("%w: frame rate must be positive", ErrInvalidConfig)
	}
	if c.StackDepth < 1 {
		return fmt.Errorf("%w: stack depth must be positive", ErrInvalidConfig)
	}
	if c.Scale < 1 {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidConfig)
	}
	if c.Mode == ModeHeadless && c.Frames < 1 {
		return fmt.Errorf("%w: headless mode needs at least one frame", ErrInvalidConfig)
	}
	return nil
}

// NewLogger creates a logger with the level implied by the debug and quiet
// settings.
func NewLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
