//go:build headless

package emul8

import (
	"context"
	"errors"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

var ErrNoDesktop = errors.New("desktop frontend not available in headless builds")

type Emulator struct{}

func NewEmulator(*chip8.Processor, Config, *log.Logger) *Emulator {
	return &Emulator{}
}

func (e *Emulator) Run(context.Context) error {
	return ErrNoDesktop
}
