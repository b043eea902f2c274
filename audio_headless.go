//go:build headless

package emul8

import (
	"context"
	"time"
)

// Beep is silent in headless builds.
type Beep struct {
	duration time.Duration
}

func NewBeep(d time.Duration) *Beep {
	return &Beep{duration: d}
}

func (b *Beep) Play(context.Context) error {
	return nil
}

func (b *Beep) Stop() error {
	return nil
}
