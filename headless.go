package emul8

import (
	"context"
	"io"

	"github.com/retroenv/retrogolib/log"
)

// RunHeadless runs frames frames back to back, without waiting for the wall
// clock, and writes the final display to w.
func RunHeadless(ctx context.Context, r *Runner, logger *log.Logger, w io.Writer, frames int) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Tick(ctx); err != nil {
			return err
		}
	}

	if logger != nil {
		logger.Info("Headless run finished",
			log.Int("frames", frames),
			log.String("emulated", r.frameTime(frames).String()))
	}

	return NewTextRenderer(w).Render(r.Processor().Display())
}
