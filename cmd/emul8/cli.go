package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/senojj/emul8"
)

// options are the command line settings.
type options struct {
	emul8.Config

	File   string
	Disasm bool
}

// UsageError is returned when the command line cannot be used to start.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: emul8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

func parseFlags(args []string) (options, error) {
	opts := options{Config: emul8.DefaultConfig()}

	flags := flag.NewFlagSet("emul8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	mode := string(opts.Mode)
	flags.StringVar(&mode, "mode", mode, "frontend: gui, term, headless")
	flags.IntVar(&opts.BatchSize, "batch", opts.BatchSize, "maximum instructions per frame")
	flags.IntVar(&opts.FrameRate, "rate", opts.FrameRate, "frames per second")
	flags.IntVar(&opts.StackDepth, "stack", opts.StackDepth, "maximum subroutine call depth")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixels per display pixel")
	flags.IntVar(&opts.Frames, "frames", opts.Frames, "frames to run in headless mode")
	flags.DurationVar(&opts.BeepDuration, "beep", opts.BeepDuration, "tone length when the sound timer expires")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a listing of the ROM and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "quiet mode")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return opts, &UsageError{flags: flags, msg: "must specify exactly one file"}
	}
	opts.File = rest[0]
	opts.Mode = emul8.Mode(mode)

	if err := opts.Validate(); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}
