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

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8"
	"github.com/senojj/emul8/chip8"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		}
		emul8.NewLogger(false, false).Error("Invalid arguments", log.Err(err))
		os.Exit(2)
	}

	logger := emul8.NewLogger(opts.Debug, opts.Quiet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, opts, os.Stdout); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options, stdout io.Writer) error {
	program, err := os.ReadFile(opts.File)
	if err != nil {
		return err
	}
	logger.Debug("Read ROM", log.String("file", opts.File), log.Int("bytes", len(program)))

	if opts.Disasm {
		return emul8.Disassemble(stdout, program)
	}

	cpu := chip8.New(
		chip8.WithStackDepth(opts.StackDepth),
		chip8.WithLogger(logger),
	)
	if err := cpu.Load(program); err != nil {
		return err
	}

	switch opts.Mode {
	case emul8.ModeTerminal:
		beep := emul8.NewBeep(opts.BeepDuration)
		defer func() {
			_ = beep.Stop()
		}()
		return emul8.RunTerminal(ctx, cpu, opts.Config, logger, beep)

	case emul8.ModeHeadless:
		runner := emul8.NewRunner(cpu, opts.Config, emul8.WithRunnerLogger(logger))
		return emul8.RunHeadless(ctx, runner, logger, stdout, opts.Frames)

	default:
		return emul8.NewEmulator(cpu, opts.Config, logger).Run(ctx)
	}
}
