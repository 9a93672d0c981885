// Package main runs CHIP-8 programs inside a text terminal.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/internal/config"
	"github.com/adrichey/chip8/platform"
	"github.com/adrichey/chip8/platform/audio"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := app.Context()

	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	logger := cfg.Logger()
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			config.PrintBanner(logger, "chip8term", cfg.Quiet)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		return 1
	}

	if cfg.Version {
		config.PrintBanner(logger, "chip8term", false)
		return 0
	}

	tone := audio.NewMutedTone()
	if !cfg.Mute {
		if t, err := audio.NewTone(audio.DEFAULT_SAMPLE_RATE); err == nil {
			tone = t
		} else {
			logger.Error("Audio unavailable, running muted", log.Err(err))
		}
	}

	term := platform.NewTerminal(os.Stdin, os.Stdout, cfg.Hold)
	c8 := emulator.New(term, term, tone, cfg.Options(logger)...)
	term.OnRelease(c8.KeyReleased)
	term.OnPause(c8.ToggleSuspend)

	if err := c8.LoadFile(cfg.ROM); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		return 1
	}

	restore, err := platform.EnterRawMode(int(os.Stdin.Fd()))
	if err != nil {
		logger.Error("Preparing terminal failed", log.Err(err))
		return 1
	}

	term.Open()
	err = c8.Run(ctx, term)
	term.Close()
	if rerr := restore(); rerr != nil {
		logger.Error("Restoring terminal failed", log.Err(rerr))
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}
