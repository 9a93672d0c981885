// Package main runs CHIP-8 programs in an SDL window.
package main

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/internal/config"
	"github.com/adrichey/chip8/platform/audio"
	"github.com/adrichey/chip8/platform/window"
)

const WINDOW_TITLE = "CHIP-8"

func init() {
	// SDL wants every call on the main thread.
	runtime.LockOSThread()
}

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
			config.PrintBanner(logger, "chip8", cfg.Quiet)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		return 1
	}

	config.PrintBanner(logger, "chip8", cfg.Quiet)
	if cfg.Version {
		return 0
	}

	w, err := window.New(WINDOW_TITLE, cfg.Scale)
	if err != nil {
		logger.Error("Opening window failed", log.Err(err))
		return 1
	}
	defer w.Close()

	tone := openTone(logger, cfg.Mute)
	c8 := emulator.New(w, w, tone, cfg.Options(logger)...)
	w.OnRelease(c8.KeyReleased)
	w.OnPause(c8.ToggleSuspend)

	if err := c8.LoadFile(cfg.ROM); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		return 1
	}

	if err := c8.Run(ctx, w); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Interrupted")
			return 0
		}
		logger.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}

func openTone(logger *log.Logger, mute bool) *audio.Tone {
	if mute {
		return audio.NewMutedTone()
	}

	tone, err := audio.NewTone(audio.DEFAULT_SAMPLE_RATE)
	if err != nil {
		logger.Error("Audio unavailable, running muted", log.Err(err))
		return audio.NewMutedTone()
	}
	return tone
}
