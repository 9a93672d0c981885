package emulator

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Instructions executed per cycle batch and the buzzer pitch in Hz.
const DEFAULT_BATCH_SIZE = 10
const DEFAULT_TONE_FREQUENCY = 440

// Option configures a Chip8 created by New.
type Option func(*Chip8)

// WithBatchSize sets how many instructions run per cycle batch. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(c *Chip8) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithToneFrequency sets the buzzer pitch in Hz.
func WithToneFrequency(hz int) Option {
	return func(c *Chip8) {
		if hz > 0 {
			c.toneFrequency = hz
		}
	}
}

// WithRefreshRate sets how many cycle batches Run performs per second.
func WithRefreshRate(hz int) Option {
	return func(c *Chip8) {
		if hz > 0 {
			c.refreshRate = hz
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) {
		c.logger = logger
	}
}

// WithRandom sets the generator behind Cxkk, which makes runs reproducible.
func WithRandom(rng *rand.Rand) Option {
	return func(c *Chip8) {
		c.rng = rng
	}
}

func WithTrace(trace TraceFunc) Option {
	return func(c *Chip8) {
		c.trace = trace
	}
}
