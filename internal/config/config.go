// Package config handles command line options and application setup
package config

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/platform"
)

const (
	minSpeed = 1
	maxSpeed = 1000
	minTone  = 20
	maxTone  = 20000
	minScale = 1
	maxScale = 64
)

// Config holds the options shared by every frontend.
type Config struct {
	ROM string

	Speed int
	Tone  int
	Scale int
	Hold  int
	Seed  uint64

	Mute    bool
	Debug   bool
	Trace   bool
	Quiet   bool
	Version bool
}

// UsageError is returned when the command line cannot be used as given.
// The caller decides whether to print the usage text.
type UsageError struct {
	name  string
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text to stdout.
func (e *UsageError) ShowUsage() {
	e.Usage(os.Stdout)
}

// Usage writes the invocation, the options and the keypad layout to w.
func (e *UsageError) Usage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <program file>\n\n", e.name)
	fmt.Fprintf(w, "Runs a raw CHIP-8 cartridge image (at most %d bytes) loaded at 0x%03X.\n\n",
		emulator.MAX_PROGRAM_SIZE, emulator.START_ADDRESS)

	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	e.flags.SetOutput(io.Discard)

	fmt.Fprint(w, keypadHelp)
}

const keypadHelp = `
keypad    keyboard
1 2 3 C   1 2 3 4
4 5 6 D   Q W E R
7 8 9 E   A S D F
A 0 B F   Z X C V

P (window) or space (terminal) pauses, Esc quits.
`

// Parse reads the options from args, which excludes the program name.
func Parse(name string, args []string) (*Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	cfg := &Config{}
	flags.IntVar(&cfg.Speed, "speed", emulator.DEFAULT_BATCH_SIZE, "instructions executed per frame")
	flags.IntVar(&cfg.Tone, "tone", emulator.DEFAULT_TONE_FREQUENCY, "buzzer frequency in Hz")
	flags.IntVar(&cfg.Scale, "scale", 10, "window pixels per screen pixel")
	flags.IntVar(&cfg.Hold, "hold", platform.DEFAULT_HOLD_FRAMES, "frames a terminal key press counts as held")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "seed for the random number generator, 0 picks one")
	flags.BoolVar(&cfg.Mute, "mute", false, "do not open the audio device")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&cfg.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&cfg.Quiet, "q", false, "only log errors")
	flags.BoolVar(&cfg.Version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		return cfg, &UsageError{name: name, flags: flags, msg: err.Error()}
	}
	if cfg.Trace {
		cfg.Debug = true
	}
	if cfg.Version {
		return cfg, nil
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return cfg, &UsageError{name: name, flags: flags, msg: "expected exactly one program file"}
	}
	cfg.ROM = rest[0]

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the numeric options are in a usable range.
func (c *Config) Validate() error {
	if c.Speed < minSpeed || c.Speed > maxSpeed {
		return errors.Errorf("speed %d out of range %d-%d", c.Speed, minSpeed, maxSpeed)
	}
	if c.Tone < minTone || c.Tone > maxTone {
		return errors.Errorf("tone %d out of range %d-%d", c.Tone, minTone, maxTone)
	}
	if c.Scale < minScale || c.Scale > maxScale {
		return errors.Errorf("scale %d out of range %d-%d", c.Scale, minScale, maxScale)
	}
	if c.Hold < 1 {
		return errors.Errorf("hold %d must be at least 1", c.Hold)
	}
	return nil
}

// Options converts the configuration into interpreter options.
func (c *Config) Options(logger *log.Logger) []emulator.Option {
	opts := []emulator.Option{
		emulator.WithLogger(logger),
		emulator.WithBatchSize(c.Speed),
		emulator.WithToneFrequency(c.Tone),
	}

	if c.Seed != 0 {
		opts = append(opts, emulator.WithRandom(rand.New(rand.NewPCG(c.Seed, c.Seed))))
	}

	if c.Trace {
		opts = append(opts, emulator.WithTrace(func(pc uint16, in emulator.Instruction) {
			logger.Debug("Executing",
				log.Hex("pc", pc),
				log.Stringer("instruction", in))
		}))
	}

	return opts
}

// Logger builds the logger for the chosen verbosity. -debug and -trace win over -q.
func (c *Config) Logger() *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case c.Debug || c.Trace:
		cfg.Level = log.DebugLevel
	case c.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
