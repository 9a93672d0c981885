// Package emulator implements the CHIP-8 interpreter core: memory and registers,
// the fetch-decode-execute cycle, timers and the pacing loop that drives them.
//
// Pixels, keys and sound are left to collaborators supplied by the caller.
package emulator

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Display receives the sprite pixels and is flushed once per cycle batch.
// Coordinates wrap at the edges of the display; SetPixel toggles a pixel
// and reports whether it was lit before the call.
type Display interface {
	SetPixel(x, y int) bool
	Clear()
	Present()
}

// Keyboard answers which of the 16 hex keys are held down.
// Key releases are delivered separately through Chip8.KeyReleased.
type Keyboard interface {
	IsKeyPressed(key byte) bool
}

// Tone starts and stops the buzzer. Both calls must be idempotent.
type Tone interface {
	Play(frequency int)
	Stop()
}

// TraceFunc is called with the address and decoded form of every instruction before it executes.
type TraceFunc func(pc uint16, in Instruction)

// keyWait is the state left behind by Fx0A: execution stays paused until a key release arrives.
type keyWait struct {
	register byte // Register that receives the key.
	key      byte
	released bool
}

// Chip8 is one interpreter instance. It is not safe for concurrent use.
type Chip8 struct {
	state *State

	display  Display
	keyboard Keyboard
	tone     Tone

	logger        *log.Logger
	rng           *rand.Rand
	trace         TraceFunc
	batchSize     int
	toneFrequency int
	refreshRate   int

	wait      *keyWait // Non-nil while Fx0A blocks on the next key release.
	suspended bool     // External pause, see Suspend.
	fault     error    // First fatal error; latched until the next Load.
}

// New creates an interpreter with the font loaded and an empty program area.
func New(display Display, keyboard Keyboard, tone Tone, opts ...Option) *Chip8 {
	c := &Chip8{
		display:       display,
		keyboard:      keyboard,
		tone:          tone,
		batchSize:     DEFAULT_BATCH_SIZE,
		toneFrequency: DEFAULT_TONE_FREQUENCY,
		refreshRate:   REFRESH_RATE,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		c.logger = log.NewWithConfig(cfg)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	c.state = freshState()
	return c
}

func freshState() *State {
	s := newState()
	copy(s.Memory[FONTSET_START_ADDRESS:], fontset[:])
	return s
}

// Load replaces the whole machine state with a fresh one holding the given cartridge image.
// An oversized program is rejected before anything is touched.
func (c *Chip8) Load(program []byte) error {
	if len(program) > MAX_PROGRAM_SIZE {
		return errors.Wrapf(ErrProgramTooLarge, "program size (%d) exceeds max size (%d)", len(program), MAX_PROGRAM_SIZE)
	}

	s := freshState()
	copy(s.Memory[START_ADDRESS:], program)

	c.state = s
	c.wait = nil
	c.fault = nil

	c.display.Clear()
	c.tone.Stop()

	c.logger.Info("Program loaded", log.Int("bytes", len(program)))
	return nil
}

// LoadFile reads a raw cartridge image from disk and loads it.
func (c *Chip8) LoadFile(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return errors.Wrapf(err, "reading rom '%s'", filepath)
	}

	if err := c.Load(data); err != nil {
		return errors.Wrapf(err, "loading rom '%s'", filepath)
	}
	return nil
}

/*
When we talk about one cycle of this primitive CPU, we're talking about a batch of work:
- Fetch, decode and execute a fixed number of instructions (unless paused)
- Count both timers down by one
- Start or stop the tone depending on the sound timer
- Present the display

Running several instructions per timer tick keeps the 60Hz timers and display apart from instruction throughput.
*/
func (c *Chip8) Cycle() error {
	if c.fault != nil {
		return c.fault
	}

	if !c.suspended {
		for i := 0; i < c.batchSize; i++ {
			if err := c.Step(); err != nil {
				return err
			}
		}

		c.updateTimers()
	}

	c.playSound()
	c.display.Present()
	return nil
}

// Step fetches the opcode at the program counter and executes it.
// Nothing happens while the core is suspended or waiting for a key.
func (c *Chip8) Step() error {
	if c.fault != nil {
		return c.fault
	}
	if !c.ready() {
		return nil
	}

	pc := c.state.PC
	if int(pc)+1 >= MEMORY_SIZE {
		return c.halt(newError(pc, 0, errors.Wrapf(ErrAddressOutOfRange, "fetch at 0x%04X", pc)))
	}

	// Opcodes are stored big-endian
	opcode := uint16(c.state.Memory[pc])<<8 | uint16(c.state.Memory[pc+1])
	return c.Execute(opcode)
}

// ready resolves a fulfilled key wait and reports whether an instruction may run.
func (c *Chip8) ready() bool {
	if c.suspended {
		return false
	}
	if c.wait == nil {
		return true
	}
	if !c.wait.released {
		return false
	}

	c.state.SetRegister(c.wait.register, c.wait.key)
	c.logger.Debug("Key wait fulfilled",
		log.Hex("register", c.wait.register),
		log.Hex("key", c.wait.key))
	c.wait = nil
	return true
}

// Execute runs a single opcode as though it had been fetched at the program counter.
// Unlike Step it ignores suspension and a pending Fx0A key wait; only a latched fault stops it.
func (c *Chip8) Execute(opcode uint16) (err error) {
	if c.fault != nil {
		return c.fault
	}

	pc := c.state.PC
	in := Decode(opcode)

	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(*AccessError)
			if !ok {
				panic(r)
			}
			err = c.halt(newError(pc, opcode, errors.Wrap(ErrAddressOutOfRange, ae.Error())))
		}
	}()

	if c.trace != nil {
		c.trace(pc, in)
	}

	// Increment the PC before we execute anything, jumps overwrite it afterwards
	c.state.PC += 2

	exec := executors[in.Op]
	if exec == nil {
		return nil
	}
	if err := exec(c, in); err != nil {
		return c.halt(newError(pc, opcode, err))
	}
	return nil
}

// halt latches a fatal error; the session cannot continue past it.
// The error goes back to the caller, who decides how loudly to report it.
func (c *Chip8) halt(err error) error {
	c.fault = err
	c.tone.Stop()
	c.logger.Debug("Emulation halted", log.Err(err))
	return err
}

func (c *Chip8) updateTimers() {
	if c.state.DelayTimer > 0 {
		c.state.DelayTimer--
	}

	if c.state.SoundTimer > 0 {
		c.state.SoundTimer--
	}
}

func (c *Chip8) playSound() {
	if c.state.SoundTimer > 0 && !c.suspended {
		c.tone.Play(c.toneFrequency)
	} else {
		c.tone.Stop()
	}
}

// KeyReleased delivers a key release from the keyboard. It only matters while
// Fx0A is waiting; the first release fulfils the wait and later ones are dropped.
func (c *Chip8) KeyReleased(key byte) {
	if c.wait == nil || c.wait.released || key > 0xF {
		return
	}

	c.wait.key = key
	c.wait.released = true
}

// Suspend stops execution and timers until Resume. The display keeps being presented.
func (c *Chip8) Suspend() {
	if !c.suspended {
		c.logger.Debug("Suspended", log.Hex("pc", c.state.PC))
	}
	c.suspended = true
}

func (c *Chip8) Resume() {
	if c.suspended {
		c.logger.Debug("Resumed", log.Hex("pc", c.state.PC))
	}
	c.suspended = false
}

// ToggleSuspend suspends a running core or resumes a suspended one.
func (c *Chip8) ToggleSuspend() {
	if c.suspended {
		c.Resume()
	} else {
		c.Suspend()
	}
}

func (c *Chip8) Suspended() bool {
	return c.suspended
}

// Paused reports whether an Fx0A instruction is still waiting for a key.
func (c *Chip8) Paused() bool {
	return c.wait != nil
}

// WaitingForKey returns the register an outstanding Fx0A will load.
func (c *Chip8) WaitingForKey() (byte, bool) {
	if c.wait == nil {
		return 0, false
	}
	return c.wait.register, true
}

// Err returns the fatal error that stopped the session, if any.
func (c *Chip8) Err() error {
	return c.fault
}

// Snapshot returns a copy of the machine state.
func (c *Chip8) Snapshot() State {
	return c.state.clone()
}
