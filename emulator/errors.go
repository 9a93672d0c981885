package emulator

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrProgramTooLarge is returned by Load when a ROM does not fit between 0x200 and 0xFFF.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrStackUnderflow is raised by 00EE against an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrAddressOutOfRange is raised when an instruction touches memory past 0xFFF.
	ErrAddressOutOfRange = errors.New("address out of range")
)

// Error defines a runtime error. It aborts the session it happened in.
type Error struct {
	PC     uint16 // Address of the faulting instruction.
	Opcode uint16
	Err    error
}

func newError(pc, opcode uint16, err error) *Error {
	return &Error{PC: pc, Opcode: opcode, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
