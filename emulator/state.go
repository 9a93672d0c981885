package emulator

import "fmt"

/*
The CHIP-8 has 4096 bytes of memory, meaning the address space is from 0x000 to 0xFFF.
The address space is segmented into two sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter. We keep the 16 built-in glyphs (0 through F) at the very start of it.
	0x200-0xFFF: Instructions from the ROM will be stored starting at 0x200, and anything left after the ROM's space is free to use.
*/
const MEMORY_SIZE = 4096
const START_ADDRESS uint16 = 0x200
const MAX_PROGRAM_SIZE = MEMORY_SIZE - int(START_ADDRESS)

// Chip8 has 16 8-bit registers, the last of which (VF) doubles as the carry/borrow/collision flag
const REGISTER_COUNT = 16
const FLAG_REGISTER = 0xF

// Memory is the flat 4k address space.
type Memory [MEMORY_SIZE]byte

// AccessError reports a read or write outside of memory or the register file.
// It is raised as a panic by the accessors and turned into an error by Execute.
type AccessError struct {
	Space string
	Index int
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s index 0x%X out of range", e.Space, e.Index)
}

// State is everything a loaded program can observe or change.
type State struct {
	// 4k bytes of memory
	Memory Memory

	// V0 through VF
	Registers [REGISTER_COUNT]byte

	// The Index Register is a special register used to store memory addresses for use in operations
	// It's a 16-bit register because the maximum memory address (0xFFF) is too big for an 8-bit register
	Index uint16

	// The Program Counter (PC) holds the address of the next instruction to execute
	PC uint16

	// Return addresses pushed by CALL. It grows as needed; there is no fixed depth.
	Stack []uint16

	// If the timer value is zero, it stays zero.
	// If it is loaded with a value, it is decremented once per cycle batch.
	DelayTimer byte

	// Same behavior as the Delay Timer, and the tone plays while it is non-zero
	SoundTimer byte
}

func newState() *State {
	return &State{PC: START_ADDRESS}
}

func (s *State) Read8(addr uint16) byte {
	if int(addr) >= MEMORY_SIZE {
		panic(&AccessError{Space: "memory", Index: int(addr)})
	}
	return s.Memory[addr]
}

func (s *State) Write8(addr uint16, value byte) {
	if int(addr) >= MEMORY_SIZE {
		panic(&AccessError{Space: "memory", Index: int(addr)})
	}
	s.Memory[addr] = value
}

func (s *State) Register(i byte) byte {
	if int(i) >= REGISTER_COUNT {
		panic(&AccessError{Space: "register", Index: int(i)})
	}
	return s.Registers[i]
}

func (s *State) SetRegister(i byte, value byte) {
	if int(i) >= REGISTER_COUNT {
		panic(&AccessError{Space: "register", Index: int(i)})
	}
	s.Registers[i] = value
}

// setFlag writes VF, 1 for true and 0 for false.
func (s *State) setFlag(v bool) {
	if v {
		s.Registers[FLAG_REGISTER] = 1
	} else {
		s.Registers[FLAG_REGISTER] = 0
	}
}

func (s *State) push(addr uint16) {
	s.Stack = append(s.Stack, addr)
}

func (s *State) pop() (uint16, bool) {
	if len(s.Stack) == 0 {
		return 0, false
	}
	addr := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return addr, true
}

// clone returns a deep copy, so the stack can be handed out without aliasing.
func (s *State) clone() State {
	c := *s
	c.Stack = append([]uint16(nil), s.Stack...)
	return c
}
