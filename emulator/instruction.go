package emulator

import "fmt"

// Op identifies one of the CHIP-8 operations after decoding.
type Op uint8

// Known operations, named after their opcode pattern.
const (
	OpNone Op = iota // Unrecognised bit pattern (and 0nnn SYS); executes as a no-op.
	Op00E0
	Op00EE
	Op1nnn
	Op2nnn
	Op3xkk
	Op4xkk
	Op5xy0
	Op6xkk
	Op7xkk
	Op8xy0
	Op8xy1
	Op8xy2
	Op8xy3
	Op8xy4
	Op8xy5
	Op8xy6
	Op8xy7
	Op8xyE
	Op9xy0
	OpAnnn
	OpBnnn
	OpCxkk
	OpDxyn
	OpEx9E
	OpExA1
	OpFx07
	OpFx0A
	OpFx15
	OpFx18
	OpFx1E
	OpFx29
	OpFx33
	OpFx55
	OpFx65

	opCount
)

var mnemonics = [opCount]string{
	OpNone: "NOP",
	Op00E0: "CLS",
	Op00EE: "RET",
	Op1nnn: "JP addr",
	Op2nnn: "CALL addr",
	Op3xkk: "SE Vx, byte",
	Op4xkk: "SNE Vx, byte",
	Op5xy0: "SE Vx, Vy",
	Op6xkk: "LD Vx, byte",
	Op7xkk: "ADD Vx, byte",
	Op8xy0: "LD Vx, Vy",
	Op8xy1: "OR Vx, Vy",
	Op8xy2: "AND Vx, Vy",
	Op8xy3: "XOR Vx, Vy",
	Op8xy4: "ADD Vx, Vy",
	Op8xy5: "SUB Vx, Vy",
	Op8xy6: "SHR Vx",
	Op8xy7: "SUBN Vx, Vy",
	Op8xyE: "SHL Vx",
	Op9xy0: "SNE Vx, Vy",
	OpAnnn: "LD I, addr",
	OpBnnn: "JP V0, addr",
	OpCxkk: "RND Vx, byte",
	OpDxyn: "DRW Vx, Vy, nibble",
	OpEx9E: "SKP Vx",
	OpExA1: "SKNP Vx",
	OpFx07: "LD Vx, DT",
	OpFx0A: "LD Vx, K",
	OpFx15: "LD DT, Vx",
	OpFx18: "LD ST, Vx",
	OpFx1E: "ADD I, Vx",
	OpFx29: "LD F, Vx",
	OpFx33: "LD B, Vx",
	OpFx55: "LD [I], Vx",
	OpFx65: "LD Vx, [I]",
}

// String returns the assembler mnemonic of the operation.
func (op Op) String() string {
	if op >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return mnemonics[op]
}

// Instruction defines decoded instruction data.
// Every field is extracted up front; each executor reads the ones its encoding uses.
type Instruction struct {
	Opcode uint16 // Raw 16-bit instruction word.
	Op     Op
	X      byte   // Low nibble of the high byte: a register index.
	Y      byte   // High nibble of the low byte: a register index.
	N      byte   // Lowest nibble.
	KK     byte   // Lowest byte.
	NNN    uint16 // Lowest 12 bits: an address.
}

func (in Instruction) String() string {
	return fmt.Sprintf("%04X %s", in.Opcode, in.Op)
}

// Decode splits an opcode into its fields and identifies the operation.
// The high nibble picks the family, then the low nibble or low byte picks the member.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Op:     decodeOp(opcode),
		X:      byte((opcode & 0x0F00) >> 8),
		Y:      byte((opcode & 0x00F0) >> 4),
		N:      byte(opcode & 0x000F),
		KK:     byte(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}
}

func decodeOp(opcode uint16) Op {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return Op00E0
		case 0x00EE:
			return Op00EE
		}
	case 0x1000:
		return Op1nnn
	case 0x2000:
		return Op2nnn
	case 0x3000:
		return Op3xkk
	case 0x4000:
		return Op4xkk
	case 0x5000:
		if opcode&0x000F == 0 {
			return Op5xy0
		}
	case 0x6000:
		return Op6xkk
	case 0x7000:
		return Op7xkk
	case 0x8000:
		switch opcode & 0x000F {
		case 0x0:
			return Op8xy0
		case 0x1:
			return Op8xy1
		case 0x2:
			return Op8xy2
		case 0x3:
			return Op8xy3
		case 0x4:
			return Op8xy4
		case 0x5:
			return Op8xy5
		case 0x6:
			return Op8xy6
		case 0x7:
			return Op8xy7
		case 0xE:
			return Op8xyE
		}
	case 0x9000:
		if opcode&0x000F == 0 {
			return Op9xy0
		}
	case 0xA000:
		return OpAnnn
	case 0xB000:
		return OpBnnn
	case 0xC000:
		return OpCxkk
	case 0xD000:
		return OpDxyn
	case 0xE000:
		switch opcode & 0x00FF {
		case 0x9E:
			return OpEx9E
		case 0xA1:
			return OpExA1
		}
	case 0xF000:
		switch opcode & 0x00FF {
		case 0x07:
			return OpFx07
		case 0x0A:
			return OpFx0A
		case 0x15:
			return OpFx15
		case 0x18:
			return OpFx18
		case 0x1E:
			return OpFx1E
		case 0x29:
			return OpFx29
		case 0x33:
			return OpFx33
		case 0x55:
			return OpFx55
		case 0x65:
			return OpFx65
		}
	}

	return OpNone
}
