package emulator

import (
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

/*
INSTRUCTIONS IMPLEMENTATION

The following section is the set of instruction operations allowed to us in Chip8.
See this documentation for more details:
https://github.com/mattmikolay/chip-8/wiki/Mastering-CHIP%E2%80%908
https://github.com/mattmikolay/chip-8/wiki/CHIP%E2%80%908-Instruction-Set

By the time an executor runs, the PC has already been advanced past the instruction.
Register arithmetic is masked to 8 bits explicitly. Wherever VF is both an operand and the
flag output, the flag is computed first and written last.
*/
var executors = [opCount]func(*Chip8, Instruction) error{
	Op00E0: (*Chip8).op00E0,
	Op00EE: (*Chip8).op00EE,
	Op1nnn: (*Chip8).op1nnn,
	Op2nnn: (*Chip8).op2nnn,
	Op3xkk: (*Chip8).op3xkk,
	Op4xkk: (*Chip8).op4xkk,
	Op5xy0: (*Chip8).op5xy0,
	Op6xkk: (*Chip8).op6xkk,
	Op7xkk: (*Chip8).op7xkk,
	Op8xy0: (*Chip8).op8xy0,
	Op8xy1: (*Chip8).op8xy1,
	Op8xy2: (*Chip8).op8xy2,
	Op8xy3: (*Chip8).op8xy3,
	Op8xy4: (*Chip8).op8xy4,
	Op8xy5: (*Chip8).op8xy5,
	Op8xy6: (*Chip8).op8xy6,
	Op8xy7: (*Chip8).op8xy7,
	Op8xyE: (*Chip8).op8xyE,
	Op9xy0: (*Chip8).op9xy0,
	OpAnnn: (*Chip8).opAnnn,
	OpBnnn: (*Chip8).opBnnn,
	OpCxkk: (*Chip8).opCxkk,
	OpDxyn: (*Chip8).opDxyn,
	OpEx9E: (*Chip8).opEx9E,
	OpExA1: (*Chip8).opExA1,
	OpFx07: (*Chip8).opFx07,
	OpFx0A: (*Chip8).opFx0A,
	OpFx15: (*Chip8).opFx15,
	OpFx18: (*Chip8).opFx18,
	OpFx1E: (*Chip8).opFx1E,
	OpFx29: (*Chip8).opFx29,
	OpFx33: (*Chip8).opFx33,
	OpFx55: (*Chip8).opFx55,
	OpFx65: (*Chip8).opFx65,
}

/*
00E0: CLS
Clear the display
*/
func (c *Chip8) op00E0(Instruction) error {
	c.display.Clear()
	return nil
}

/*
00EE: RET
Return from a subroutine.
Popping an empty stack means the program or the emulator is broken, so there is nothing to continue with.
*/
func (c *Chip8) op00EE(Instruction) error {
	addr, ok := c.state.pop()
	if !ok {
		return ErrStackUnderflow
	}

	c.state.PC = addr
	return nil
}

/*
1nnn: JP addr
Jump to location nnn.
A jump doesn't remember its origin, so no stack interaction required.
*/
func (c *Chip8) op1nnn(in Instruction) error {
	c.state.PC = in.NNN
	return nil
}

/*
2nnn - CALL addr
Call subroutine at nnn.
The PC pushed is the already advanced one, so RET resumes after the CALL.
*/
func (c *Chip8) op2nnn(in Instruction) error {
	c.state.push(c.state.PC)
	c.state.PC = in.NNN
	return nil
}

/*
3xkk - SE Vx, byte
Skip next instruction if Vx = kk.
Since our PC has already been incremented by 2, we can just increment by 2 again to skip the next instruction.
*/
func (c *Chip8) op3xkk(in Instruction) error {
	if c.state.Register(in.X) == in.KK {
		c.state.PC += 2
	}
	return nil
}

/*
4xkk - SNE Vx, byte
Skip next instruction if Vx != kk.
*/
func (c *Chip8) op4xkk(in Instruction) error {
	if c.state.Register(in.X) != in.KK {
		c.state.PC += 2
	}
	return nil
}

/*
5xy0 - SE Vx, Vy
Skip next instruction if Vx = Vy.
*/
func (c *Chip8) op5xy0(in Instruction) error {
	if c.state.Register(in.X) == c.state.Register(in.Y) {
		c.state.PC += 2
	}
	return nil
}

/*
6xkk - LD Vx, byte
Set Vx = kk.
*/
func (c *Chip8) op6xkk(in Instruction) error {
	c.state.SetRegister(in.X, in.KK)
	return nil
}

/*
7xkk - ADD Vx, byte
Set Vx = Vx + kk.
Wraps around without touching VF, only 8xy4 reports a carry.
*/
func (c *Chip8) op7xkk(in Instruction) error {
	sum := uint16(c.state.Register(in.X)) + uint16(in.KK)
	c.state.SetRegister(in.X, byte(sum&0xFF))
	return nil
}

/*
8xy0 - LD Vx, Vy
Set Vx = Vy.
*/
func (c *Chip8) op8xy0(in Instruction) error {
	c.state.SetRegister(in.X, c.state.Register(in.Y))
	return nil
}

/*
8xy1 - OR Vx, Vy
Set Vx = Vx OR Vy.
Quirk: VF is reset to 0 afterwards.
*/
func (c *Chip8) op8xy1(in Instruction) error {
	c.state.SetRegister(in.X, c.state.Register(in.X)|c.state.Register(in.Y))
	c.state.setFlag(false)
	return nil
}

/*
8xy2 - AND Vx, Vy
Set Vx = Vx AND Vy.
Quirk: VF is reset to 0 afterwards.
*/
func (c *Chip8) op8xy2(in Instruction) error {
	c.state.SetRegister(in.X, c.state.Register(in.X)&c.state.Register(in.Y))
	c.state.setFlag(false)
	return nil
}

/*
8xy3 - XOR Vx, Vy
Set Vx = Vx XOR Vy.
Quirk: VF is reset to 0 afterwards.
*/
func (c *Chip8) op8xy3(in Instruction) error {
	c.state.SetRegister(in.X, c.state.Register(in.X)^c.state.Register(in.Y))
	c.state.setFlag(false)
	return nil
}

/*
8xy4 - ADD Vx, Vy
Set Vx = Vx + Vy, set VF = carry.
The values of Vx and Vy are added together. If the result is greater than 8 bits (i.e., > 255,) VF is set to 1, otherwise 0.
Only the lowest 8 bits of the result are kept, and stored in Vx.
*/
func (c *Chip8) op8xy4(in Instruction) error {
	sum := uint16(c.state.Register(in.X)) + uint16(c.state.Register(in.Y))

	c.state.SetRegister(in.X, byte(sum&0xFF))
	c.state.setFlag(sum > 0xFF)
	return nil
}

/*
8xy5 - SUB Vx, Vy
Set Vx = Vx - Vy, set VF = NOT borrow.
If Vx > Vy, then VF is set to 1, otherwise 0. Then Vy is subtracted from Vx, and the results stored in Vx.
The flag is captured first in case x or y is VF itself.
*/
func (c *Chip8) op8xy5(in Instruction) error {
	vx := c.state.Register(in.X)
	vy := c.state.Register(in.Y)
	notBorrow := vx > vy

	c.state.SetRegister(in.X, byte((int(vx)-int(vy))&0xFF))
	c.state.setFlag(notBorrow)
	return nil
}

/*
8xy6 - SHR Vx
Set Vx = Vx SHR 1.
The least significant bit is saved in VF, then Vx is divided by 2.
Vy is part of the encoding but is ignored: this shifts Vx in place.
*/
func (c *Chip8) op8xy6(in Instruction) error {
	vx := c.state.Register(in.X)
	lsb := vx & 0x1

	c.state.SetRegister(in.X, vx>>1)
	c.state.Registers[FLAG_REGISTER] = lsb
	return nil
}

/*
8xy7 - SUBN Vx, Vy
Set Vx = Vy - Vx, set VF = NOT borrow.
If Vy > Vx, then VF is set to 1, otherwise 0. Then Vx is subtracted from Vy, and the results stored in Vx.
*/
func (c *Chip8) op8xy7(in Instruction) error {
	vx := c.state.Register(in.X)
	vy := c.state.Register(in.Y)
	notBorrow := vy > vx

	c.state.SetRegister(in.X, byte((int(vy)-int(vx))&0xFF))
	c.state.setFlag(notBorrow)
	return nil
}

/*
8xyE - SHL Vx
Set Vx = Vx SHL 1.
The most significant bit is saved in VF, then Vx is multiplied by 2.
Like 8xy6, Vy is ignored.
*/
func (c *Chip8) op8xyE(in Instruction) error {
	vx := c.state.Register(in.X)
	msb := (vx & 0x80) >> 7

	c.state.SetRegister(in.X, byte((uint16(vx)<<1)&0xFF))
	c.state.Registers[FLAG_REGISTER] = msb
	return nil
}

/*
9xy0 - SNE Vx, Vy
Skip next instruction if Vx != Vy.
*/
func (c *Chip8) op9xy0(in Instruction) error {
	if c.state.Register(in.X) != c.state.Register(in.Y) {
		c.state.PC += 2
	}
	return nil
}

/*
Annn - LD I, addr
Set I = nnn.
*/
func (c *Chip8) opAnnn(in Instruction) error {
	c.state.Index = in.NNN
	return nil
}

/*
Bnnn - JP V0, addr
Jump to location nnn + V0.
*/
func (c *Chip8) opBnnn(in Instruction) error {
	c.state.PC = in.NNN + uint16(c.state.Register(0))
	return nil
}

/*
Cxkk - RND Vx, byte
Set Vx = random byte AND kk.
*/
func (c *Chip8) opCxkk(in Instruction) error {
	c.state.SetRegister(in.X, byte(c.rng.UintN(256))&in.KK)
	return nil
}

/*
Dxyn - DRW Vx, Vy, nibble
Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.
A sprite is always eight pixels wide, so we walk each row bit by bit from the most significant one.
Lit sprite bits are toggled on the display, which tells us whether that pixel was already on.
Wrapping at the display edges is up to the display.
A sprite reaching past the end of memory is rejected before any pixel is touched.
*/
func (c *Chip8) opDxyn(in Instruction) error {
	if last := int(c.state.Index) + int(in.N) - 1; in.N > 0 && last >= MEMORY_SIZE {
		return errors.Wrapf(ErrAddressOutOfRange, "sprite rows 0x%X-0x%X", c.state.Index, last)
	}

	x := int(c.state.Register(in.X))
	y := int(c.state.Register(in.Y))
	collision := false

	c.state.setFlag(false)
	for row := 0; row < int(in.N); row++ {
		sprite := c.state.Read8(c.state.Index + uint16(row))
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if c.display.SetPixel(x+col, y+row) {
				collision = true
			}
		}
	}

	c.state.setFlag(collision)
	return nil
}

/*
Ex9E - SKP Vx
Skip next instruction if key with the value of Vx is pressed.
*/
func (c *Chip8) opEx9E(in Instruction) error {
	if c.keyboard.IsKeyPressed(c.state.Register(in.X)) {
		c.state.PC += 2
	}
	return nil
}

/*
ExA1 - SKNP Vx
Skip next instruction if key with the value of Vx is not pressed.
*/
func (c *Chip8) opExA1(in Instruction) error {
	if !c.keyboard.IsKeyPressed(c.state.Register(in.X)) {
		c.state.PC += 2
	}
	return nil
}

/*
Fx07 - LD Vx, DT
Set Vx = delay timer value.
*/
func (c *Chip8) opFx07(in Instruction) error {
	c.state.SetRegister(in.X, c.state.DelayTimer)
	return nil
}

/*
Fx0A - LD Vx, K
Wait for a key press, store the value of the key in Vx.
Rather than spinning on the same instruction, the core records what it is waiting for and stops executing.
Timers and the display carry on. The next key release fills Vx and lets execution continue.
*/
func (c *Chip8) opFx0A(in Instruction) error {
	c.wait = &keyWait{register: in.X}
	c.logger.Debug("Waiting for key", log.Hex("register", in.X))
	return nil
}

/*
Fx15 - LD DT, Vx
Set delay timer = Vx.
*/
func (c *Chip8) opFx15(in Instruction) error {
	c.state.DelayTimer = c.state.Register(in.X)
	return nil
}

/*
Fx18 - LD ST, Vx
Set sound timer = Vx.
*/
func (c *Chip8) opFx18(in Instruction) error {
	c.state.SoundTimer = c.state.Register(in.X)
	return nil
}

/*
Fx1E - ADD I, Vx
Set I = I + Vx.
No overflow flag is defined for this one.
*/
func (c *Chip8) opFx1E(in Instruction) error {
	c.state.Index += uint16(c.state.Register(in.X))
	return nil
}

/*
Fx29 - LD F, Vx
Set I = location of sprite for digit Vx.
The font characters start at 0x000 and are five bytes each.
*/
func (c *Chip8) opFx29(in Instruction) error {
	digit := uint16(c.state.Register(in.X))
	c.state.Index = FONTSET_START_ADDRESS + FONT_GLYPH_SIZE*digit
	return nil
}

/*
Fx33 - LD B, Vx
Store BCD representation of Vx in memory locations I, I+1, and I+2.
The hundreds digit goes to I, the tens digit to I+1, and the ones digit to I+2.
*/
func (c *Chip8) opFx33(in Instruction) error {
	value := c.state.Register(in.X)
	i := c.state.Index

	c.state.Write8(i, value/100)
	c.state.Write8(i+1, (value%100)/10)
	c.state.Write8(i+2, value%10)
	return nil
}

/*
Fx55 - LD [I], Vx
Store registers V0 through Vx in memory starting at location I.
I itself is left unchanged.
*/
func (c *Chip8) opFx55(in Instruction) error {
	for r := byte(0); r <= in.X; r++ {
		c.state.Write8(c.state.Index+uint16(r), c.state.Register(r))
	}
	return nil
}

/*
Fx65 - LD Vx, [I]
Read registers V0 through Vx from memory starting at location I.
*/
func (c *Chip8) opFx65(in Instruction) error {
	for r := byte(0); r <= in.X; r++ {
		c.state.SetRegister(r, c.state.Read8(c.state.Index+uint16(r)))
	}
	return nil
}
