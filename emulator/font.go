package emulator

// The glyphs live at the very start of memory so Fx29 can locate one with Vx * 5.
const FONTSET_START_ADDRESS uint16 = 0x000
const FONT_GLYPH_SIZE = 5

// Built-in 4x5 pixel glyphs for the hex digits 0 through F. ROMs expect these to be present.
var fontset = [16 * FONT_GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Glyph returns a copy of the five sprite rows for hex digit d (0-F).
func Glyph(d byte) []byte {
	start := int(d&0xF) * FONT_GLYPH_SIZE
	return append([]byte(nil), fontset[start:start+FONT_GLYPH_SIZE]...)
}
