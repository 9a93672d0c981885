package platform

import "strings"

const VIDEO_HEIGHT = 32
const VIDEO_WIDTH = 64

// Pixel values as RGBA8888, so a frontend can hand them straight to the renderer
const PIXEL_OFF uint32 = 0x00000000
const PIXEL_ON uint32 = 0xFFFFFFFF

// Screen holds our 64x32 pixels. It is the draw target of the interpreter;
// frontends embed it and add a way to present it.
type Screen struct {
	Window [VIDEO_HEIGHT][VIDEO_WIDTH]uint32
	dirty  bool
}

// SetPixel XORs the pixel at (x, y) and reports whether it was lit before.
// Coordinates past an edge wrap around to the other side.
func (s *Screen) SetPixel(x, y int) bool {
	x = wrap(x, VIDEO_WIDTH)
	y = wrap(y, VIDEO_HEIGHT)

	was := s.Window[y][x] == PIXEL_ON
	s.Window[y][x] ^= PIXEL_ON
	s.dirty = true
	return was
}

func (s *Screen) Clear() {
	for k := range s.Window {
		for i := range s.Window[k] {
			s.Window[k][i] = PIXEL_OFF
		}
	}
	s.dirty = true
}

func (s *Screen) Lit(x, y int) bool {
	return s.Window[wrap(y, VIDEO_HEIGHT)][wrap(x, VIDEO_WIDTH)] == PIXEL_ON
}

// Dirty reports whether pixels changed since the last call, and resets the mark.
func (s *Screen) Dirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// String renders the screen as text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(VIDEO_HEIGHT * (VIDEO_WIDTH*3 + 1))

	for k := range s.Window {
		for i := range s.Window[k] {
			if s.Window[k][i] == PIXEL_ON {
				sb.WriteString("█")
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
