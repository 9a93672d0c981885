package emulator

import (
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/log"
)

const testWidth = 64
const testHeight = 32

type mockDisplay struct {
	pixels   [testHeight][testWidth]bool
	clears   int
	presents int
}

func (d *mockDisplay) SetPixel(x, y int) bool {
	x %= testWidth
	y %= testHeight
	was := d.pixels[y][x]
	d.pixels[y][x] = !was
	return was
}

func (d *mockDisplay) Clear() {
	d.pixels = [testHeight][testWidth]bool{}
	d.clears++
}

func (d *mockDisplay) Present() {
	d.presents++
}

func (d *mockDisplay) litCount() int {
	n := 0
	for y := range d.pixels {
		for x := range d.pixels[y] {
			if d.pixels[y][x] {
				n++
			}
		}
	}
	return n
}

type mockKeyboard struct {
	pressed [16]bool
}

func (k *mockKeyboard) IsKeyPressed(key byte) bool {
	return int(key) < len(k.pressed) && k.pressed[key]
}

type mockTone struct {
	playing   bool
	frequency int
	plays     int
	stops     int
}

func (t *mockTone) Play(frequency int) {
	t.playing = true
	t.frequency = frequency
	t.plays++
}

func (t *mockTone) Stop() {
	t.playing = false
	t.stops++
}

type testMachine struct {
	*Chip8
	display  *mockDisplay
	keyboard *mockKeyboard
	tone     *mockTone
}

func newTestMachine(t *testing.T, opts ...Option) *testMachine {
	t.Helper()

	m := &testMachine{
		display:  &mockDisplay{},
		keyboard: &mockKeyboard{},
		tone:     &mockTone{},
	}

	opts = append([]Option{
		WithLogger(log.NewTestLogger(t)),
		WithRandom(rand.New(rand.NewPCG(1, 2))),
	}, opts...)

	m.Chip8 = New(m.display, m.keyboard, m.tone, opts...)
	return m
}

// program encodes opcodes as a big-endian cartridge image.
func program(opcodes ...uint16) []byte {
	data := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}
