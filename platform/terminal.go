package platform

import (
	"bufio"
	"io"
	"unicode"
)

// Terminals only report key presses, so a key counts as held for this many
// frames after its last press and is then released.
const DEFAULT_HOLD_FRAMES = 6

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03
	keyPause  = ' '
)

// Terminal is the text frontend. It reads keys from in and redraws the
// screen on out using ANSI escapes.
type Terminal struct {
	Screen
	Keypad

	in         io.Reader
	out        *bufio.Writer
	buf        []byte
	held       [16]int
	holdFrames int
	onPause    func()
}

func NewTerminal(in io.Reader, out io.Writer, holdFrames int) *Terminal {
	if holdFrames < 1 {
		holdFrames = DEFAULT_HOLD_FRAMES
	}

	return &Terminal{
		in:         in,
		out:        bufio.NewWriter(out),
		buf:        make([]byte, 64),
		holdFrames: holdFrames,
	}
}

// OnPause registers the handler for the pause key.
func (t *Terminal) OnPause(f func()) {
	t.onPause = f
}

// ProcessInput releases keys whose hold ran out, then handles whatever input
// is waiting. It reports whether to quit.
func (t *Terminal) ProcessInput() bool {
	for key := range t.held {
		if t.held[key] == 0 {
			continue
		}
		t.held[key]--
		if t.held[key] == 0 {
			t.Keypad.Release(byte(key))
		}
	}

	n, err := t.in.Read(t.buf)
	if err != nil && err != io.EOF {
		return true
	}

	for _, b := range t.buf[:n] {
		switch b {
		case keyEscape, keyCtrlC:
			return true
		case keyPause:
			if t.onPause != nil {
				t.onPause()
			}
		default:
			key, ok := RuneKeyMap[unicode.ToLower(rune(b))]
			if !ok {
				continue
			}
			t.Keypad.Press(key)
			t.held[key] = t.holdFrames
		}
	}

	return false
}

// Present redraws the screen in place when anything changed.
func (t *Terminal) Present() {
	if !t.Screen.Dirty() {
		return
	}

	_, _ = t.out.WriteString("\x1b[H")
	_, _ = t.out.WriteString(t.Screen.String())
	_ = t.out.Flush()
}

// Open clears the terminal and hides the cursor.
func (t *Terminal) Open() {
	_, _ = t.out.WriteString("\x1b[2J\x1b[?25l")
	_ = t.out.Flush()
}

// Close shows the cursor again.
func (t *Terminal) Close() {
	_, _ = t.out.WriteString("\x1b[?25h\n")
	_ = t.out.Flush()
}
