// Package platform holds the pieces a frontend is built from: the screen the
// interpreter draws to, the keypad it reads, and a text terminal frontend.
package platform

/*
Key Mappings:
Keypad       Keyboard
+-+-+-+-+    +-+-+-+-+
|1|2|3|C|    |1|2|3|4|
+-+-+-+-+    +-+-+-+-+
|4|5|6|D|    |Q|W|E|R|
+-+-+-+-+ => +-+-+-+-+
|7|8|9|E|    |A|S|D|F|
+-+-+-+-+    +-+-+-+-+
|A|0|B|F|    |Z|X|C|V|
+-+-+-+-+    +-+-+-+-+
*/
var RuneKeyMap = map[rune]byte{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// Keypad tracks which of the 16 hex keys are held down.
type Keypad struct {
	keys      [16]bool
	onRelease func(key byte)
}

// OnRelease registers the handler called when a held key goes up.
func (k *Keypad) OnRelease(f func(key byte)) {
	k.onRelease = f
}

func (k *Keypad) Press(key byte) {
	if int(key) < len(k.keys) {
		k.keys[key] = true
	}
}

// Release lifts a key. The handler only fires on a pressed to released transition.
func (k *Keypad) Release(key byte) {
	if int(key) >= len(k.keys) || !k.keys[key] {
		return
	}

	k.keys[key] = false
	if k.onRelease != nil {
		k.onRelease(key)
	}
}

func (k *Keypad) IsKeyPressed(key byte) bool {
	return int(key) < len(k.keys) && k.keys[key]
}

// Reset lifts every key without notifying anyone.
func (k *Keypad) Reset() {
	k.keys = [16]bool{}
}
