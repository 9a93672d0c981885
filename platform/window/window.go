// Package window is the SDL frontend.
package window

import (
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/adrichey/chip8/platform"
)

// KeyMap follows the same layout as platform.RuneKeyMap.
var KeyMap = map[sdl.Keycode]byte{
	sdl.K_x: 0x0,
	sdl.K_1: 0x1,
	sdl.K_2: 0x2,
	sdl.K_3: 0x3,
	sdl.K_q: 0x4,
	sdl.K_w: 0x5,
	sdl.K_e: 0x6,
	sdl.K_a: 0x7,
	sdl.K_s: 0x8,
	sdl.K_d: 0x9,
	sdl.K_z: 0xA,
	sdl.K_c: 0xB,
	sdl.K_4: 0xC,
	sdl.K_r: 0xD,
	sdl.K_f: 0xE,
	sdl.K_v: 0xF,
}

// Window is the SDL frontend. It owns the screen and keypad the
// interpreter draws to and reads from.
type Window struct {
	platform.Screen
	platform.Keypad

	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
	onPause  func()
}

// New opens a window scaled up from the 64x32 screen. SDL calls must stay on
// the thread that made them, so callers should lock the OS thread first.
func New(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "initializing SDL")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(platform.VIDEO_WIDTH*scale), int32(platform.VIDEO_HEIGHT*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "creating window")
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, errors.Wrap(err, "creating renderer")
	}

	p := &Window{
		window:   window,
		renderer: renderer,
		scale:    int32(scale),
	}
	p.Screen.Clear()
	return p, nil
}

// OnPause registers the handler for the pause key.
func (p *Window) OnPause(f func()) {
	p.onPause = f
}

// Present draws the screen to the window when anything changed.
func (p *Window) Present() {
	if !p.Screen.Dirty() {
		return
	}

	_ = p.renderer.SetDrawColor(0, 0, 0, 0xFF)
	_ = p.renderer.Clear()

	for k := range p.Screen.Window {
		for i, px := range p.Screen.Window[k] {
			if px == platform.PIXEL_OFF {
				continue
			}

			_ = p.renderer.SetDrawColor(uint8(px>>24), uint8(px>>16), uint8(px>>8), uint8(px))
			_ = p.renderer.FillRect(&sdl.Rect{
				X: int32(i) * p.scale,
				Y: int32(k) * p.scale,
				W: p.scale,
				H: p.scale,
			})
		}
	}

	p.renderer.Present()
}

// ProcessInput drains pending window events and reports whether to quit.
func (p *Window) ProcessInput() bool {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			down := t.Type == sdl.KEYDOWN

			switch t.Keysym.Sym {
			case sdl.K_ESCAPE:
				if down {
					quit = true
				}
			case sdl.K_p:
				if down && t.Repeat == 0 && p.onPause != nil {
					p.onPause()
				}
			default:
				key, ok := KeyMap[t.Keysym.Sym]
				if !ok {
					continue
				}
				if down {
					p.Keypad.Press(key)
				} else {
					p.Keypad.Release(key)
				}
			}
		}
	}

	return quit
}

func (p *Window) Close() {
	_ = p.renderer.Destroy()
	_ = p.window.Destroy()
	sdl.Quit()
}
