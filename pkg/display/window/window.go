//go:build sdl

// Package window provides an SDL2 window that displays frames and
// reads the joypad from the keyboard.
//
// SDL requires every call to be made from the main thread, so the
// window must be created, drawn to and polled from the goroutine
// running main.
package window

import (
	"fmt"
	"runtime"

	"github.com/thelolagemann/lineboy/internal/joypad"
	"github.com/thelolagemann/lineboy/internal/ppu"
	"github.com/thelolagemann/lineboy/pkg/display"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

// keys maps keyboard keys to joypad buttons.
var keys = map[sdl.Keycode]joypad.Button{
	sdl.K_UP:        joypad.ButtonUp,
	sdl.K_DOWN:      joypad.ButtonDown,
	sdl.K_LEFT:      joypad.ButtonLeft,
	sdl.K_RIGHT:     joypad.ButtonRight,
	sdl.K_z:         joypad.ButtonA,
	sdl.K_x:         joypad.ButtonB,
	sdl.K_BACKSPACE: joypad.ButtonSelect,
	sdl.K_RETURN:    joypad.ButtonStart,
}

// Window is a display.FrameSink drawing to an SDL window.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pressed uint8
	closed  bool
}

var _ display.FrameSink = (*Window)(nil)

// New opens a window titled title, scaling the screen by scale.
func New(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("window: failed to initialise SDL: %w", err)
	}

	w := &Window{}
	var err error
	w.window, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*scale), int32(ppu.ScreenHeight*scale), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("window: failed to create window: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("window: failed to create renderer: %w", err)
	}

	// nearest neighbour scaling
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	w.texture, err = w.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32), sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("window: failed to create texture: %w", err)
	}

	return w, nil
}

// Frame draws frame to the window.
func (w *Window) Frame(frame []byte) error {
	if w.closed {
		return nil
	}

	pixels, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return err
	}
	for y := 0; y < ppu.ScreenHeight; y++ {
		copy(pixels[y*pitch:], frame[y*ppu.ScreenWidth*4:(y+1)*ppu.ScreenWidth*4])
	}
	w.texture.Unlock()

	if err := w.renderer.Clear(); err != nil {
		return err
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return err
	}
	w.renderer.Present()

	return nil
}

// Poll handles pending window events. It returns the pressed buttons,
// one bit per joypad.Button, and false once the window has been closed.
func (w *Window) Poll() (uint8, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closed = true
		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE {
				w.closed = true
				continue
			}
			button, ok := keys[e.Keysym.Sym]
			if !ok {
				continue
			}
			if e.State == sdl.PRESSED {
				w.pressed |= 1 << button
			} else {
				w.pressed &^= 1 << button
			}
		}
	}

	return w.pressed, !w.closed
}

// Close destroys the window and shuts down SDL.
func (w *Window) Close() {
	if w.texture != nil {
		w.texture.Destroy()
	}
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}
	sdl.Quit()
	w.closed = true
}
