package gameboy

import (
	"github.com/thelolagemann/lineboy/internal/ppu/palette"
	"github.com/thelolagemann/lineboy/pkg/display"
	"github.com/thelolagemann/lineboy/pkg/log"
	"github.com/thelolagemann/lineboy/pkg/storage"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the emulator and its
// components. By default nothing is logged.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithFrameSink sets the sink that receives every frame.
func WithFrameSink(sink display.FrameSink) Opt {
	return func(gb *GameBoy) {
		gb.sink = sink
	}
}

// WithStore sets the store battery backed RAM is loaded from
// and persisted to.
func WithStore(store storage.KeyValueStore) Opt {
	return func(gb *GameBoy) {
		gb.store = store
	}
}

// WithImmediateEI makes EI enable interrupts straight away,
// instead of after the following instruction.
func WithImmediateEI() Opt {
	return func(gb *GameBoy) {
		gb.immediateEI = true
	}
}

// WithPalette sets the colours the four shades are drawn with.
func WithPalette(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.palette = p
	}
}
