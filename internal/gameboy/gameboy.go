// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// The GameBoy ties the CPU, memory, cartridge, PPU and timer
// together. Time is driven by the CPU: every step the cycles it
// consumed are fed to the timer and the scheduler, which in turn
// runs the PPU's mode state machine.
package gameboy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/lineboy/internal/cartridge"
	"github.com/thelolagemann/lineboy/internal/cpu"
	"github.com/thelolagemann/lineboy/internal/interrupts"
	"github.com/thelolagemann/lineboy/internal/joypad"
	"github.com/thelolagemann/lineboy/internal/mmu"
	"github.com/thelolagemann/lineboy/internal/ppu"
	"github.com/thelolagemann/lineboy/internal/ppu/lcd"
	"github.com/thelolagemann/lineboy/internal/ppu/palette"
	"github.com/thelolagemann/lineboy/internal/scheduler"
	"github.com/thelolagemann/lineboy/internal/timer"
	"github.com/thelolagemann/lineboy/internal/types"
	"github.com/thelolagemann/lineboy/pkg/display"
	"github.com/thelolagemann/lineboy/pkg/log"
	"github.com/thelolagemann/lineboy/pkg/storage"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of T-cycles per frame.
	CyclesPerFrame = lcd.FrameCycles
	// FrameTime is the duration of a frame on real hardware (~59.7 FPS).
	FrameTime = time.Second * CyclesPerFrame / ClockSpeed
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	PPU       *ppu.PPU
	Joypad    *joypad.State
	Timer     *timer.Controller
	Cartridge cartridge.Cartridge

	log.Logger

	s       *scheduler.Scheduler
	sink    display.FrameSink
	store   storage.KeyValueStore
	saveKey string

	immediateEI bool
	palette     palette.Palette

	frameDone   bool
	lcdOffLines uint8
	frames      uint64
	err         error
}

// New returns a new GameBoy running rom. Battery backed RAM is loaded
// from, and persisted to, the store configured with WithStore under
// saveKey. When saveKey is empty, SaveKey(rom) is used.
//
// The machine is not initialised until Start is called.
func New(rom []byte, saveKey string, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:  log.NewNullLogger(),
		s:       scheduler.NewScheduler(),
		palette: palette.Get(palette.Classic),
	}
	for _, opt := range opts {
		opt(g)
	}

	if saveKey == "" {
		saveKey = SaveKey(rom)
	}
	g.saveKey = saveKey

	cartOpts := []cartridge.Opt{cartridge.WithLogger(log.WithComponent(g.Logger, "cartridge"))}
	if g.store != nil {
		save, err := g.store.Get(saveKey)
		switch {
		case err == nil:
			cartOpts = append(cartOpts, cartridge.WithSave(save))
			g.Infof("loaded save %s (%d bytes)", saveKey, len(save))
		case !errors.Is(err, storage.ErrNotFound):
			g.Warnf("failed to load save %s: %v", saveKey, err)
		}
		cartOpts = append(cartOpts, cartridge.WithPersist(g.persist))
	}

	cart, err := cartridge.NewCartridge(rom, cartOpts...)
	if err != nil {
		return nil, err
	}

	g.Cartridge = cart
	g.MMU = mmu.NewMMU(cart, log.WithComponent(g.Logger, "mmu"))
	g.PPU = ppu.New()
	g.PPU.Palette = g.palette
	g.MMU.AttachVideo(g.PPU)
	g.Joypad = joypad.New(g.MMU)
	g.MMU.AttachJoypad(g.Joypad)
	g.Timer = timer.NewController(g.MMU)
	g.CPU = cpu.NewCPU(g.MMU)
	g.CPU.ImmediateEI = g.immediateEI

	g.registerVideoEvents()
	g.startVideo()

	return g, nil
}

// SaveKey returns the default save key for rom, made from the
// cartridge title and a hash of its contents.
func SaveKey(rom []byte) string {
	title := "UNKNOWN"
	if len(rom) >= 0x144 {
		if t := strings.TrimRight(string(rom[0x134:0x144]), "\x00 "); t != "" {
			title = t
		}
	}
	return fmt.Sprintf("%s-%016x", title, xxhash.Sum64(rom))
}

// ioDefaults holds the hardware registers as left by the DMG boot ROM.
var ioDefaults = []struct {
	address types.HardwareAddress
	value   uint8
}{
	{0xFF05, 0x00}, {0xFF06, 0x00}, {0xFF07, 0x00},
	{0xFF10, 0x80}, {0xFF11, 0x80}, {0xFF12, 0xF3}, {0xFF13, 0xC1}, {0xFF14, 0x87},
	{0xFF16, 0x3F}, {0xFF17, 0x00}, {0xFF19, 0xBF},
	{0xFF1A, 0x7F}, {0xFF1B, 0xFF}, {0xFF1C, 0x9F}, {0xFF1E, 0xBF},
	{0xFF20, 0xFF}, {0xFF21, 0x00}, {0xFF22, 0x00}, {0xFF23, 0xBF},
	{0xFF24, 0x77}, {0xFF25, 0xF3}, {0xFF26, 0x80},
	{0xFF40, 0x91}, {0xFF42, 0x00}, {0xFF43, 0x00}, {0xFF44, 0x8F}, {0xFF45, 0x00},
	{0xFF47, 0xFC}, {0xFF48, 0xFF}, {0xFF49, 0xFF}, {0xFF4A, 0x00}, {0xFF4B, 0x00},
	{0xFF50, 0x01},
	{0xFFFB, 0x01}, {0xFFFC, 0x2E}, {0xFFFD, 0x00}, {0xFFFF, 0x00},
}

// Start resets the machine to the state the boot ROM leaves it in.
func (g *GameBoy) Start() {
	g.CPU.Boot()
	for _, r := range ioDefaults {
		g.MMU.Write(r.address, r.value)
	}
	g.err = nil
	g.frameDone = false

	// the first frame starts part way down the screen
	g.PPU.Blank()
	g.startVideo()
	g.Debugf("started %s", g.Cartridge.Title())
}

// Step executes a single CPU step, advancing the timer and the PPU by
// the cycles it took. It returns the number of M-cycles consumed.
//
// Once the CPU faults, every call returns the same error.
func (g *GameBoy) Step() (uint8, error) {
	if g.err != nil {
		return 0, g.err
	}

	cycles, err := g.CPU.Step()
	if err != nil {
		g.err = err
		g.Errorf("cpu fault: %v", err)
		return cycles, err
	}

	g.Timer.Tick(cycles)
	g.s.Tick(uint64(cycles) * 4)
	return cycles, nil
}

// Frame steps the emulation until a full frame, including VBlank, has
// been emulated. The frame sink receives the frame as VBlank starts.
func (g *GameBoy) Frame() error {
	g.frameDone = false
	for !g.frameDone {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// FrameHook is called by Run after every frame with the time the
// frame took to emulate. Returning false stops Run.
type FrameHook func(took time.Duration) bool

// Run emulates frames until ctx is done, the CPU faults or hook
// returns false. When paced, frames run no faster than the real
// hardware.
func (g *GameBoy) Run(ctx context.Context, paced bool, hook FrameHook) error {
	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	for {
		start := time.Now()
		if err := g.Frame(); err != nil {
			return err
		}
		if hook != nil && !hook(time.Since(start)) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !paced {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Frames returns the number of frames completed.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// Framebuffer returns the RGBA framebuffer. It is overwritten as the
// emulation runs.
func (g *GameBoy) Framebuffer() []byte {
	return g.PPU.Frame[:]
}

// SetJoypadState sets the state of every button, requesting the joypad
// interrupt for any newly pressed button that is being polled.
func (g *GameBoy) SetJoypadState(up, right, down, left, a, b, sel, start bool) {
	g.Joypad.Set(joypad.Mask(up, right, down, left, a, b, sel, start))
}

// SetJoypadMask sets the pressed buttons from a mask, one bit per
// joypad.Button.
func (g *GameBoy) SetJoypadMask(pressed uint8) {
	g.Joypad.Set(pressed)
}

// SaveKey returns the key battery backed RAM is persisted under.
func (g *GameBoy) SaveKey() string {
	return g.saveKey
}

// Close persists any battery backed RAM.
func (g *GameBoy) Close() {
	g.Cartridge.Flush()
}

// persist stores the cartridge RAM. Failures are logged and otherwise
// ignored.
func (g *GameBoy) persist(ram []byte) {
	if err := g.store.Set(g.saveKey, ram); err != nil {
		g.Errorf("failed to persist %s: %v", g.saveKey, err)
		return
	}
	g.Debugf("persisted %d bytes to %s", len(ram), g.saveKey)
}

// Print writes a diagnostic dump of the machine to w.
func (g *GameBoy) Print(w io.Writer) {
	pc := g.CPU.PC
	instr, _ := cpu.Disassemble(g.MMU, pc)

	fmt.Fprintf(w, "CPU   %s\n", g.CPU)
	fmt.Fprintf(w, "      %04X: %s\n", pc, instr)
	if err := g.CPU.Err(); err != nil {
		fmt.Fprintf(w, "FAULT %v\n", err)
	}

	ie, iflag := g.MMU.Read(types.IE), g.MMU.Read(types.IF)
	var pending []string
	for i := uint8(0); i < 5; i++ {
		if flag := uint8(1) << i; ie&iflag&flag != 0 {
			pending = append(pending, interrupts.Name(flag))
		}
	}
	fmt.Fprintf(w, "INT   IME:%t IE:%02X IF:%02X pending:[%s]\n", g.CPU.IME, ie, iflag, strings.Join(pending, " "))

	stat := g.MMU.Read(types.STAT)
	fmt.Fprintf(w, "LCD   LCDC:%02X STAT:%02X(%s) LY:%02X LYC:%02X SCY:%02X SCX:%02X WY:%02X WX:%02X\n",
		g.MMU.Read(types.LCDC), stat, lcd.ModeName(stat&3), g.MMU.Read(types.LY), g.MMU.Read(types.LYC),
		g.MMU.Read(types.SCY), g.MMU.Read(types.SCX), g.MMU.Read(types.WY), g.MMU.Read(types.WX))
	fmt.Fprintf(w, "TIMER DIV:%02X TIMA:%02X TMA:%02X TAC:%02X\n",
		g.MMU.Read(types.DIV), g.MMU.Read(types.TIMA), g.MMU.Read(types.TMA), g.MMU.Read(types.TAC))
	fmt.Fprintf(w, "SCHED %s\n", g.s)

	romBanks, ramBanks := g.Cartridge.Banks()
	fmt.Fprintf(w, "CART  %s (%d ROM banks, %d RAM banks)\n", g.Cartridge.Header(), romBanks, ramBanks)

	start := pc &^ 0xF
	if start >= 0x10 {
		start -= 0x10
	}
	end := start + 0x30
	if end < start {
		end = 0xFFFF
	}
	g.MMU.Dump(w, start, end)

	g.PPU.PrintTiles(w, g.MMU)
}
