package gameboy

import (
	"github.com/thelolagemann/lineboy/internal/interrupts"
	"github.com/thelolagemann/lineboy/internal/ppu/lcd"
	"github.com/thelolagemann/lineboy/internal/scheduler"
	"github.com/thelolagemann/lineboy/internal/types"
)

// The PPU runs through a fixed sequence of modes on every visible
// line, each lasting a fixed number of T-cycles:
//
//	OAM (80) -> VRAM (172) -> HBlank (204)
//
// followed by 10 lines of VBlank (456 each). Every mode change is an
// event on the scheduler, which schedules the next one.
func (g *GameBoy) registerVideoEvents() {
	g.s.RegisterEvent(scheduler.PPUEndOAM, g.endOAM)
	g.s.RegisterEvent(scheduler.PPUEndVRAM, g.endVRAM)
	g.s.RegisterEvent(scheduler.PPUEndHBlank, g.endHBlank)
	g.s.RegisterEvent(scheduler.PPUEndVBlankLine, g.endVBlankLine)
	g.s.RegisterEvent(scheduler.PPULCDOff, g.lcdOffLine)
}

// startVideo discards any pending PPU events and restarts the mode
// state machine from the current line.
func (g *GameBoy) startVideo() {
	for _, e := range []scheduler.EventType{
		scheduler.PPUEndOAM, scheduler.PPUEndVRAM, scheduler.PPUEndHBlank,
		scheduler.PPUEndVBlankLine, scheduler.PPULCDOff,
	} {
		g.s.DescheduleEvent(e)
	}

	if !g.lcdEnabled() {
		g.turnLCDOff()
		return
	}
	if g.MMU.Read(types.LY) >= lcd.VisibleLines {
		g.setMode(lcd.VBlank)
		g.s.ScheduleEvent(scheduler.PPUEndVBlankLine, lcd.LineCycles)
		return
	}
	g.setMode(lcd.OAM)
	g.s.ScheduleEvent(scheduler.PPUEndOAM, lcd.OAMCycles)
}

func (g *GameBoy) lcdEnabled() bool {
	return g.MMU.Read(types.LCDC)&types.Bit7 != 0
}

// setMode sets the mode held in STAT, requesting the STAT interrupt
// if it is enabled for the new mode.
func (g *GameBoy) setMode(mode lcd.Mode) {
	stat := g.MMU.Read(types.STAT)
	g.MMU.Write(types.STAT, lcd.SetMode(stat, mode))

	if lcd.NewStatus(stat).InterruptEnabled(mode) {
		interrupts.Request(g.MMU, interrupts.LCDFlag)
	}
}

func (g *GameBoy) endOAM() {
	if !g.lcdEnabled() {
		g.turnLCDOff()
		return
	}
	g.setMode(lcd.VRAM)
	g.s.ScheduleEvent(scheduler.PPUEndVRAM, lcd.VRAMCycles)
}

func (g *GameBoy) endVRAM() {
	if !g.lcdEnabled() {
		g.turnLCDOff()
		return
	}
	g.setMode(lcd.HBlank)
	g.s.ScheduleEvent(scheduler.PPUEndHBlank, lcd.HBlankCycles)
}

func (g *GameBoy) endHBlank() {
	if !g.lcdEnabled() {
		g.turnLCDOff()
		return
	}
	g.PPU.AdvanceLine(g.MMU)

	if g.MMU.Read(types.LY) == lcd.VisibleLines {
		g.setMode(lcd.VBlank)
		interrupts.Request(g.MMU, interrupts.VBlankFlag)
		g.presentFrame()
		g.s.ScheduleEvent(scheduler.PPUEndVBlankLine, lcd.LineCycles)
		return
	}

	g.setMode(lcd.OAM)
	g.s.ScheduleEvent(scheduler.PPUEndOAM, lcd.OAMCycles)
}

func (g *GameBoy) endVBlankLine() {
	if !g.lcdEnabled() {
		g.turnLCDOff()
		return
	}
	g.PPU.AdvanceLine(g.MMU)

	if g.MMU.Read(types.LY) == 0 {
		g.frameDone = true
		g.setMode(lcd.OAM)
		g.s.ScheduleEvent(scheduler.PPUEndOAM, lcd.OAMCycles)
		return
	}

	g.s.ScheduleEvent(scheduler.PPUEndVBlankLine, lcd.LineCycles)
}

// turnLCDOff holds LY at 0 in HBlank and blanks the screen. Frames
// still complete every CyclesPerFrame, so that Frame returns while
// the LCD is off.
func (g *GameBoy) turnLCDOff() {
	g.MMU.Write(types.LY, 0)
	g.MMU.Write(types.STAT, lcd.SetMode(g.MMU.Read(types.STAT), lcd.HBlank))
	g.PPU.Blank()

	g.lcdOffLines = 0
	g.s.ScheduleEvent(scheduler.PPULCDOff, lcd.LineCycles)
}

func (g *GameBoy) lcdOffLine() {
	if g.lcdEnabled() {
		g.setMode(lcd.OAM)
		g.s.ScheduleEvent(scheduler.PPUEndOAM, lcd.OAMCycles)
		return
	}

	g.lcdOffLines++
	if g.lcdOffLines == lcd.TotalLines {
		g.lcdOffLines = 0
		g.presentFrame()
		g.frameDone = true
	}
	g.s.ScheduleEvent(scheduler.PPULCDOff, lcd.LineCycles)
}

// presentFrame hands the framebuffer to the frame sink.
func (g *GameBoy) presentFrame() {
	g.frames++
	if g.sink == nil {
		return
	}
	if err := g.sink.Frame(g.PPU.Frame[:]); err != nil {
		g.Errorf("failed to present frame %d: %v", g.frames, err)
	}
}
