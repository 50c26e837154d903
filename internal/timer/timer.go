// Package timer provides an implementation of the Game Boy
// timer. DIV is a free running divider, and TIMA counts at a
// rate selected by TAC, requesting an interrupt on overflow.
package timer

import (
	"github.com/thelolagemann/lineboy/internal/interrupts"
	"github.com/thelolagemann/lineboy/internal/types"
)

// DivPeriod is the number of machine cycles between increments
// of DIV.
const DivPeriod = 64

// periods holds the number of T-cycles between increments of
// TIMA, indexed by TAC bits 0-1.
var periods = [4]uint32{1024, 16, 64, 256}

// Controller is a timer controller. The timer registers live in
// memory, and are read and written through the bus on every tick,
// so that writes by the CPU are observed immediately.
type Controller struct {
	divCounter  uint32 // machine cycles since DIV last incremented
	timaCounter uint32 // T-cycles since TIMA last incremented

	b interrupts.Bus
}

// NewController returns a new timer controller.
func NewController(b interrupts.Bus) *Controller {
	return &Controller{b: b}
}

// Tick advances the timer by the given number of machine cycles.
func (c *Controller) Tick(mCycles uint8) {
	c.divCounter += uint32(mCycles)
	for c.divCounter >= DivPeriod {
		c.divCounter -= DivPeriod
		c.b.Write(types.DIV, c.b.Read(types.DIV)+1)
	}

	tac := c.b.Read(types.TAC)
	if tac&types.Bit2 == 0 {
		return
	}

	period := periods[tac&0x03]
	c.timaCounter += uint32(mCycles) * 4
	for c.timaCounter >= period {
		c.timaCounter -= period
		c.incrementTIMA()
	}
}

// incrementTIMA increments TIMA, reloading it from TMA and
// requesting the timer interrupt when it overflows.
func (c *Controller) incrementTIMA() {
	tima := c.b.Read(types.TIMA)
	if tima == 0xFF {
		c.b.Write(types.TIMA, c.b.Read(types.TMA))
		interrupts.Request(c.b, interrupts.TimerFlag)
		return
	}
	c.b.Write(types.TIMA, tima+1)
}

// Enabled returns true if TIMA is counting.
func (c *Controller) Enabled() bool {
	return c.b.Read(types.TAC)&types.Bit2 != 0
}
