package scheduler

// EventType identifies a kind of event. Only one event of each
// type can be scheduled at a time.
type EventType int

const (
	// PPUEndOAM ends the OAM scan of a visible line (mode 2 -> 3).
	PPUEndOAM EventType = iota
	// PPUEndVRAM ends the pixel transfer of a visible line (mode 3 -> 0).
	PPUEndVRAM
	// PPUEndHBlank ends a visible line, advancing LY.
	PPUEndHBlank
	// PPUEndVBlankLine ends one of the 10 VBlank lines, advancing LY.
	PPUEndVBlankLine
	// PPULCDOff marks the end of a frame while the LCD is disabled.
	PPULCDOff

	eventTypes
)

var eventNames = [eventTypes]string{
	"PPUEndOAM",
	"PPUEndVRAM",
	"PPUEndHBlank",
	"PPUEndVBlankLine",
	"PPULCDOff",
}

func (e EventType) String() string {
	if e >= 0 && e < eventTypes {
		return eventNames[e]
	}
	return "Unknown"
}

// Event is a scheduled event.
type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

// Reset clears the event.
func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
