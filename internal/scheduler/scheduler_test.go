package scheduler

import (
	"testing"
)

func TestScheduler_Order(t *testing.T) {
	s := NewScheduler()
	var order []EventType
	for i := EventType(0); i < eventTypes; i++ {
		e := i
		s.RegisterEvent(e, func() { order = append(order, e) })
	}

	s.ScheduleEvent(PPUEndHBlank, 30)
	s.ScheduleEvent(PPUEndOAM, 10)
	s.ScheduleEvent(PPUEndVRAM, 20)

	s.Tick(15)
	if len(order) != 1 || order[0] != PPUEndOAM {
		t.Fatalf("expected only PPUEndOAM, got %v", order)
	}

	s.Tick(100)
	if len(order) != 3 || order[1] != PPUEndVRAM || order[2] != PPUEndHBlank {
		t.Errorf("expected PPUEndVRAM then PPUEndHBlank, got %v", order)
	}
	if s.Cycle() != 115 {
		t.Errorf("expected cycle 115, got %d", s.Cycle())
	}
}

func TestScheduler_Reschedule(t *testing.T) {
	s := NewScheduler()
	var fired []uint64
	s.RegisterEvent(PPUEndHBlank, func() {
		fired = append(fired, s.Cycle())
		s.ScheduleEvent(PPUEndHBlank, 456)
	})
	s.ScheduleEvent(PPUEndHBlank, 456)

	// overshooting a deadline does not shift the next one
	s.Tick(460)
	s.Tick(460)
	if len(fired) != 2 || fired[0] != 456 || fired[1] != 912 {
		t.Errorf("expected events at 456 and 912, got %v", fired)
	}

	// a single large tick runs the event repeatedly
	s.Tick(456 * 3)
	if len(fired) != 5 {
		t.Errorf("expected 5 events, got %d", len(fired))
	}
}

func TestScheduler_Deschedule(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.RegisterEvent(PPULCDOff, func() { fired = true })
	s.ScheduleEvent(PPULCDOff, 10)
	s.ScheduleEvent(PPUEndOAM, 5)

	if until, ok := s.Until(PPULCDOff); !ok || until != 10 {
		t.Errorf("expected event in 10 cycles, got %d %v", until, ok)
	}

	s.DescheduleEvent(PPULCDOff)
	s.Tick(20)
	if fired {
		t.Errorf("expected descheduled event not to fire")
	}
	if _, ok := s.Until(PPULCDOff); ok {
		t.Errorf("expected event to be unscheduled")
	}
}

func TestScheduler_Move(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.RegisterEvent(PPUEndOAM, func() { count++ })
	s.ScheduleEvent(PPUEndOAM, 10)
	s.ScheduleEvent(PPUEndOAM, 50)

	s.Tick(20)
	if count != 0 {
		t.Errorf("expected moved event not to fire at its old cycle")
	}
	s.Tick(30)
	if count != 1 {
		t.Errorf("expected event to fire once, fired %d", count)
	}
	if s.String() != "" {
		t.Errorf("expected empty schedule, got %s", s.String())
	}
}
