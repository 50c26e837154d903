package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event due up to the new cycle is executed and removed from the list.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

// NewScheduler returns a new Scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// initialize the events with the number of event types
	// to avoid the cost of allocating a new event for each
	// scheduled event
	for i := EventType(0); i < eventTypes; i++ {
		s.events[i] = &Event{eventType: i}
	}

	return s
}

// Cycle returns the current cycle. While an event handler runs, it
// returns the cycle the event was due at.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of cycles, executing
// every event due up to the new cycle in order. While a handler runs,
// the current cycle is that of the event, so an event rescheduling
// itself does not drift by however many cycles the tick overshot.
func (s *Scheduler) Tick(c uint64) {
	target := s.cycles + c

	for s.root != nil && s.root.cycle <= target {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		s.cycles = event.cycle
		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}

	s.cycles = target
}

// ScheduleEvent schedules an event to be executed the given number of
// cycles from now. If the event is already scheduled it is moved.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	if s.events[eventType].scheduled {
		s.DescheduleEvent(eventType)
	}

	this := s.events[eventType]
	this.cycle = s.cycles + cycle
	this.scheduled = true
	this.next = nil

	// events due at the same cycle run in the order they were scheduled
	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}

	prev := s.root
	for prev.next != nil && prev.next.cycle <= this.cycle {
		prev = prev.next
	}
	this.next = prev.next
	prev.next = this
}

// DescheduleEvent removes the event from the schedule, if scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.Reset()
			return
		}
		prev = event
	}
}

// Until returns the number of cycles until the event is due, and
// false if it is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	e := s.events[eventType]
	if !e.scheduled {
		return 0, false
	}
	return e.cycle - s.cycles, true
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
