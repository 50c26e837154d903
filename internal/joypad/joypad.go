// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/lineboy/internal/interrupts"
	"github.com/thelolagemann/lineboy/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
//
// The upper nibble always reads as 1s.
type State struct {
	// Pressed holds the pressed buttons, the lower 4 bits
	// are used for the action buttons, and the upper 4 bits
	// for the direction buttons. A 1 indicates that the
	// button is pressed.
	Pressed uint8
	// Select holds bits 4-5 as last written to types.P1.
	Select uint8

	b interrupts.Bus
}

// New returns a new joypad state, that requests the joypad
// interrupt through b.
func New(b interrupts.Bus) *State {
	return &State{b: b}
}

// Read returns the composed value of types.P1.
func (s *State) Read(address uint16) uint8 {
	d := uint8(0x0F)
	if s.Select&types.Bit4 == 0 {
		d &^= s.Pressed >> 4
	}
	if s.Select&types.Bit5 == 0 {
		d &^= s.Pressed & 0x0F
	}

	return 0xF0 | d
}

// Write selects the button group to be read.
func (s *State) Write(address uint16, value uint8) {
	s.Select = value & (types.Bit4 | types.Bit5)
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.Set(s.Pressed | 1<<button)
}


// Set replaces the pressed buttons, requesting the joypad
// interrupt if a button was newly pressed in a selected group.
func (s *State) Set(pressed uint8) {
	newly := pressed &^ s.Pressed
	s.Pressed = pressed

	request := false
	if s.Select&types.Bit4 == 0 && newly>>4 != 0 {
		request = true
	}
	if s.Select&types.Bit5 == 0 && newly&0x0F != 0 {
		request = true
	}
	if request && s.b != nil {
		interrupts.Request(s.b, interrupts.JoypadFlag)
	}
}

// Mask returns the pressed button mask for the given buttons.
func Mask(up, right, down, left, a, b, sel, start bool) uint8 {
	var m uint8
	buttons := [8]bool{a, b, sel, start, right, left, up, down}
	for i, pressed := range buttons {
		if pressed {
			m |= 1 << i
		}
	}
	return m
}
