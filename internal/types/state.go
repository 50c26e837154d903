package types

import "fmt"

// State is a snapshot of the observable machine state, in the
// format used by the single step conformance vectors. Every
// value is held as an int so that the JSON vectors can be
// decoded without a custom unmarshaler.
type State struct {
	PC  int     `json:"pc"`
	SP  int     `json:"sp"`
	A   int     `json:"a"`
	B   int     `json:"b"`
	C   int     `json:"c"`
	D   int     `json:"d"`
	E   int     `json:"e"`
	F   int     `json:"f"`
	H   int     `json:"h"`
	L   int     `json:"l"`
	IME int     `json:"ime"`
	IE  int     `json:"ie"`
	EI  *int    `json:"ei,omitempty"`
	RAM [][]int `json:"ram"`
}

// MismatchError is returned when a compared state differs from
// the expected one. Field names the register, or the address
// formatted as $XXXX.
type MismatchError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: expected 0x%02X, got 0x%02X", e.Field, e.Expected, e.Actual)
}

// Compare returns a *MismatchError when expected != actual.
func Compare(field string, expected, actual int) error {
	if expected != actual {
		return &MismatchError{Field: field, Expected: expected, Actual: actual}
	}
	return nil
}
