//go:build !dialog

package utils

import "errors"

// ErrNoDialog is returned by AskForFile when built without file
// dialog support.
var ErrNoDialog = errors.New("built without file dialog support, rebuild with -tags dialog")

// AskForFile always fails without file dialog support.
func AskForFile(title, startingDir string) (string, error) {
	return "", ErrNoDialog
}
