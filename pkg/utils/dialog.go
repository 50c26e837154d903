//go:build dialog

package utils

import "github.com/sqweek/dialog"

// AskForFile opens a native file dialog starting in startingDir,
// returning the path of the chosen ROM.
func AskForFile(title, startingDir string) (string, error) {
	return dialog.File().
		SetStartDir(startingDir).
		Title(title).
		Filter("Game Boy ROMs", "gb", "gbc", "zip", "gz", "7z").
		Load()
}
