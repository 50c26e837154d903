//go:build !sdl

package main

import "errors"

func openWindow(title string, scale int) (screen, error) {
	return nil, errors.New("built without SDL support, rebuild with -tags sdl")
}
