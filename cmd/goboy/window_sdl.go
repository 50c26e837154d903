//go:build sdl

package main

import "github.com/thelolagemann/lineboy/pkg/display/window"

func openWindow(title string, scale int) (screen, error) {
	w, err := window.New(title, scale)
	if err != nil {
		return nil, err
	}
	return w, nil
}
