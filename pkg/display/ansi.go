package display

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/lineboy/internal/ppu"
	"golang.org/x/term"
)

// ANSI is a FrameSink that previews frames in a terminal, using
// 24-bit colour escape codes and half block characters so that each
// character cell covers two rows of pixels.
type ANSI struct {
	w     io.Writer
	every int
	scale int

	frames int
	buf    bytes.Buffer
}

// NewANSI returns a sink drawing every nth frame to w. When w is a
// terminal the preview is shrunk to fit it.
func NewANSI(w io.Writer, every int) *ANSI {
	if every < 1 {
		every = 1
	}
	a := &ANSI{w: w, every: every, scale: 1}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			a.scale = fitScale(width, height)
		}
	}
	return a
}

// fitScale returns the smallest downscale that fits the screen into a
// terminal of the given size.
func fitScale(width, height int) int {
	scale := 1
	for scale < 8 && (ppu.ScreenWidth/scale > width || ppu.ScreenHeight/scale/2 > height-1) {
		scale++
	}
	return scale
}

// Frame draws frame, if it's one of the frames to be drawn.
func (a *ANSI) Frame(frame []byte) error {
	a.frames++
	if (a.frames-1)%a.every != 0 {
		return nil
	}

	a.buf.Reset()
	a.buf.WriteString("\x1b[H")
	for y := 0; y < ppu.ScreenHeight; y += 2 * a.scale {
		for x := 0; x < ppu.ScreenWidth; x += a.scale {
			top := pixel(frame, x, y)
			bottom := top
			if y+a.scale < ppu.ScreenHeight {
				bottom = pixel(frame, x, y+a.scale)
			}
			fmt.Fprintf(&a.buf, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top[0], top[1], top[2], bottom[0], bottom[1], bottom[2])
		}
		a.buf.WriteString("\x1b[0m\n")
	}

	_, err := a.w.Write(a.buf.Bytes())
	return err
}

func pixel(frame []byte, x, y int) []byte {
	i := (y*ppu.ScreenWidth + x) * 4
	return frame[i : i+3]
}
