package main

import (
	"errors"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/thelolagemann/lineboy/internal/gameboy"
)

// plotFrameTimes draws the time taken by each frame, against the
// frame time of the hardware, as a PNG to path.
func plotFrameTimes(path string, frameTimes []time.Duration) error {
	if len(frameTimes) == 0 {
		return errors.New("no frames were emulated")
	}

	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "ms"

	xys := make(plotter.XYs, len(frameTimes))
	for i, frameTime := range frameTimes {
		xys[i].X = float64(i)
		xys[i].Y = float64(frameTime) / float64(time.Millisecond)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}

	target := plotter.NewFunction(func(float64) float64 {
		return float64(gameboy.FrameTime) / float64(time.Millisecond)
	})
	target.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(line, target)
	p.Legend.Add("emulated", line)
	p.Legend.Add("hardware", target)

	c := vgimg.New(8*vg.Inch, 4*vg.Inch)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
