// Command goboy runs a Game Boy ROM, presenting its frames in an SDL
// window, a terminal, or to websocket clients.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/thelolagemann/lineboy/internal/gameboy"
	"github.com/thelolagemann/lineboy/pkg/display"
	"github.com/thelolagemann/lineboy/pkg/display/web"
	"github.com/thelolagemann/lineboy/pkg/log"
	"github.com/thelolagemann/lineboy/pkg/storage"
	"github.com/thelolagemann/lineboy/pkg/utils"
)

// screen is a frame sink that also provides input.
type screen interface {
	display.FrameSink
	Poll() (pressed uint8, open bool)
	Close()
}

func main() {
	os.Exit(goboy())
}

func goboy() int {
	romFile := flag.String("rom", "", "The rom file to load (.gb, .gbc, .zip, .gz or .7z), asked for with a file dialog when built with -tags dialog")
	saves := flag.String("saves", "saves", "The folder battery backed RAM is saved to, empty to disable saving")
	frames := flag.Int("frames", 0, "The number of frames to run for as fast as possible, 0 runs in real time until interrupted")
	screenshot := flag.String("screenshot", "", "Save the last frame as a PNG to this file on exit")
	scale := flag.Int("scale", 4, "The scale of the window and screenshot")
	webAddr := flag.String("web", "", "Stream frames to websocket clients on this address, e.g. :8090")
	sdl := flag.Bool("sdl", false, "Open an SDL window (requires building with -tags sdl)")
	ansi := flag.Int("ansi", 0, "Draw every nth frame to the terminal, 0 disables")
	perf := flag.String("perf", "", "Plot the time taken to emulate each frame as a PNG to this file on exit")
	debug := flag.Bool("debug", false, "Enable debug logging and dump the machine state on exit")
	flag.Parse()

	logger := log.NewWithWriter(os.Stderr, *debug)
	if *romFile == "" {
		path, err := utils.AskForFile("Select a ROM", ".")
		if err != nil {
			logger.Errorf("no rom provided, use -rom: %v", err)
			return 2
		}
		*romFile = path
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Errorf("failed to load rom: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []gameboy.Opt{gameboy.WithLogger(log.WithComponent(logger, "gameboy"))}
	if *saves != "" {
		store, err := storage.NewDir(*saves)
		if err != nil {
			logger.Errorf("failed to open save folder: %v", err)
			return 1
		}
		opts = append(opts, gameboy.WithStore(store))
	}

	var sinks []display.FrameSink
	if *ansi > 0 {
		sinks = append(sinks, display.NewANSI(os.Stdout, *ansi))
	}

	var hub *web.Hub
	if *webAddr != "" {
		hub = web.NewHub(web.WithLogger(log.WithComponent(logger, "web")))
		srv := &http.Server{Addr: *webAddr, Handler: hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("web server stopped: %v", err)
			}
		}()
		go hub.Run(ctx)
		defer srv.Close()

		sinks = append(sinks, hub.Player())
		logger.Infof("streaming to websocket clients on %s", *webAddr)
	}

	var win screen
	if *sdl {
		win, err = openWindow("goboy", *scale)
		if err != nil {
			logger.Errorf("failed to open window: %v", err)
			return 1
		}
		defer win.Close()
		sinks = append(sinks, win)
	}

	if len(sinks) > 0 {
		opts = append(opts, gameboy.WithFrameSink(display.Multi(sinks...)))
	}

	gb, err := gameboy.New(rom, "", opts...)
	if err != nil {
		logger.Errorf("failed to create gameboy: %v", err)
		return 1
	}
	defer gb.Close()
	gb.Start()

	frameTimes, runErr := run(ctx, gb, *frames, win, hub)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Errorf("emulation stopped: %v", runErr)
	}

	if *screenshot != "" {
		if err := display.SavePNG(*screenshot, gb.Framebuffer(), *scale); err != nil {
			logger.Errorf("failed to save screenshot: %v", err)
		}
	}
	if *perf != "" {
		if err := plotFrameTimes(*perf, frameTimes); err != nil {
			logger.Errorf("failed to plot frame times: %v", err)
		}
	}
	failed := runErr != nil && !errors.Is(runErr, context.Canceled)
	if *debug || failed {
		gb.Print(os.Stderr)
	}
	if failed {
		return 1
	}
	return 0
}

// run emulates frames until ctx is done, the window is closed or
// the frame limit is reached, returning the time each frame took to
// emulate. Without a frame limit, frames are paced to the hardware.
func run(ctx context.Context, gb *gameboy.GameBoy, limit int, win screen, hub *web.Hub) ([]time.Duration, error) {
	var frameTimes []time.Duration
	err := gb.Run(ctx, limit == 0, func(took time.Duration) bool {
		frameTimes = append(frameTimes, took)

		var pressed uint8
		if win != nil {
			p, open := win.Poll()
			if !open {
				return false
			}
			pressed |= p
		}
		if hub != nil {
			pressed |= hub.Buttons()
		}
		gb.SetJoypadMask(pressed)

		return limit == 0 || len(frameTimes) < limit
	})
	return frameTimes, err
}
