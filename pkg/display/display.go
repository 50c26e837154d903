// Package display provides the frame sinks the emulator presents its
// frames through, along with helpers for converting frames to images.
//
// A frame is 160x144 pixels of RGBA, row-major. The emulator reuses
// its framebuffer, so a sink must copy a frame it wants to keep.
package display

import (
	"errors"
	"sync"

	"github.com/thelolagemann/lineboy/internal/ppu"
)

// FrameSize is the size in bytes of a frame.
const FrameSize = ppu.FrameSize

// FrameSink accepts one frame per emulated frame.
type FrameSink interface {
	Frame(frame []byte) error
}

// FrameSinkFunc adapts a function to a FrameSink.
type FrameSinkFunc func(frame []byte) error

// Frame calls f(frame).
func (f FrameSinkFunc) Frame(frame []byte) error {
	return f(frame)
}

type multiSink []FrameSink

// Multi returns a FrameSink that passes each frame on to every sink,
// joining their errors.
func Multi(sinks ...FrameSink) FrameSink {
	return multiSink(sinks)
}

func (m multiSink) Frame(frame []byte) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Frame(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps a copy of the most recent frame.
type Recorder struct {
	mu     sync.Mutex
	last   [FrameSize]byte
	frames uint64
}

// Frame copies frame.
func (r *Recorder) Frame(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copy(r.last[:], frame)
	r.frames++
	return nil
}

// Last returns a copy of the most recent frame.
func (r *Recorder) Last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]byte(nil), r.last[:]...)
}

// Frames returns the number of frames recorded.
func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}
