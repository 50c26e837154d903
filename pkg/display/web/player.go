package web

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/lineboy/pkg/display"
)

// Player is a display.FrameSink that streams every frame to the
// clients of a Hub.
type Player struct {
	hub          *Hub
	frameCache   *cache
	currentFrame []byte

	framesSkipped uint32

	mu sync.Mutex
}

var _ display.FrameSink = (*Player)(nil)

func newPlayer(h *Hub) *Player {
	return &Player{
		hub:          h,
		frameCache:   newCache(h.cacheSize),
		currentFrame: make([]byte, display.FrameSize),
	}
}

// Frame broadcasts frame. Frames equal to the last are skipped when
// frame skipping is enabled, and cached frames are sent as their
// cache index.
func (p *Player) Frame(frame []byte) error {
	if len(frame) != display.FrameSize {
		return fmt.Errorf("web: frame is %d bytes, expected %d", len(frame), display.FrameSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	level, skipping := p.hub.settings()
	if skipping && bytes.Equal(frame, p.currentFrame) {
		p.framesSkipped++
		return nil
	}
	copy(p.currentFrame, frame)

	if p.framesSkipped > 0 {
		msg := make([]byte, 5)
		msg[0] = FrameSkip
		binary.LittleEndian.PutUint32(msg[1:], p.framesSkipped)
		p.hub.SendAll(msg)
		p.framesSkipped = 0
	}

	output, err := encode(frame, level)
	if err != nil {
		return err
	}
	hash := xxhash.Sum64(output)

	p.frameCache.Lock()
	defer p.frameCache.Unlock()

	// does this frame exist in the cache?
	if idx := p.frameCache.index(hash); idx != -1 {
		msg := []byte{FrameCache, 0, 0}
		binary.LittleEndian.PutUint16(msg[1:], uint16(idx))
		p.hub.SendAll(msg)
		return nil
	}

	idx := p.frameCache.add(hash, output)
	msg := make([]byte, 3, 3+len(output))
	msg[0] = Frame
	binary.LittleEndian.PutUint16(msg[1:], uint16(idx))
	p.hub.SendAll(append(msg, output...))

	return nil
}

// sync queues the current frame and the frame cache for c.
func (p *Player) sync(c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()

	level, _ := p.hub.settings()
	frameData, err := encode(p.currentFrame, level)
	if err != nil {
		p.hub.log.Errorf("web: failed to encode frame for client %d: %v", c.ID, err)
		return
	}
	c.Send <- append([]byte{FrameSync}, frameData...)

	p.frameCache.RLock()
	defer p.frameCache.RUnlock()

	data := []byte{FrameCacheSync}
	for i, e := range p.frameCache.cache {
		if len(e.data) == 0 {
			continue
		}

		var header [6]byte
		binary.LittleEndian.PutUint32(header[:4], uint32(len(e.data)))
		binary.LittleEndian.PutUint16(header[4:], uint16(i))
		data = append(append(data, header[:]...), e.data...)
	}
	c.Send <- data
}

// encode compresses data at the given brotli level, or copies it
// when level is 0.
func encode(data []byte, level int) ([]byte, error) {
	if level == 0 {
		return append([]byte(nil), data...), nil
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, level)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
