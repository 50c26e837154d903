// Package web streams the frames of an emulator to any number of
// websocket clients, and accepts joypad input from them.
//
// Frames are brotli compressed and kept in a small ring cache that
// clients mirror, so that repeated frames are sent as a cache index
// and unchanged frames are not sent at all.
package web

import (
	"context"
	"encoding/binary"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/lineboy/internal/types"
	"github.com/thelolagemann/lineboy/pkg/log"
)

// Hub keeps track of the connected clients, and broadcasts
// messages to them.
type Hub struct {
	clients map[*Client]bool
	player  *Player

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	compression      bool
	compressionLevel int
	frameSkipping    bool
	cacheSize        int
	currentID        uint8

	buttons atomic.Uint32
	log     log.Logger

	mu sync.Mutex
}

// Opt configures a Hub.
type Opt func(*Hub)

// WithLogger sets the logger of the hub.
func WithLogger(l log.Logger) Opt {
	return func(h *Hub) {
		h.log = l
	}
}

// WithCompression sets the brotli compression level, 0-11. Level
// 0 disables compression.
func WithCompression(level int) Opt {
	return func(h *Hub) {
		h.compression = level > 0
		h.compressionLevel = level
	}
}

// WithFrameSkipping sets whether unchanged frames are skipped.
func WithFrameSkipping(enabled bool) Opt {
	return func(h *Hub) {
		h.frameSkipping = enabled
	}
}

// WithCacheSize sets the number of frames clients cache.
func WithCacheSize(size int) Opt {
	return func(h *Hub) {
		if size > 0 {
			h.cacheSize = size
		}
	}
}

// NewHub returns a new Hub. Run must be called for clients to
// be served.
func NewHub(opts ...Opt) *Hub {
	h := &Hub{
		clients:          make(map[*Client]bool),
		broadcast:        make(chan []byte, 16),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		done:             make(chan struct{}),
		compression:      true,
		compressionLevel: 7,
		frameSkipping:    true,
		cacheSize:        64,
		log:              log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.player = newPlayer(h)

	return h
}

// Player returns the frame sink that streams to the clients of
// the hub.
func (h *Hub) Player() *Player {
	return h.player
}

// Buttons returns the pressed buttons last sent by a client.
func (h *Hub) Buttons() uint8 {
	return uint8(h.buttons.Load())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler returns the http.Handler that upgrades requests to
// websocket clients of the hub.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warnf("web: failed to upgrade %s: %v", r.RemoteAddr, err)
			return
		}

		c := h.newClient(conn, r)

		// synchronise the client before it receives any broadcast
		c.Send <- []byte{ClientInfo, h.info(), uint8(h.level())}
		h.player.sync(c)

		select {
		case h.register <- c:
		case <-h.done:
			conn.Close()
			return
		}

		go c.readPump()
		go c.writePump()
	})
}

// Run serves the clients of the hub until ctx is done. A hub
// can only be run once.
func (h *Hub) Run(ctx context.Context) error {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			return ctx.Err()
		case c := <-h.register:
			h.clients[c] = true
			h.log.Infof("web: client %d connected from %s", c.ID, c.remoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
				h.log.Infof("web: client %d disconnected after %s", c.ID, time.Since(c.connectedAt).Round(time.Second))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					// the client can't keep up
					close(c.Send)
					delete(h.clients, c)
				}
			}
		case <-t.C:
			msg := []byte{ServerInfo, uint8(len(h.clients))}
			for c := range h.clients {
				msg = append(msg, c.ID)
				msg = binary.LittleEndian.AppendUint16(msg, uint16(c.latency.Load()))
			}
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
				}
			}
		}
	}
}

// SendAll queues message for every client. Messages are dropped
// while the hub is too far behind.
func (h *Hub) SendAll(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.log.Debugf("web: dropped message %d, hub is behind", message[0])
	}
}

// configure applies a setting sent by a client, and notifies every
// client of the new status.
func (h *Hub) configure(setting Setting, value uint8) {
	h.mu.Lock()
	switch setting {
	case Compression:
		h.compression = value == 1
	case CompressionLevel:
		if value <= 11 {
			h.compressionLevel = int(value)
		}
	case FrameSkipping:
		h.frameSkipping = value == 1
	default:
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.SendAll([]byte{ClientInfo, h.info(), uint8(h.level())})
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Compression enabled
//	Bit 1: Frame skipping enabled
func (h *Hub) info() byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	info := uint8(0)
	if h.compression {
		info |= types.Bit0
	}
	if h.frameSkipping {
		info |= types.Bit1
	}
	return info
}

func (h *Hub) level() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compressionLevel
}

// settings returns the compression level (0 when disabled) and
// whether frame skipping is enabled.
func (h *Hub) settings() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	level := h.compressionLevel
	if !h.compression {
		level = 0
	}
	return level, h.frameSkipping
}

// newClient creates a new client of the hub.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	return &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		remoteAddr:  r.RemoteAddr,
		connectedAt: time.Now(),
	}
}
