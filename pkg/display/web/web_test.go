package web

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/lineboy/pkg/display"
)

func newTestHub(t *testing.T, opts ...Opt) (*Hub, *websocket.Conn) {
	t.Helper()

	h := NewHub(opts...)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	srv := httptest.NewServer(h.Handler())
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})

	// client info, current frame and frame cache are sent on connect
	if msg := read(t, conn); msg[0] != ClientInfo {
		t.Fatalf("expected client info, got %v", msg[:1])
	}
	if msg := read(t, conn); msg[0] != FrameSync {
		t.Fatalf("expected frame sync, got %v", msg[:1])
	}
	if msg := read(t, conn); msg[0] != FrameCacheSync {
		t.Fatalf("expected frame cache sync, got %v", msg[:1])
	}

	return h, conn
}

func read(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if len(msg) > 0 && msg[0] == ServerInfo {
			continue
		}
		return msg
	}
}

func decode(t *testing.T, data []byte) []byte {
	t.Helper()
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func solid(r, g, b uint8) []byte {
	frame := make([]byte, display.FrameSize)
	for i := 0; i < len(frame); i += 4 {
		frame[i], frame[i+1], frame[i+2], frame[i+3] = r, g, b, 0xFF
	}
	return frame
}

func TestPlayer_Frame(t *testing.T) {
	h, conn := newTestHub(t)
	p := h.Player()
	red, blue := solid(0xFF, 0, 0), solid(0, 0, 0xFF)

	if err := p.Frame(red); err != nil {
		t.Fatal(err)
	}
	msg := read(t, conn)
	if msg[0] != Frame || binary.LittleEndian.Uint16(msg[1:]) != 0 {
		t.Fatalf("expected frame at index 0, got %v", msg[:3])
	}
	if !bytes.Equal(decode(t, msg[3:]), red) {
		t.Error("decoded frame doesn't match")
	}

	// unchanged frames are skipped, and counted on the next change
	p.Frame(red)
	p.Frame(red)
	if err := p.Frame(blue); err != nil {
		t.Fatal(err)
	}
	msg = read(t, conn)
	if msg[0] != FrameSkip || binary.LittleEndian.Uint32(msg[1:]) != 2 {
		t.Fatalf("expected 2 skipped frames, got %v", msg)
	}
	msg = read(t, conn)
	if msg[0] != Frame || binary.LittleEndian.Uint16(msg[1:]) != 1 {
		t.Fatalf("expected frame at index 1, got %v", msg[:3])
	}

	// a cached frame is sent as its index
	p.Frame(red)
	msg = read(t, conn)
	if msg[0] != FrameCache || binary.LittleEndian.Uint16(msg[1:]) != 0 {
		t.Fatalf("expected cached frame 0, got %v", msg)
	}
}

func TestPlayer_Uncompressed(t *testing.T) {
	h, conn := newTestHub(t, WithCompression(0), WithFrameSkipping(false))
	p := h.Player()
	green := solid(0, 0xFF, 0)

	p.Frame(green)
	msg := read(t, conn)
	if msg[0] != Frame || !bytes.Equal(msg[3:], green) {
		t.Fatal("expected the raw frame")
	}

	// without frame skipping an unchanged frame is still sent
	p.Frame(green)
	if msg = read(t, conn); msg[0] != FrameCache {
		t.Fatalf("expected cached frame, got %v", msg[:1])
	}
}

func TestPlayer_FrameSize(t *testing.T) {
	h := NewHub()
	if err := h.Player().Frame(make([]byte, 10)); err == nil {
		t.Error("expected an error for a short frame")
	}
}

func TestHub_Input(t *testing.T) {
	h, conn := newTestHub(t)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{Input, 0x11}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for h.Buttons() != 0x11 {
		if time.Now().After(deadline) {
			t.Fatalf("expected buttons 11, got %02X", h.Buttons())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHub_Settings(t *testing.T) {
	h, conn := newTestHub(t)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{Settings, Compression, 0}); err != nil {
		t.Fatal(err)
	}
	msg := read(t, conn)
	if msg[0] != ClientInfo || msg[1] != 0x02 {
		t.Fatalf("expected status with compression disabled, got %v", msg)
	}
	if level, skipping := h.settings(); level != 0 || !skipping {
		t.Errorf("unexpected settings %d %t", level, skipping)
	}
}

func TestHub_ServerInfo(t *testing.T) {
	_, conn := newTestHub(t)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if msg[0] != ServerInfo {
			continue
		}

		// one client, its ID and latency
		if len(msg) != 5 || msg[1] != 1 || msg[2] != 1 {
			t.Errorf("unexpected server info %v", msg)
		}
		return
	}
}

func TestRoundTrip_NoTCP(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	if _, err := roundTrip(a); !errors.Is(err, errNoTCPInfo) {
		t.Errorf("expected errNoTCPInfo, got %v", err)
	}
}

func TestCache(t *testing.T) {
	c := newCache(2)
	if c.index(1) != -1 {
		t.Error("expected empty cache")
	}
	if i := c.add(1, []byte{1}); i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
	c.add(2, []byte{2})
	c.add(3, []byte{3})

	// 1 was evicted by 3
	if c.index(1) != -1 || c.index(3) != 0 || c.index(2) != 1 {
		t.Errorf("unexpected cache indexes %d %d %d", c.index(1), c.index(2), c.index(3))
	}
}
