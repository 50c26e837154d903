package web

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a single websocket connection to the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	// Send holds the messages queued for the client. It is closed
	// by the hub once the client is unregistered.
	Send chan []byte
	ID   uint8

	remoteAddr  string
	connectedAt time.Time
	// latency is the moving average round trip time in ms.
	latency atomic.Uint32
}

var errNoTCPInfo = errors.New("web: tcp info unavailable")

// readPump handles the messages of the client until the
// connection is closed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case Input:
			if len(message) < 2 {
				continue
			}
			c.hub.buttons.Store(uint32(message[1]))
		case Settings:
			if len(message) < 3 {
				continue
			}
			c.hub.configure(message[1], message[2])
		case Closing:
			c.hub.log.Debugf("web: client %d (%s) closing", c.ID, c.remoteAddr)
			return
		}
	}
}

// writePump writes queued messages to the connection until the
// hub closes Send.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			// drain until the hub notices the closed connection
			for range c.Send {
			}
			return
		}
		c.sampleLatency()
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// sampleLatency folds the round trip time of the connection into
// the average latency of the client.
func (c *Client) sampleLatency() {
	rtt, err := roundTrip(c.conn.UnderlyingConn())
	if err != nil {
		return
	}
	avg := c.latency.Load()
	c.latency.Store((avg*9 + uint32(rtt.Milliseconds())) / 10)
}
