//go:build linux

package web

import (
	"net"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go func() {
		if c, err := ln.Accept(); err == nil {
			c.Write([]byte{0})
			c.Close()
		}
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.Read(make([]byte, 1))

	rtt, err := roundTrip(conn)
	if err != nil {
		t.Fatal(err)
	}
	if rtt < 0 {
		t.Errorf("unexpected round trip %s", rtt)
	}
}
