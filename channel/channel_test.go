// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package channel_test

import (
	"io"
	"testing"

	"github.com/creachadair/taskgroup"
	"github.com/google/go-cmp/cmp"
	"github.com/tessellate-io/wirecall"
	"github.com/tessellate-io/wirecall/channel"
)

func TestDirect(t *testing.T) {
	c, s := channel.Direct()

	g := taskgroup.New(nil)
	g.Go(func() error {
		pkt := new(wirecall.Packet)
		if err := c.Send(pkt); err != nil {
			t.Errorf("A Send: %v", err)
		}
		got, err := c.Recv()
		if err != nil {
			t.Errorf("A Recv: %v", err)
		}
		if got != pkt {
			t.Errorf("Packet: got %v, want %v", got, pkt)
		}
		return nil
	})
	g.Go(func() error {
		pkt, err := s.Recv()
		if err != nil {
			t.Errorf("B Recv: %v", err)
		}
		if err := s.Send(pkt); err != nil {
			t.Errorf("B Send: %v", err)
		}
		return nil
	})
	g.Wait()

	if err := c.Close(); err != nil {
		t.Errorf("c.Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("s.Close: %v", err)
	}

	if err := c.Send(nil); err == nil {
		t.Error("c.Send after close did not report an error")
	}
	if pkt, err := s.Recv(); err == nil {
		t.Errorf("s.Recv after close: got %+v", pkt)
	} else {
		t.Logf("Error OK: %v", err)
	}
}

func TestIO(t *testing.T) {
	r1, w1 := io.Pipe()
	r2, w2 := io.Pipe()
	a := channel.IO(r1, w2)
	b := channel.IO(r2, w1)

	tests := []*wirecall.Packet{
		{InstanceID: 0, FunctionID: 4, CallID: 1, Type: wirecall.TypeCall, Payload: []byte("5")},
		{InstanceID: 1, FunctionID: 4, CallID: 1, Type: wirecall.TypeResponse, Payload: []byte("25")},
		{InstanceID: 9, FunctionID: 0, CallID: 1000, Type: wirecall.TypeCall}, // empty payload
	}
	g := taskgroup.New(nil)
	g.Go(func() error {
		for _, pkt := range tests {
			if err := a.Send(pkt); err != nil {
				t.Errorf("Send %v: %v", pkt, err)
			}
		}
		return nil
	})
	for _, want := range tests {
		got, err := b.Recv()
		if err != nil {
			t.Fatalf("Recv: unexpected error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Packet (-want, +got):\n%s", diff)
		}
	}
	g.Wait()
}

func TestIOBadHeader(t *testing.T) {
	r, w := io.Pipe()
	ch := channel.IO(r, w)

	go func() {
		io.WriteString(w, "XX\x00haha, this is not a packet")
		w.Close()
	}()
	if pkt, err := ch.Recv(); err == nil {
		t.Errorf("Recv: got %+v, want error", pkt)
	} else {
		t.Logf("Error OK: %v", err)
	}
}
