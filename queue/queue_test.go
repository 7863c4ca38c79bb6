// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package queue_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tessellate-io/wirecall"
	"github.com/tessellate-io/wirecall/codec"
	"github.com/tessellate-io/wirecall/queue"
)

type echoAPI struct {
	*wirecall.Endpoint

	Ping *wirecall.Proc[int]
	Echo *wirecall.Call[string, string]
}

func newEchoAPI(id uint16, t wirecall.Transport) *echoAPI {
	ep := wirecall.NewEndpoint(wirecall.StaticID(id), t, codec.JSON{})
	return &echoAPI{
		Endpoint: ep,
		Ping:     wirecall.NewProc[int](ep),
		Echo:     wirecall.NewCall[string, string](ep),
	}
}

func TestDeliveryOrder(t *testing.T) {
	hub := queue.NewHub()
	sender := newEchoAPI(0, hub.Join())
	receiver := newEchoAPI(1, hub.Join())

	var got []int
	receiver.Ping.Bind(func(v int) { got = append(got, v) })

	want := []int{3, 1, 4, 1, 5, 9}
	for _, v := range want {
		if err := sender.Ping.Invoke(v); err != nil {
			t.Fatalf("Invoke(%d): unexpected error: %v", v, err)
		}
	}
	if n := hub.Queued(0); n != len(want) {
		t.Errorf("Queued: got %d, want %d", n, len(want))
	}

	n, err := hub.Deliver(0, receiver.Endpoint)
	if err != nil {
		t.Errorf("Deliver: unexpected error: %v", err)
	}
	if n != len(want) {
		t.Errorf("Deliver: got %d packets, want %d", n, len(want))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dispatch order (-want, +got):\n%s", diff)
	}

	// The outbox is drained; a second delivery is empty.
	if n, err := hub.Deliver(0, receiver.Endpoint); n != 0 || err != nil {
		t.Errorf("Redeliver: got %d, %v; want 0, nil", n, err)
	}
}

func TestDeliverContinuesOnError(t *testing.T) {
	hub := queue.NewHub()
	sender := newEchoAPI(0, hub.Join())
	receiver := newEchoAPI(1, hub.Join())
	// Ping is left unbound; Echo is bound.
	receiver.Echo.Bind(func(s string) string { return s })

	if err := sender.Ping.Invoke(1); err != nil {
		t.Fatalf("Invoke: unexpected error: %v", err)
	}
	pc, err := sender.Echo.Invoke("hello")
	if err != nil {
		t.Fatalf("Invoke: unexpected error: %v", err)
	}

	n, err := hub.Deliver(0, receiver.Endpoint)
	if n != 2 {
		t.Errorf("Deliver: got %d packets, want 2", n)
	}
	if !errors.Is(err, wirecall.ErrNotBound) {
		t.Errorf("Deliver: got error %v, want ErrNotBound", err)
	}

	if _, err := hub.Deliver(1, sender.Endpoint); err != nil {
		t.Errorf("Deliver responses: unexpected error: %v", err)
	}
	if got, err := wirecall.Await[string](pc); err != nil || got != "hello" {
		t.Errorf("Echo: got %q, %v; want \"hello\", nil", got, err)
	}
}

func TestCancel(t *testing.T) {
	hub := queue.NewHub()
	box := hub.Join()
	sender := newEchoAPI(0, box)
	receiver := newEchoAPI(1, hub.Join())
	receiver.Echo.Bind(func(s string) string { return s })

	pc, err := sender.Echo.Invoke("too slow") // call ID 1
	if err != nil {
		t.Fatalf("Invoke: unexpected error: %v", err)
	}
	if !box.Cancel(1) {
		t.Error("Cancel(1) reported no pending call")
	}
	if box.Cancel(1) {
		t.Error("Cancel(1) twice reported a pending call")
	}

	// The exchange still happens on the wire, but the late response lands on
	// an unknown call ID and is dropped; the future never resolves.
	hub.Deliver(0, receiver.Endpoint)
	if _, err := hub.Deliver(1, sender.Endpoint); err != nil {
		t.Errorf("Deliver responses: unexpected error: %v", err)
	}
	if pc.(*wirecall.Future).Ready() {
		t.Error("Cancelled call resolved")
	}
	if n := box.Pending(); n != 0 {
		t.Errorf("Pending: got %d, want 0", n)
	}
}
