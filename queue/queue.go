// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package queue provides a pull-driven in-memory transport.
//
// A Hub holds one outbox per instance ID. Packets accumulate in the outbox
// of the endpoint that sent them until Deliver drains them, in send order,
// into a receiving endpoint. Nothing moves until the receiver asks, which
// makes the hub convenient for tests and for single-threaded message loops
// that want explicit control over when dispatch happens.
package queue

import (
	"errors"
	"sync"

	"github.com/tessellate-io/wirecall"
)

// A Hub routes packets between endpoints through per-instance outboxes.
type Hub struct {
	μ      sync.Mutex
	outbox map[uint16][]*wirecall.Packet
}

// NewHub constructs a new empty hub.
func NewHub() *Hub {
	return &Hub{outbox: make(map[uint16][]*wirecall.Packet)}
}

// Join returns a transport attached to the hub for use by one endpoint.
// Each endpoint on a hub needs its own Box, since the box also tracks that
// endpoint's pending calls.
func (h *Hub) Join() *Box { return &Box{hub: h} }

// Deliver drains the outbox of the instance from, dispatching each packet
// into to in send order, and reports the number of packets dispatched. A
// packet whose dispatch fails does not stop the drain; the failures are
// joined into the returned error.
func (h *Hub) Deliver(from uint16, to *wirecall.Endpoint) (int, error) {
	h.μ.Lock()
	pkts := h.outbox[from]
	delete(h.outbox, from)
	h.μ.Unlock()

	var errs []error
	for _, pkt := range pkts {
		if err := to.Dispatch(pkt); err != nil {
			errs = append(errs, err)
		}
	}
	return len(pkts), errors.Join(errs...)
}

// Queued reports the number of packets waiting in the outbox of instance id.
func (h *Hub) Queued(id uint16) int {
	h.μ.Lock()
	defer h.μ.Unlock()
	return len(h.outbox[id])
}

func (h *Hub) push(pkt *wirecall.Packet) {
	h.μ.Lock()
	defer h.μ.Unlock()
	h.outbox[pkt.InstanceID] = append(h.outbox[pkt.InstanceID], pkt)
}

// A Box is the hub transport for a single endpoint. It implements the
// wirecall.Transport interface.
type Box struct {
	hub     *Hub
	pending wirecall.PendingSet
}

// Send implements a method of the [wirecall.Transport] interface.
func (b *Box) Send(pkt *wirecall.Packet) error {
	b.hub.push(pkt)
	return nil
}

// SendCall implements a method of the [wirecall.Transport] interface.
// The returned handle is a *wirecall.Future.
func (b *Box) SendCall(pkt *wirecall.Packet) (wirecall.PendingCall, error) {
	f := b.pending.Add(pkt.CallID)
	b.hub.push(pkt)
	return f, nil
}

// Complete implements a method of the [wirecall.Transport] interface.
func (b *Box) Complete(id uint32, result any) { b.pending.Complete(id, result) }

// Cancel abandons the pending call with the given ID, and reports whether
// such a call was pending. Its future never resolves, and a late response
// for the ID is discarded.
func (b *Box) Cancel(id uint32) bool { return b.pending.Drop(id) }

// Pending reports the number of calls sent through b that are still
// awaiting a response.
func (b *Box) Pending() int { return b.pending.Len() }
