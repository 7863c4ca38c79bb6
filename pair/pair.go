// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package pair provides a synchronous loopback transport connecting two
// endpoints in the same process.
//
// A packet sent through one side of the pair is dispatched directly into the
// endpoint attached to the other side, within the sender's call frame. For a
// method with a result this means the entire exchange — call dispatch,
// handler, response dispatch, completion — finishes before Invoke returns,
// so the returned future is already resolved. This is the degenerate flavor
// of the pending-call contract, useful for tests and for in-process wiring.
//
// Because dispatch happens in the caller's frame, an error from the remote
// endpoint (an unbound handler, a payload that does not decode) surfaces
// directly from Invoke.
package pair

import (
	"errors"

	"github.com/tessellate-io/wirecall"
)

// New returns a connected pair of transports. Construct one endpoint over
// each, then attach each side to the endpoint built on the other:
//
//	ta, tb := pair.New()
//	a := NewCalculator(wirecall.StaticID(0), ta, codec.JSON{})
//	b := NewCalculator(wirecall.StaticID(1), tb, codec.JSON{})
//	ta.Attach(b.Endpoint)
//	tb.Attach(a.Endpoint)
func New() (a, b *Conn) { return new(Conn), new(Conn) }

// A Conn is one side of a loopback pair. It implements the
// wirecall.Transport interface.
type Conn struct {
	remote  *wirecall.Endpoint
	pending wirecall.PendingSet
}

// Attach sets the endpoint that packets sent through c are dispatched into.
func (c *Conn) Attach(remote *wirecall.Endpoint) { c.remote = remote }

// Send implements a method of the [wirecall.Transport] interface. The packet
// is dispatched into the attached remote endpoint before Send returns.
func (c *Conn) Send(pkt *wirecall.Packet) error {
	if c.remote == nil {
		return errors.New("pair: no remote attached")
	}
	return c.remote.Dispatch(pkt)
}

// SendCall implements a method of the [wirecall.Transport] interface. The
// returned handle is a *wirecall.Future, already resolved if the remote
// handler ran and responded synchronously.
func (c *Conn) SendCall(pkt *wirecall.Packet) (wirecall.PendingCall, error) {
	f := c.pending.Add(pkt.CallID)
	if err := c.Send(pkt); err != nil {
		c.pending.Drop(pkt.CallID)
		return nil, err
	}
	return f, nil
}

// Complete implements a method of the [wirecall.Transport] interface.
func (c *Conn) Complete(id uint32, result any) { c.pending.Complete(id, result) }

// Pending reports the number of calls sent through c that are still awaiting
// a response. On a correctly wired pair this is nonzero only while a
// dispatch is in progress.
func (c *Conn) Pending() int { return c.pending.Len() }
