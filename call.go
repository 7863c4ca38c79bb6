// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package wirecall

import "fmt"

// A Call is the typed stub for one declared remote method taking an argument
// record P and returning a result R. Constructing a Call registers it with
// its endpoint, which assigns the next function ID in declaration order.
//
// On the calling side, Invoke encodes the arguments, stamps a fresh call ID,
// and hands the packet to the transport, which decides what the in-flight
// call looks like to the caller. On the receiving side, the endpoint routes
// matching call packets to the bound handler and automatically ships the
// handler's result back as a response packet carrying the same call ID.
type Call[P, R any] struct {
	fn      uint16
	ep      *Endpoint
	handler func(P) R
}

// NewCall registers a new method with result on e and returns its stub.
func NewCall[P, R any](e *Endpoint) *Call[P, R] {
	c := &Call[P, R]{ep: e}
	c.fn = e.register(c.serve, c.complete)
	return c
}

// Bind attaches fn as the local handler invoked when this method is called
// remotely, replacing any previous handler. A method with no handler bound
// reports ErrNotBound when a call for it is dispatched.
func (c *Call[P, R]) Bind(fn func(P) R) { c.handler = fn }

// ID reports the function ID assigned to this method at registration.
func (c *Call[P, R]) ID() uint16 { return c.fn }

// Invoke calls the method remotely with the given arguments. The returned
// handle is whatever the endpoint's transport produced for the pending call;
// for the transports in this module it is a *Future, and the typed result
// can be recovered with Await. The result is delivered when the matching
// response packet is dispatched on this endpoint.
func (c *Call[P, R]) Invoke(args P) (PendingCall, error) {
	pkt, err := c.ep.newPacket(c.fn, c.ep.NextCallID(), TypeCall, args)
	if err != nil {
		return nil, fmt.Errorf("call %d: encode arguments: %w", c.fn, err)
	}
	metrics.callOut.Add(1)
	return c.ep.transport.SendCall(pkt)
}

// serve handles an inbound call packet: decode the arguments, run the bound
// handler, and ship its result back under the caller's call ID.
func (c *Call[P, R]) serve(pkt *Packet) error {
	var args P
	if err := c.ep.codec.Decode(pkt.Payload, &args); err != nil {
		return fmt.Errorf("call %d: decode arguments: %w", c.fn, err)
	}
	if c.handler == nil {
		metrics.callUnbound.Add(1)
		return fmt.Errorf("call %d: %w", c.fn, ErrNotBound)
	}
	rsp, err := c.ep.newPacket(c.fn, pkt.CallID, TypeResponse, c.handler(args))
	if err != nil {
		return fmt.Errorf("call %d: encode result: %w", c.fn, err)
	}
	metrics.responseOut.Add(1)
	return c.ep.transport.Send(rsp)
}

// complete handles an inbound response packet: decode the result with this
// method's declared shape and deliver it to the transport's pending entry.
func (c *Call[P, R]) complete(pkt *Packet) error {
	var result R
	if err := c.ep.codec.Decode(pkt.Payload, &result); err != nil {
		return fmt.Errorf("call %d: decode result: %w", c.fn, err)
	}
	c.ep.transport.Complete(pkt.CallID, result)
	return nil
}

// A Proc is the typed stub for a declared remote method with no result.
// It registers and dispatches exactly like a Call, but its packets are fire
// and forget: a call ID is still stamped on each outbound packet, but no
// response is ever sent or awaited for it.
type Proc[P any] struct {
	fn      uint16
	ep      *Endpoint
	handler func(P)
}

// NewProc registers a new method without result on e and returns its stub.
func NewProc[P any](e *Endpoint) *Proc[P] {
	c := &Proc[P]{ep: e}
	c.fn = e.register(c.serve, nil)
	return c
}

// Bind attaches fn as the local handler, replacing any previous handler.
func (c *Proc[P]) Bind(fn func(P)) { c.handler = fn }

// ID reports the function ID assigned to this method at registration.
func (c *Proc[P]) ID() uint16 { return c.fn }

// Invoke calls the method remotely with the given arguments.
func (c *Proc[P]) Invoke(args P) error {
	pkt, err := c.ep.newPacket(c.fn, c.ep.NextCallID(), TypeCall, args)
	if err != nil {
		return fmt.Errorf("call %d: encode arguments: %w", c.fn, err)
	}
	metrics.callOut.Add(1)
	return c.ep.transport.Send(pkt)
}

func (c *Proc[P]) serve(pkt *Packet) error {
	var args P
	if err := c.ep.codec.Decode(pkt.Payload, &args); err != nil {
		return fmt.Errorf("call %d: decode arguments: %w", c.fn, err)
	}
	if c.handler == nil {
		metrics.callUnbound.Add(1)
		return fmt.Errorf("call %d: %w", c.fn, ErrNotBound)
	}
	c.handler(args)
	return nil
}
