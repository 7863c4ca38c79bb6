// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package wirecall

import (
	"errors"
)

// A Codec is the serialization boundary between typed method arguments or
// results and the opaque packet payload. The core only calls into a Codec,
// it never implements one; see the codec package for implementations.
//
// The value handed to Encode is always the exact argument record (or result
// value) declared for a method, and the pointer handed to Decode always has
// the statically declared shape registered for the packet's function ID. A
// Codec must round-trip every such value; beyond that the encoding is its
// own affair.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// A Transport ships outbound packets toward their destination endpoint and
// owns the bookkeeping for calls that expect a response. The queue, pair,
// and link packages provide implementations.
type Transport interface {
	// Send delivers an outbound packet that expects no response. This is
	// used for void method calls and for the automatic responses the
	// endpoint sends on behalf of handlers.
	Send(pkt *Packet) error

	// SendCall delivers an outbound call packet whose response is expected.
	// The transport must retain enough state, keyed by pkt.CallID, to later
	// resolve whatever handle it returns here. The concrete type of the
	// handle is the transport's choice; the transports in this module
	// return a *Future.
	SendCall(pkt *Packet) (PendingCall, error)

	// Complete resolves the pending entry for the given call ID with the
	// decoded result. The endpoint invokes Complete at most once per live
	// call ID, synchronously from whatever context dispatched the matching
	// response packet. Unknown or already-resolved IDs must be ignored.
	Complete(id uint32, result any)
}

// An Identity reports the instance ID of an endpoint. The core stamps the ID
// into outbound packets and otherwise does not interpret it; transports use
// it to route packets between endpoints.
type Identity interface {
	InstanceID() uint16
}

// StaticID is a fixed endpoint identity known at construction.
type StaticID uint16

// InstanceID implements the Identity interface.
func (s StaticID) InstanceID() uint16 { return uint16(s) }

// A DynamicID is an endpoint identity that can be reassigned at runtime, for
// deployments where instance IDs are handed out after construction.
type DynamicID struct {
	id uint16
}

// InstanceID implements the Identity interface.
func (d *DynamicID) InstanceID() uint16 { return d.id }

// SetInstanceID replaces the current instance ID.
func (d *DynamicID) SetInstanceID(id uint16) { d.id = id }

// ErrNotBound is reported by Dispatch when a call packet addresses a
// registered method that has no local handler bound. This is a configuration
// error on the receiving endpoint, distinct from the silent discard of
// packets for unknown function IDs.
var ErrNotBound = errors.New("no handler bound")

// An Endpoint is one side of an RPC relationship: it owns the descriptors
// for a set of declared remote methods, assigns their function IDs, mints
// call IDs for outbound calls, and routes inbound packets.
//
// Construct an endpoint with NewEndpoint, then declare its methods by
// constructing one Call or Proc descriptor per method, all before the first
// packet is exchanged. Function IDs are assigned in construction order
// starting from zero, so the order of descriptor construction is the wire
// contract: both ends of a conversation must declare the same methods in the
// same order.
//
// An Endpoint performs no locking of its own. Dispatch is a plain
// synchronous, reentrant function call, and packets are processed strictly
// in the order Dispatch is invoked on them. A transport that delivers
// packets from multiple goroutines, or concurrently with outbound calls,
// must supply its own synchronization (see the link package for an example).
type Endpoint struct {
	Identity

	transport Transport
	codec     Codec

	calls    []dispatcher          // functionID → inbound call path, in declaration order
	results  map[uint16]dispatcher // functionID → inbound response path
	lastCall uint32                // most recently minted call ID
}

// A dispatcher is the untyped inbound path of one registered descriptor.
type dispatcher func(pkt *Packet) error

// NewEndpoint constructs a new endpoint with the given identity that ships
// packets through t and encodes payloads with c.
func NewEndpoint(id Identity, t Transport, c Codec) *Endpoint {
	return &Endpoint{
		Identity:  id,
		transport: t,
		codec:     c,
		results:   make(map[uint16]dispatcher),
	}
}

// register records the inbound paths of a new descriptor and returns its
// assigned function ID. It is called only by descriptor constructors; result
// is nil for methods with no declared result.
func (e *Endpoint) register(call, result dispatcher) uint16 {
	id := uint16(len(e.calls))
	e.calls = append(e.calls, call)
	if result != nil {
		e.results[id] = result
	}
	return id
}

// NextCallID mints a fresh call ID. IDs are strictly increasing from 1 and
// are not recycled; a uint32 is free to wrap, since an ID only needs to be
// unique among the calls still outstanding when it is minted.
func (e *Endpoint) NextCallID() uint32 { e.lastCall++; return e.lastCall }

// NumCalls reports the number of methods declared on e.
func (e *Endpoint) NumCalls() int { return len(e.calls) }

// Dispatch routes one inbound packet to the matching descriptor. It is the
// single entry point a transport or event loop must invoke, once per
// received packet, in receipt order. Dispatch returns only after the local
// handler (and, for methods with a result, the automatic response send) has
// completed.
//
// A call packet whose function ID is outside the registered range is
// silently discarded: the sender may simply declare more methods than this
// endpoint knows about. A response packet is likewise discarded when its
// function ID has no registered result path, or (by the transport) when its
// call ID is no longer tracked.
//
// Any error from Dispatch — a payload that does not decode, a recognized
// call with no handler bound (ErrNotBound), a failed response send — is
// local to that one packet. The caller is expected to report it and keep
// dispatching; the endpoint's tables and counters are unaffected.
func (e *Endpoint) Dispatch(pkt *Packet) error {
	switch pkt.Type {
	case TypeCall:
		if int(pkt.FunctionID) >= len(e.calls) {
			metrics.packetIgnored.Add(1)
			return nil
		}
		metrics.callIn.Add(1)
		return e.calls[pkt.FunctionID](pkt)

	case TypeResponse:
		result, ok := e.results[pkt.FunctionID]
		if !ok {
			metrics.packetIgnored.Add(1)
			return nil
		}
		metrics.responseIn.Add(1)
		return result(pkt)

	default:
		metrics.packetIgnored.Add(1)
		return nil
	}
}

// newPacket builds an outbound packet stamped with the endpoint's current
// instance ID, encoding v as its payload.
func (e *Endpoint) newPacket(fn uint16, call uint32, ctype CallType, v any) (*Packet, error) {
	payload, err := e.codec.Encode(v)
	if err != nil {
		return nil, err
	}
	return &Packet{
		InstanceID: e.InstanceID(),
		FunctionID: fn,
		CallID:     call,
		Type:       ctype,
		Payload:    payload,
	}, nil
}
