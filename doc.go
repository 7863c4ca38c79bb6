// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package wirecall is a transport-agnostic engine for registering, shipping,
// and correlating typed remote procedure calls.
//
// A program declares its remote methods as typed stub fields on a struct
// wrapping an [Endpoint]. The engine turns a local call on a stub into a
// serializable [Packet], routes inbound packets to the bound local handler,
// and matches each inbound response back to the outbound call that requested
// it. Everything else — the byte encoding of arguments, and the medium that
// moves packets — is pluggable through the [Codec] and [Transport]
// interfaces.
//
// # Declaring an interface
//
// Each remote method is one descriptor: a [Call] for methods with a result,
// a [Proc] for methods without. Descriptors register themselves at
// construction, and function IDs are assigned in construction order starting
// from zero. That order is the wire contract: two communicating endpoints
// must declare the same methods in the same order, because packets carry
// only the positional ID, never a name or schema.
//
//	type Calculator struct {
//	    *wirecall.Endpoint
//
//	    Square *wirecall.Call[int, int]
//	    Notify *wirecall.Proc[string]
//	}
//
//	func NewCalculator(id wirecall.Identity, t wirecall.Transport, c wirecall.Codec) *Calculator {
//	    ep := wirecall.NewEndpoint(id, t, c)
//	    return &Calculator{
//	        Endpoint: ep,
//	        Square:   wirecall.NewCall[int, int](ep),
//	        Notify:   wirecall.NewProc[string](ep),
//	    }
//	}
//
// A receiving endpoint binds local handlers to its stubs:
//
//	calc.Square.Bind(func(v int) int { return v * v })
//
// and a calling endpoint invokes them:
//
//	pc, err := calc.Square.Invoke(5)
//	...
//	v, err := wirecall.Await[int](pc)
//
// # Calls and correlation
//
// A method with a result is a two-packet exchange: a call packet outbound
// and a response packet inbound, joined by the call ID the endpoint stamped
// on the call. The endpoint does not keep the pending-call table itself;
// what an in-flight call looks like to the caller is decided entirely by the
// transport, which records state keyed by call ID when it ships the call and
// exposes a Complete hook the endpoint invokes when the response arrives.
// [Future] and [PendingSet] are the reference machinery transports can use
// for this; the queue, pair, and link packages all do.
//
// The endpoint invokes Complete at most once per outstanding call ID.
// Responses whose call ID is unknown — stale, duplicate, cancelled, or never
// issued — are silently discarded, as are call packets whose function ID is
// beyond the receiver's registered range. The engine has no timeouts: a call
// whose response never arrives stays pending until its transport says
// otherwise.
//
// # Dispatch and concurrency
//
// [Endpoint.Dispatch] is the single inbound entry point. It is a plain
// synchronous function call, performs no locking, and processes packets in
// exactly the order it is invoked on them. Whatever drives dispatch — a pump
// loop, a test, a queue drain — is responsible for ordering and, if packets
// arrive from several goroutines, for synchronization. Dispatch errors are
// local to one packet and leave the endpoint's tables intact; drivers are
// expected to report them and carry on.
package wirecall
