// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package wirecall

import (
	"fmt"

	"github.com/creachadair/mds/value"
)

// A CallType tags the role of a packet in the call protocol.
type CallType byte

const (
	TypeCall     CallType = 1 // the initiating packet of a call
	TypeResponse CallType = 2 // the result packet answering a call
)

func (t CallType) String() string {
	switch t {
	case TypeCall:
		return "CALL"
	case TypeResponse:
		return "RESPONSE"
	default:
		return fmt.Sprintf("TYPE:%d", byte(t))
	}
}

// A Packet is the wire-independent envelope exchanged between endpoints.  It
// is a pure data carrier: the core reads and stamps its header fields, and
// the payload is opaque bytes produced and consumed only by the endpoint's
// Codec. How a packet moves between processes, and in what byte format, is
// entirely the business of the Transport that ships it.
type Packet struct {
	InstanceID uint16   // identity of the endpoint that stamped the packet
	FunctionID uint16   // which declared method the packet belongs to
	CallID     uint32   // correlates a response with its originating call
	Type       CallType // call or response
	Payload    []byte   // opaque encoded arguments or result
}

// String returns a human-friendly rendering of the packet.
func (p *Packet) String() string {
	return fmt.Sprintf("Packet(%v, instance=%d, function=%d, call=%d, %s)",
		p.Type, p.InstanceID, p.FunctionID, p.CallID,
		value.Cond(len(p.Payload) == 0, "empty", fmt.Sprintf("%d bytes", len(p.Payload))))
}
