// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package channel provides byte-level carriers for wirecall packets.
//
// The wirecall core never defines a byte format for its envelope; that is a
// transport concern, and this package supplies the two basic shapes of it: a
// direct in-memory pair that passes packets without encoding, and a framed
// binary encoding over a reader/writer pair such as a pipe or socket.
package channel

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/tessellate-io/wirecall"
)

// A Channel is a reliable ordered carrier of packets shared by two
// endpoints.
//
// The methods of an implementation must be safe for concurrent use by one
// sender and one receiver.
type Channel interface {
	// Send the packet to the receiver.
	Send(*wirecall.Packet) error

	// Receive the next available packet from the channel.
	Recv() (*wirecall.Packet, error)

	// Close the channel, causing any pending send or receive operations to
	// terminate and report an error. After a channel is closed, all further
	// operations on it must report an error.
	Close() error
}

// Direct constructs a connected pair of in-memory channels that pass packets
// directly without encoding into binary. Packets sent to A are received by B
// and vice versa.
func Direct() (A, B Channel) {
	a2b := make(chan *wirecall.Packet)
	b2a := make(chan *wirecall.Packet)
	A = direct{a2b: a2b, b2a: b2a}
	B = direct{a2b: b2a, b2a: a2b}
	return
}

type direct struct {
	a2b chan<- *wirecall.Packet
	b2a <-chan *wirecall.Packet
}

// Send implements a method of the [Channel] interface.
func (d direct) Send(pkt *wirecall.Packet) (err error) {
	defer safeClose(&err)
	d.a2b <- pkt
	return nil
}

// Recv implements a method of the [Channel] interface.
func (d direct) Recv() (*wirecall.Packet, error) {
	pkt, ok := <-d.b2a
	if !ok {
		return nil, net.ErrClosed
	}
	return pkt, nil
}

// Close implements a method of the [Channel] interface.
func (d direct) Close() (err error) {
	defer safeClose(&err)
	close(d.a2b)
	return nil
}

func safeClose(err *error) {
	if x := recover(); x != nil && *err == nil {
		*err = net.ErrClosed
	}
}

// headerLen is the size of the fixed envelope header: a 3-byte magic, the
// call type, instance and function IDs, the call ID, and the payload length.
const headerLen = 16

// magic marks the start of every framed packet.
const magic = "WC\x00"

// IO constructs a channel that receives from r and sends to wc, framing each
// packet as a fixed big-endian header followed by the payload bytes.
func IO(r io.Reader, wc io.WriteCloser) IOChannel {
	// N.B. The bufio package will reuse existing buffers if possible.
	return IOChannel{r: bufio.NewReader(r), w: bufio.NewWriter(wc), c: wc}
}

// An IOChannel sends and receives packets on a reader and a writer.
type IOChannel struct {
	r *bufio.Reader
	w *bufio.Writer
	c io.Closer
}

// Send implements a method of the [Channel] interface.
func (c IOChannel) Send(pkt *wirecall.Packet) error {
	var hdr [headerLen]byte
	copy(hdr[:], magic)
	hdr[3] = byte(pkt.Type)
	binary.BigEndian.PutUint16(hdr[4:], pkt.InstanceID)
	binary.BigEndian.PutUint16(hdr[6:], pkt.FunctionID)
	binary.BigEndian.PutUint32(hdr[8:], pkt.CallID)
	binary.BigEndian.PutUint32(hdr[12:], uint32(len(pkt.Payload)))
	if _, err := c.w.Write(hdr[:]); err != nil {
		return err
	}
	if len(pkt.Payload) != 0 {
		if _, err := c.w.Write(pkt.Payload); err != nil {
			return err
		}
	}
	return c.w.Flush()
}

// Recv implements a method of the [Channel] interface.
func (c IOChannel) Recv() (*wirecall.Packet, error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(c.r, hdr[:]); err != nil {
		return nil, err
	}
	if got := string(hdr[:3]); got != magic {
		return nil, fmt.Errorf("invalid packet header %q", got)
	}

	pkt := &wirecall.Packet{
		Type:       wirecall.CallType(hdr[3]),
		InstanceID: binary.BigEndian.Uint16(hdr[4:]),
		FunctionID: binary.BigEndian.Uint16(hdr[6:]),
		CallID:     binary.BigEndian.Uint32(hdr[8:]),
	}
	if psize := binary.BigEndian.Uint32(hdr[12:]); psize > 0 {
		pkt.Payload = make([]byte, int(psize))
		if _, err := io.ReadFull(c.r, pkt.Payload); err != nil {
			return nil, fmt.Errorf("short payload: %w", err)
		}
	}
	return pkt, nil
}

// Close implements a method of the [Channel] interface.
func (c IOChannel) Close() error { return c.c.Close() }
