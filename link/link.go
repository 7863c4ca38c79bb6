// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package link runs an endpoint over a packet channel.
//
// A Link is the asynchronous transport of this module: it ships outbound
// packets over a [channel.Channel] and pumps received packets into its
// endpoint from a service goroutine, one at a time in receipt order. The
// link supplies the synchronization the wirecall core leaves to its driver:
// dispatch and handler execution are serialized under the link's lock.
//
// A handler must not block waiting on a nested call issued over the same
// link; dispatch is strictly serial, so the response it is waiting for could
// never be dispatched.
package link

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/creachadair/taskgroup"
	"github.com/tessellate-io/wirecall"
	"github.com/tessellate-io/wirecall/channel"
)

// A Link pumps packets between an endpoint and a channel. An unstarted link
// can be passed to wirecall.NewEndpoint as its transport; call Start with
// the finished endpoint and a channel to begin service.
//
// The link runs until Stop is called, the channel closes, or receiving
// fails. Stopping the link fails any calls still awaiting responses.
type Link struct {
	pending wirecall.PendingSet

	out struct {
		// Must hold the lock to send to or set ch.
		sync.Mutex
		ch channel.Channel
	}

	μ sync.Mutex // guards the fields below, and serializes dispatch

	ep    *wirecall.Endpoint
	tasks *taskgroup.Group
	err   error       // terminal channel error
	onErr func(error) // per-packet dispatch error callback
}

// New constructs a new unstarted link.
func New() *Link { return new(Link) }

// OnError registers a callback invoked for each packet whose dispatch fails.
// Such failures are local to one packet and do not stop the pump. Passing
// nil removes the callback; by default failed packets are dropped silently.
// OnError returns l to permit chaining.
func (l *Link) OnError(f func(error)) *Link {
	l.μ.Lock()
	defer l.μ.Unlock()
	l.onErr = f
	return l
}

// Start begins servicing ch on behalf of ep, whose transport must be l.
// Received packets are dispatched into ep in receipt order. Start does not
// block; call Wait to wait for the link to exit and report its status.
func (l *Link) Start(ep *wirecall.Endpoint, ch channel.Channel) *Link {
	l.μ.Lock()
	if l.tasks != nil {
		l.μ.Unlock()
		panic("link is already started")
	}
	g := taskgroup.New(nil)
	l.ep = ep
	l.tasks = g
	l.err = nil
	l.μ.Unlock()

	l.out.Lock()
	l.out.ch = ch
	l.out.Unlock()

	g.Go(func() error {
		for {
			pkt, err := ch.Recv()
			if err != nil {
				l.fail(err)
				return nil
			}
			l.dispatch(pkt)
		}
	})
	return l
}

// dispatch feeds one packet to the endpoint under the link's lock. A panic
// out of a handler is contained and reported like any other per-packet
// failure.
func (l *Link) dispatch(pkt *wirecall.Packet) {
	l.μ.Lock()
	defer l.μ.Unlock()

	err := func() (err error) {
		defer func() {
			if x := recover(); x != nil && err == nil {
				err = fmt.Errorf("handler panicked (recovered): %v", x)
			}
		}()
		return l.ep.Dispatch(pkt)
	}()
	if err != nil && l.onErr != nil {
		l.onErr(err)
	}
}

// Send implements a method of the [wirecall.Transport] interface.
func (l *Link) Send(pkt *wirecall.Packet) error {
	l.out.Lock()
	defer l.out.Unlock()
	if l.out.ch == nil {
		return errors.New("link is not started")
	}
	return l.out.ch.Send(pkt)
}

// SendCall implements a method of the [wirecall.Transport] interface.
// The returned handle is a *wirecall.Future.
func (l *Link) SendCall(pkt *wirecall.Packet) (wirecall.PendingCall, error) {
	f := l.pending.Add(pkt.CallID)
	if err := l.Send(pkt); err != nil {
		l.pending.Drop(pkt.CallID)
		return nil, err
	}
	return f, nil
}

// Complete implements a method of the [wirecall.Transport] interface.
func (l *Link) Complete(id uint32, result any) { l.pending.Complete(id, result) }

// Pending reports the number of calls sent through l that are still awaiting
// a response.
func (l *Link) Pending() int { return l.pending.Len() }

// Stop closes the channel and terminates the link. It blocks until the pump
// has exited and returns its status. After Stop completes it is safe to
// restart the link with a new channel.
func (l *Link) Stop() error { l.closeOut(); return l.Wait() }

// Wait blocks until l terminates and reports the error that caused it to
// stop. If l is not running, or stopped because its channel closed, Wait
// returns nil.
func (l *Link) Wait() error {
	l.μ.Lock()
	t := l.tasks
	l.μ.Unlock()
	if t == nil {
		return nil // the link is not running
	}
	t.Wait()

	l.μ.Lock()
	defer l.μ.Unlock()
	l.tasks = nil
	l.ep = nil
	if treatErrorAsSuccess(l.err) {
		return nil
	}
	return l.err
}

// fail records the terminal error, closes the channel, and fails all calls
// still awaiting responses.
func (l *Link) fail(err error) {
	l.closeOut()

	l.μ.Lock()
	l.err = err
	l.μ.Unlock()

	l.pending.FailAll(fmt.Errorf("call terminated: %w", err))
}

func (l *Link) closeOut() {
	l.out.Lock()
	defer l.out.Unlock()
	if l.out.ch != nil {
		l.out.ch.Close()
		l.out.ch = nil
	}
}

func treatErrorAsSuccess(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
