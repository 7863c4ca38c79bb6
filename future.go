// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package wirecall

import (
	"fmt"
	"sync"
)

// A PendingCall is the opaque caller-visible handle for an in-flight call
// that expects a result. Its concrete type is chosen by the transport that
// shipped the call; the transports in this module return a *Future.
type PendingCall any

// A Future is a resolve-once handle for an in-flight call. The transport
// that created it resolves it with the decoded result when the matching
// response packet is dispatched, or fails it if the transport shuts down
// with the call still outstanding. A future for a call whose response never
// arrives, on a transport that never fails, remains unresolved forever.
type Future struct {
	done chan struct{}
	once sync.Once
	val  any
	err  error
}

// NewFuture returns a new unresolved future.
func NewFuture() *Future { return &Future{done: make(chan struct{})} }

// Resolve delivers the call's result. Only the first Resolve or Fail on a
// future takes effect; later deliveries are silently discarded.
func (f *Future) Resolve(v any) {
	f.once.Do(func() { f.val = v; close(f.done) })
}

// Fail resolves the future with an error instead of a result.
func (f *Future) Fail(err error) {
	f.once.Do(func() { f.err = err; close(f.done) })
}

// Ready reports whether the future has resolved, without blocking.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the future resolves.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the future resolves, then returns its untyped result or
// the error it failed with.
func (f *Future) Wait() (any, error) { <-f.done; return f.val, f.err }

// Await blocks until the pending call resolves and returns its result as an
// R. It reports an error if the handle is not a *Future, if the call failed,
// or if the result does not have type R (which means the two endpoints were
// built against diverging method declarations).
func Await[R any](pc PendingCall) (R, error) {
	var zero R
	f, ok := pc.(*Future)
	if !ok {
		return zero, fmt.Errorf("pending call has type %T, not *Future", pc)
	}
	v, err := f.Wait()
	if err != nil {
		return zero, err
	}
	r, ok := v.(R)
	if !ok {
		return zero, fmt.Errorf("call resolved to %T, want %T", v, zero)
	}
	return r, nil
}

// A PendingSet tracks the unresolved calls of one transport, keyed by call
// ID. It is safe for concurrent use, and the zero value is ready to use.
// Entries are created by Add when a call is sent and removed when they are
// completed or dropped; the set has no expiry of its own, so a transport
// that wants timeouts must Drop entries itself.
type PendingSet struct {
	μ     sync.Mutex
	calls map[uint32]*Future
}

// Add records a new pending entry for id and returns its future.
func (s *PendingSet) Add(id uint32) *Future {
	f := NewFuture()
	s.μ.Lock()
	defer s.μ.Unlock()
	if s.calls == nil {
		s.calls = make(map[uint32]*Future)
	}
	s.calls[id] = f
	return f
}

// Complete resolves and removes the entry for id, and reports whether such
// an entry existed. Completing an unknown or already-resolved id is a no-op:
// stale and duplicate responses are indistinguishable and both are dropped.
func (s *PendingSet) Complete(id uint32, v any) bool {
	s.μ.Lock()
	f, ok := s.calls[id]
	delete(s.calls, id)
	s.μ.Unlock()
	if ok {
		f.Resolve(v)
	}
	return ok
}

// Drop abandons the entry for id without resolving it, and reports whether
// such an entry existed. A response arriving for a dropped id is thereafter
// treated as unknown and discarded. This is the cancellation primitive for
// transports that want one; its future never resolves.
func (s *PendingSet) Drop(id uint32) bool {
	s.μ.Lock()
	defer s.μ.Unlock()
	_, ok := s.calls[id]
	delete(s.calls, id)
	return ok
}

// FailAll fails every unresolved entry with err, removes them, and reports
// how many there were. Transports call this when they shut down with calls
// still in flight.
func (s *PendingSet) FailAll(err error) int {
	s.μ.Lock()
	calls := s.calls
	s.calls = nil
	s.μ.Unlock()

	for _, f := range calls {
		f.Fail(err)
	}
	return len(calls)
}

// Len reports the number of unresolved entries.
func (s *PendingSet) Len() int {
	s.μ.Lock()
	defer s.μ.Unlock()
	return len(s.calls)
}
