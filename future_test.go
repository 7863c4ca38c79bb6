// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package wirecall_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/tessellate-io/wirecall"
)

func TestFuture(t *testing.T) {
	t.Run("ResolveOnce", func(t *testing.T) {
		f := wirecall.NewFuture()
		if f.Ready() {
			t.Error("new future is ready")
		}
		f.Resolve(25)
		f.Resolve(99)                   // discarded
		f.Fail(errors.New("discarded")) // discarded
		v, err := f.Wait()
		if err != nil {
			t.Errorf("Wait: unexpected error: %v", err)
		}
		if v != 25 {
			t.Errorf("Wait: got %v, want 25", v)
		}
		select {
		case <-f.Done():
		default:
			t.Error("Done channel is not closed")
		}
	})

	t.Run("Fail", func(t *testing.T) {
		f := wirecall.NewFuture()
		f.Fail(errors.New("broken pipe"))
		if _, err := wirecall.Await[int](f); err == nil || !strings.Contains(err.Error(), "broken pipe") {
			t.Errorf("Await: got error %v, want broken pipe", err)
		}
	})

	t.Run("AwaitWrongType", func(t *testing.T) {
		f := wirecall.NewFuture()
		f.Resolve("not a number")
		if v, err := wirecall.Await[int](f); err == nil {
			t.Errorf("Await: got %v, want type error", v)
		}
	})

	t.Run("AwaitNotAFuture", func(t *testing.T) {
		if v, err := wirecall.Await[int]("bogus"); err == nil {
			t.Errorf("Await: got %v, want handle error", v)
		}
	})
}

func TestPendingSet(t *testing.T) {
	var s wirecall.PendingSet

	f1 := s.Add(1)
	f2 := s.Add(2)
	f3 := s.Add(3)
	if n := s.Len(); n != 3 {
		t.Errorf("Len: got %d, want 3", n)
	}

	if !s.Complete(2, "two") {
		t.Error("Complete(2) reported no entry")
	}
	if v, err := f2.Wait(); err != nil || v != "two" {
		t.Errorf("f2: got %v, %v; want \"two\", nil", v, err)
	}
	if s.Complete(2, "again") {
		t.Error("Complete(2) twice reported an entry")
	}
	if s.Complete(42, "never") {
		t.Error("Complete(42) reported an entry")
	}

	// A dropped entry is forgotten; a late completion is a no-op and its
	// future stays unresolved.
	if !s.Drop(3) {
		t.Error("Drop(3) reported no entry")
	}
	if s.Complete(3, "late") {
		t.Error("Complete(3) after Drop reported an entry")
	}
	if f3.Ready() {
		t.Error("f3 resolved after Drop")
	}

	if n := s.FailAll(errors.New("shutdown")); n != 1 {
		t.Errorf("FailAll: got %d entries, want 1", n)
	}
	if _, err := f1.Wait(); err == nil {
		t.Error("f1 did not fail on FailAll")
	}
	if n := s.Len(); n != 0 {
		t.Errorf("Len after FailAll: got %d, want 0", n)
	}
}
