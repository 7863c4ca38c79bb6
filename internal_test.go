package wirecall

import "testing"

func TestCallIDSequence(t *testing.T) {
	e := &Endpoint{Identity: StaticID(0)}
	for want := uint32(1); want <= 5; want++ {
		if got := e.NextCallID(); got != want {
			t.Errorf("NextCallID: got %d, want %d", got, want)
		}
	}
}

func TestRegisterTables(t *testing.T) {
	e := &Endpoint{Identity: StaticID(0), results: make(map[uint16]dispatcher)}
	nop := func(*Packet) error { return nil }

	if id := e.register(nop, nil); id != 0 {
		t.Errorf("register proc: got ID %d, want 0", id)
	}
	if id := e.register(nop, nop); id != 1 {
		t.Errorf("register call: got ID %d, want 1", id)
	}
	if _, ok := e.results[0]; ok {
		t.Error("proc has a response path registered")
	}
	if _, ok := e.results[1]; !ok {
		t.Error("call has no response path registered")
	}
}

func TestPacketString(t *testing.T) {
	tests := []struct {
		pkt  *Packet
		want string
	}{
		{&Packet{Type: TypeCall, InstanceID: 1, FunctionID: 2, CallID: 3, Payload: []byte("xy")},
			"Packet(CALL, instance=1, function=2, call=3, 2 bytes)"},
		{&Packet{Type: TypeResponse, CallID: 9},
			"Packet(RESPONSE, instance=0, function=0, call=9, empty)"},
		{&Packet{Type: CallType(250)},
			"Packet(TYPE:250, instance=0, function=0, call=0, empty)"},
	}
	for _, tc := range tests {
		if got := tc.pkt.String(); got != tc.want {
			t.Errorf("String: got %q, want %q", got, tc.want)
		}
	}
}
