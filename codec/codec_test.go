// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tessellate-io/wirecall"
	"github.com/tessellate-io/wirecall/codec"
)

type record struct {
	ID    int
	Name  string
	Money float64
	Tags  []string
}

func TestRoundTrip(t *testing.T) {
	codecs := map[string]wirecall.Codec{
		"JSON": codec.JSON{},
		"Gob":  codec.Gob{},
	}
	want := record{ID: 1, Name: "Eddart", Money: 1000.1, Tags: []string{"a", "b"}}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			data, err := c.Encode(want)
			if err != nil {
				t.Fatalf("Encode: unexpected error: %v", err)
			}
			var got record
			if err := c.Decode(data, &got); err != nil {
				t.Fatalf("Decode: unexpected error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Round trip (-want, +got):\n%s", diff)
			}

			// Scalars round-trip too; methods often take a bare int or string.
			data, err = c.Encode(25)
			if err != nil {
				t.Fatalf("Encode scalar: unexpected error: %v", err)
			}
			var n int
			if err := c.Decode(data, &n); err != nil {
				t.Fatalf("Decode scalar: unexpected error: %v", err)
			}
			if n != 25 {
				t.Errorf("Scalar: got %d, want 25", n)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	var v record
	if err := (codec.JSON{}).Decode([]byte("{"), &v); err == nil {
		t.Error("JSON Decode of garbage did not report an error")
	}
	if err := (codec.Gob{}).Decode([]byte("\x01\x02"), &v); err == nil {
		t.Error("Gob Decode of garbage did not report an error")
	}
}
