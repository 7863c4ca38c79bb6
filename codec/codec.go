// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package codec provides implementations of the wirecall.Codec interface.
//
// Both endpoints of a conversation must use the same codec, and the codec
// must round-trip every argument record and result type declared on the
// interface. JSON is convenient for debugging and cross-language work; Gob
// is a compact binary choice for Go-to-Go traffic.
package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

// JSON encodes payloads with encoding/json.
type JSON struct{}

// Encode implements a method of the [wirecall.Codec] interface.
func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

// Decode implements a method of the [wirecall.Codec] interface.
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// Gob encodes payloads with encoding/gob. Each payload is a self-contained
// gob stream, so packets remain independently decodable.
type Gob struct{}

// Encode implements a method of the [wirecall.Codec] interface.
func (Gob) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode implements a method of the [wirecall.Codec] interface.
func (Gob) Decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
