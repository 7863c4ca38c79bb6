// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Package catalog maps mnemonic string names to the positional function IDs
// of a wirecall endpoint.
//
// Function IDs are a positional contract: they exist only as declaration
// order, and any disagreement in that order between two endpoints corrupts
// every call silently. Names are never exchanged on the wire, but keeping a
// catalog alongside an interface declaration gives that order a checkable
// shape: IDs are assigned deterministically from the sequence of Add calls,
// so two independently constructed catalogs agree exactly when their name
// sequences agree, and Fingerprint gives a cheap digest to compare before
// trusting the positional contract.
//
// # Usage
//
// Construct a catalog naming the methods in declaration order:
//
//	cat := catalog.New().Add("addAccount", "notify", "square")
//
// To recover an assigned ID use the ID method:
//
//	id, ok := cat.ID("square")
//
// Use Check to confirm the catalog covers every method declared on an
// endpoint, and Fingerprint to compare declaration order across processes.
package catalog

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/tessellate-io/wirecall"
)

// A Catalog is an ordered assignment of names to function IDs. The zero
// value is empty and ready for use.
type Catalog struct {
	names []string
	ids   map[string]uint16
}

// New constructs a new empty catalog.
func New() *Catalog { return new(Catalog) }

// Add assigns the next unused function IDs to the given names in order, and
// returns c to permit chaining. Add panics if a name is empty or already
// present.
func (c *Catalog) Add(names ...string) *Catalog {
	for _, name := range names {
		if name == "" {
			panic("catalog: empty method name")
		}
		if _, ok := c.ids[name]; ok {
			panic(fmt.Sprintf("catalog: duplicate method name %q", name))
		}
		if c.ids == nil {
			c.ids = make(map[string]uint16)
		}
		c.ids[name] = uint16(len(c.names))
		c.names = append(c.names, name)
	}
	return c
}

// ID reports the function ID assigned to name, if it is present.
func (c *Catalog) ID(name string) (uint16, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// Name reports the name assigned to function ID id, if any.
func (c *Catalog) Name(id uint16) (string, bool) {
	if int(id) >= len(c.names) {
		return "", false
	}
	return c.names[id], true
}

// Len reports the number of names in the catalog.
func (c *Catalog) Len() int { return len(c.names) }

// Check reports an error unless the catalog names exactly as many methods as
// are declared on ep. It cannot detect two endpoints that declare the same
// number of methods in different orders; compare Fingerprints for that.
func (c *Catalog) Check(ep *wirecall.Endpoint) error {
	if c.Len() != ep.NumCalls() {
		return fmt.Errorf("catalog names %d methods, endpoint declares %d", c.Len(), ep.NumCalls())
	}
	return nil
}

// Fingerprint returns a hex digest of the catalog's name sequence. Two
// catalogs have equal fingerprints exactly when they assigned the same names
// to the same IDs, so endpoints can exchange fingerprints out of band to
// verify their declaration orders agree.
func (c *Catalog) Fingerprint() string {
	h := sha256.New()
	var n [4]byte
	for _, name := range c.names {
		binary.BigEndian.PutUint32(n[:], uint32(len(name)))
		h.Write(n[:])
		h.Write([]byte(name))
	}
	return hex.EncodeToString(h.Sum(nil))
}
