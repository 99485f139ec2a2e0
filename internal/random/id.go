// Package random supplies the 16-bit query identifiers the resolver uses
// to correlate a query with its reply. It is the only piece of
// process-wide state the resolver depends on (spec.md §5); everything
// else is passed explicitly, and so is this, via the IDSource seam below.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// IDSource produces transaction identifiers. Swapping it for a fixed
// source is what makes resolve.Engine.Resolve deterministic in tests
// (spec.md §8, "Given identical inputs, resolve is deterministic aside
// from the random id").
type IDSource interface {
	Next() uint16
}

// CryptoSource draws ids from crypto/rand. Unlike math/rand, its output
// can't be predicted by an off-path attacker racing to spoof a reply —
// the same reasoning the teacher's internal/random package documents for
// its own TransactionID function, which this adapts.
type CryptoSource struct{}

// Next returns a cryptographically random value in [0, 65535].
func (CryptoSource) Next() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("random: crypto/rand failed: %v", err))
	}
	return binary.BigEndian.Uint16(buf[:])
}

// Fixed always returns the same value. Used by tests that need a
// deterministic id, e.g. to reproduce spec.md §8's "id generator fixed to
// 731" scenario.
type Fixed uint16

// Next returns the fixed value.
func (f Fixed) Next() uint16 { return uint16(f) }

// Sequence returns successive values from a fixed slice, looping once
// exhausted. Useful for tests that drive a multi-step referral walk and
// want each hop to have a distinguishable, predictable id.
type Sequence struct {
	values []uint16
	pos    int
}

// NewSequence builds a Sequence over values. Passing no values panics at
// first use, since a zero-length sequence has nothing to return.
func NewSequence(values ...uint16) *Sequence {
	return &Sequence{values: values}
}

// Next returns the next value in the sequence, wrapping around.
func (s *Sequence) Next() uint16 {
	if len(s.values) == 0 {
		panic("random: empty Sequence")
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
