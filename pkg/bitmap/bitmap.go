// Package bitmap implements Bitmap32, the 32-slot occupancy map of one level
// of a hash trie.
package bitmap

import (
	"math/bits"
	"strings"

	"src.persist.sh/pkg/hash"
)

// Size is the number of bits in a Bitmap32.
const Size = 32

// Bitmap32 is a set of bit positions 0 through 31. It is a value type; every
// operation returns a new Bitmap32.
type Bitmap32 uint32

// Bit is a binary digit accepted by FromBits.
type Bit uint8

// Possible values for Bit.
const (
	Zero Bit = 0
	One  Bit = 1
)

// Empty returns the Bitmap32 with no bits set.
func Empty() Bitmap32 { return 0 }

// Full returns the Bitmap32 with all 32 bits set.
func Full() Bitmap32 { return ^Bitmap32(0) }

// FromBits builds a Bitmap32 from digits given most-significant first. It
// returns false if more than 32 digits are given, rather than dropping the
// leading ones, or if a digit is neither Zero nor One.
func FromBits(digits ...Bit) (Bitmap32, bool) {
	if len(digits) > Size {
		return 0, false
	}
	var b Bitmap32
	for _, d := range digits {
		if d > One {
			return 0, false
		}
		b = b<<1 | Bitmap32(d)
	}
	return b, true
}

// PopulatedAtIndex reports whether bit i is set. The index must be in [0, 31].
func (b Bitmap32) PopulatedAtIndex(i uint) bool {
	return b&(1<<i) != 0
}

// PopulateAtIndex returns b with bit i set.
func (b Bitmap32) PopulateAtIndex(i uint) Bitmap32 {
	return b | 1<<i
}

// EvictAtIndex returns b with bit i cleared.
func (b Bitmap32) EvictAtIndex(i uint) Bitmap32 {
	return b &^ (1 << i)
}

// LowerBits returns b with only the bits strictly below index i kept. Indices
// past 32 keep every bit; negative indices keep none.
func (b Bitmap32) LowerBits(i int) Bitmap32 {
	switch {
	case i <= 0:
		return 0
	case i >= Size:
		return b
	}
	return b & (1<<uint(i) - 1)
}

// PopulationCount returns the number of set bits.
func (b Bitmap32) PopulationCount() int {
	return bits.OnesCount32(uint32(b))
}

// And returns the intersection of b and other.
func (b Bitmap32) And(other Bitmap32) Bitmap32 {
	return b & other
}

// SignedShiftR shifts b right by n, propagating bit 31.
func (b Bitmap32) SignedShiftR(n uint) Bitmap32 {
	return Bitmap32(int32(b) >> n)
}

// Uint32 returns the bits of b.
func (b Bitmap32) Uint32() uint32 { return uint32(b) }

// Bits returns the bits of b as a signed integer.
func (b Bitmap32) Bits() int32 { return int32(b) }

// Hash returns a hash of b.
func (b Bitmap32) Hash() uint32 { return hash.UInt32(uint32(b)) }

// groups is the rendering layout: two leading bits followed by six groups of
// five, the widths of the trie levels from the top down.
var groups = [...]int{2, 5, 5, 5, 5, 5, 5}

// String renders b most-significant bit first in the form
// 0b00_00000_00000_00000_00000_00000_00000.
func (b Bitmap32) String() string {
	var sb strings.Builder
	sb.Grow(2 + Size + len(groups) - 1)
	sb.WriteString("0b")
	pos := Size - 1
	for gi, width := range groups {
		if gi > 0 {
			sb.WriteByte('_')
		}
		for j := 0; j < width; j++ {
			if b.PopulatedAtIndex(uint(pos)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
			pos--
		}
	}
	return sb.String()
}
