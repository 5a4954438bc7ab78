// Package natural implements Natural, an immutable non-negative integer with no
// upper bound.
//
// A Natural is held in the smallest of three backing widths: a machine word
// (uint64), a 256-bit fixed-width integer, or an arbitrary-precision
// *big.Int. Arithmetic that overflows one width silently promotes to the next,
// and results are always normalized back down to the smallest width that can
// hold them. Consequently two Naturals denoting the same number always have the
// same backing width, and Equal, Cmp and Hash never depend on how a value was
// computed.
//
// The zero value of Natural is Zero.
package natural

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"

	"github.com/holiman/uint256"

	"src.persist.sh/pkg/hash"
)

// Width identifies the backing representation of a Natural.
type Width uint8

// Possible values for Width.
const (
	// NoWidth is the width of Zero, which has no backing magnitude.
	NoWidth Width = iota
	// Word is a uint64 magnitude.
	Word
	// Wide is a 256-bit magnitude, used for values above math.MaxUint64.
	Wide
	// Big is an arbitrary-precision magnitude, used for values of 2^256 and
	// above.
	Big
)

var widthNames = [...]string{"none", "word", "wide", "big"}

func (w Width) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return "Width(" + strconv.Itoa(int(w)) + ")"
}

// Natural is a non-negative integer. It is a value type; all operations return
// new values.
type Natural struct {
	width Width
	word  uint64
	wide  uint256.Int
	big   *big.Int
}

// Zero returns the Natural 0.
func Zero() Natural { return Natural{} }

// One returns the Natural 1.
func One() Natural { return Natural{width: Word, word: 1} }

// FromUint64 returns the Natural with the value u.
func FromUint64(u uint64) Natural {
	if u == 0 {
		return Natural{}
	}
	return Natural{width: Word, word: u}
}

// FromInt returns the absolute value of v as a Natural. It never fails.
func FromInt(v int64) Natural {
	if v < 0 {
		// -(v+1) cannot overflow, even for math.MinInt64.
		return FromUint64(uint64(-(v + 1)) + 1)
	}
	return FromUint64(uint64(v))
}

// Of returns v as a Natural, and whether v is non-negative. When v is negative
// the returned Natural is Zero and must not be used.
func Of(v int64) (Natural, bool) {
	if v < 0 {
		return Natural{}, false
	}
	return FromUint64(uint64(v)), true
}

// ClampZero returns v as a Natural, or Zero if v is negative.
func ClampZero(v int64) Natural {
	if v < 0 {
		return Natural{}
	}
	return FromUint64(uint64(v))
}

// ClampOne returns v as a Natural, or One if v is less than 1. The result is
// never Zero.
func ClampOne(v int64) Natural {
	if v < 1 {
		return One()
	}
	return FromUint64(uint64(v))
}

// FromBigInt returns the absolute value of b as a Natural. The argument is
// not retained.
func FromBigInt(b *big.Int) Natural {
	if b.Sign() < 0 {
		return fromNonNegativeBig(new(big.Int).Abs(b))
	}
	return fromNonNegativeBig(b)
}

// OfBigInt returns b as a Natural, and whether b is non-negative.
func OfBigInt(b *big.Int) (Natural, bool) {
	if b.Sign() < 0 {
		return Natural{}, false
	}
	return fromNonNegativeBig(b), true
}

func fromNonNegativeBig(b *big.Int) Natural {
	switch n := b.BitLen(); {
	case n <= 64:
		return FromUint64(b.Uint64())
	case n <= 256:
		var w uint256.Int
		w.SetFromBig(b)
		return Natural{width: Wide, wide: w}
	default:
		return Natural{width: Big, big: new(big.Int).Set(b)}
	}
}

func fromWide(w *uint256.Int) Natural {
	if w.IsUint64() {
		return FromUint64(w.Uint64())
	}
	return Natural{width: Wide, wide: *w}
}

// Width returns the backing width of n.
func (n Natural) Width() Width { return n.width }

// IsZero reports whether n is Zero.
func (n Natural) IsZero() bool { return n.width == NoWidth }

// asWide returns n widened to 256 bits. It must not be called on Big values.
func (n Natural) asWide() uint256.Int {
	if n.width == Wide {
		return n.wide
	}
	var w uint256.Int
	w.SetUint64(n.word)
	return w
}

// BigInt returns n as a newly allocated *big.Int.
func (n Natural) BigInt() *big.Int {
	switch n.width {
	case NoWidth:
		return new(big.Int)
	case Word:
		return new(big.Int).SetUint64(n.word)
	case Wide:
		return n.wide.ToBig()
	default:
		return new(big.Int).Set(n.big)
	}
}

// Plus returns n + m. It never overflows.
func (n Natural) Plus(m Natural) Natural {
	switch {
	case n.width == NoWidth:
		return m
	case m.width == NoWidth:
		return n
	case n.width == Word && m.width == Word:
		sum, carry := bits.Add64(n.word, m.word, 0)
		if carry == 0 {
			return Natural{width: Word, word: sum}
		}
		var w uint256.Int
		w[0], w[1] = sum, carry
		return Natural{width: Wide, wide: w}
	case n.width != Big && m.width != Big:
		x, y := n.asWide(), m.asWide()
		var z uint256.Int
		if _, overflow := z.AddOverflow(&x, &y); !overflow {
			return Natural{width: Wide, wide: z}
		}
	}
	return fromNonNegativeBig(new(big.Int).Add(n.BigInt(), m.BigInt()))
}

// Minus returns n - m, and whether the result is non-negative. When m is
// greater than n the returned Natural is Zero and must not be used.
func (n Natural) Minus(m Natural) (Natural, bool) {
	switch c := n.Cmp(m); {
	case c < 0:
		return Natural{}, false
	case c == 0:
		return Natural{}, true
	}
	switch {
	case m.width == NoWidth:
		return n, true
	case n.width == Word:
		return FromUint64(n.word - m.word), true
	case n.width == Wide:
		x, y := n.wide, m.asWide()
		var z uint256.Int
		z.Sub(&x, &y)
		return fromWide(&z), true
	}
	return fromNonNegativeBig(new(big.Int).Sub(n.BigInt(), m.BigInt())), true
}

// Inc returns n + 1.
func (n Natural) Inc() Natural { return n.Plus(One()) }

// Dec returns n - 1, and false if n is Zero.
func (n Natural) Dec() (Natural, bool) { return n.Minus(One()) }

// Cmp compares n and m and returns -1, 0 or +1.
func (n Natural) Cmp(m Natural) int {
	// Values are always held in their smallest width, so a wider value is
	// always a larger one.
	if n.width != m.width {
		if n.width < m.width {
			return -1
		}
		return 1
	}
	switch n.width {
	case Word:
		switch {
		case n.word < m.word:
			return -1
		case n.word > m.word:
			return 1
		}
		return 0
	case Wide:
		return n.wide.Cmp(&m.wide)
	case Big:
		return n.big.Cmp(m.big)
	}
	return 0
}

// Less reports whether n < m.
func (n Natural) Less(m Natural) bool { return n.Cmp(m) < 0 }

// Equal reports whether n and m denote the same number.
func (n Natural) Equal(m Natural) bool { return n.Cmp(m) == 0 }

// Hash returns a 32-bit hash of n. Equal Naturals have equal hashes.
func (n Natural) Hash() uint32 {
	switch n.width {
	case NoWidth:
		return 0
	case Word:
		return hash.UInt64(n.word)
	case Wide:
		return hash.DJB(hash.UInt64(n.wide[0]), hash.UInt64(n.wide[1]),
			hash.UInt64(n.wide[2]), hash.UInt64(n.wide[3]))
	}
	acc := hash.DJBInit
	for _, w := range n.big.Bits() {
		acc = hash.DJBCombine(acc, hash.UIntPtr(uintptr(w)))
	}
	return acc
}

// IsUint64 reports whether n fits in a uint64.
func (n Natural) IsUint64() bool { return n.width <= Word }

// Uint64 returns the low 64 bits of n, following Go's conversion semantics for
// values that do not fit.
func (n Natural) Uint64() uint64 {
	switch n.width {
	case Word:
		return n.word
	case Wide:
		return n.wide[0]
	case Big:
		return n.big.Uint64()
	}
	return 0
}

// Int64 returns n converted to int64, following Go's conversion semantics for
// values that do not fit.
func (n Natural) Int64() int64 { return int64(n.Uint64()) }

// Int returns n converted to int, following Go's conversion semantics for
// values that do not fit.
func (n Natural) Int() int { return int(n.Uint64()) }

// Float64 returns the float64 nearest to n. Values too large for float64 yield
// +Inf.
func (n Natural) Float64() float64 {
	switch n.width {
	case NoWidth:
		return 0
	case Word:
		return float64(n.word)
	}
	f, _ := new(big.Float).SetInt(n.BigInt()).Float64()
	return f
}

// String returns n in decimal.
func (n Natural) String() string {
	switch n.width {
	case NoWidth:
		return "0"
	case Word:
		return strconv.FormatUint(n.word, 10)
	case Wide:
		return n.wide.Dec()
	}
	return n.big.String()
}

// GoString distinguishes Zero from NonZero values.
func (n Natural) GoString() string {
	if n.width == NoWidth {
		return "Zero{}"
	}
	return fmt.Sprintf("NonZero{value=%s}", n)
}

// MarshalText encodes n in decimal.
func (n Natural) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// MarshalJSON encodes n as a JSON number.
func (n Natural) MarshalJSON() ([]byte, error) { return []byte(n.String()), nil }

// Sum adds all of ns.
func Sum(ns ...Natural) Natural {
	var acc Natural
	for _, n := range ns {
		acc = acc.Plus(n)
	}
	return acc
}
