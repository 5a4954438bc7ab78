// Package hash contains hashing algorithms for the keys of hash tries, and
// some common hash functions they are built from.
package hash

import (
	"hash/maphash"
	"math"
	"reflect"
	"unsafe"
)

const DJBInit uint32 = 5381

func DJBCombine(acc, h uint32) uint32 {
	return mul33(acc) + h
}

func DJB(hs ...uint32) uint32 {
	acc := DJBInit
	for _, h := range hs {
		acc = DJBCombine(acc, h)
	}
	return acc
}

func UInt32(u uint32) uint32 {
	return u
}

func UInt64(u uint64) uint32 {
	return mul33(uint32(u>>32)) + uint32(u&0xffffffff)
}

func Pointer(p unsafe.Pointer) uint32 {
	return UIntPtr(uintptr(p))
}

func UIntPtr(p uintptr) uint32 {
	switch unsafe.Sizeof(p) {
	case 4:
		return UInt32(uint32(p))
	case 8:
		return UInt64(uint64(p))
	default:
		panic("unhandled pointer size")
	}
}

func String(s string) uint32 {
	h := DJBInit
	for i := 0; i < len(s); i++ {
		h = DJBCombine(h, uint32(s[i]))
	}
	return h
}

func mul33(u uint32) uint32 {
	return u<<5 + u
}

// Algorithm computes the 32-bit hash of a key. Keys that are equivalent under
// the relation a trie is built with must have equal hashes.
type Algorithm[T any] func(T) uint32

// Hasher is a value with a 32-bit hash code. Default uses it when a key
// implements it.
type Hasher interface {
	// Hash returns the hash of the value. Values that are equal must have the
	// same hash.
	Hash() uint32
}

// Default returns the algorithm consistent with equiv.Default: Hasher values
// hash themselves, strings use DJB, integers use their bits, and other
// comparable values are hashed with hash/maphash under a per-process seed.
// Floats hash by value, so -0 and +0 hash alike, and so do all NaNs. Values
// that are not comparable, including comparable types holding incomparable
// values, all hash to 0.
func Default[T any]() Algorithm[T] {
	return Any[T]
}

var seed = maphash.MakeSeed()

// Any hashes v as described in Default.
func Any[T any](v T) uint32 {
	switch v := any(v).(type) {
	case nil:
		return 0
	case Hasher:
		return v.Hash()
	case string:
		return String(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return UInt64(uint64(v))
	case int8:
		return UInt32(uint32(v))
	case int16:
		return UInt32(uint32(v))
	case int32:
		return UInt32(uint32(v))
	case int64:
		return UInt64(uint64(v))
	case uint:
		return UInt64(uint64(v))
	case uint8:
		return UInt32(uint32(v))
	case uint16:
		return UInt32(uint32(v))
	case uint32:
		return UInt32(v)
	case uint64:
		return UInt64(v)
	case uintptr:
		return UIntPtr(v)
	case float64:
		return float64Hash(v)
	case float32:
		return float64Hash(float64(v))
	}
	if !reflect.TypeOf(v).Comparable() {
		return 0
	}
	return comparableHash(v)
}

func float64Hash(f float64) uint32 {
	switch {
	case f == 0:
		f = 0
	case math.IsNaN(f):
		f = math.NaN()
	}
	return UInt64(math.Float64bits(f))
}

// comparableHash hashes v with maphash, or returns 0 if v holds an incomparable
// value.
func comparableHash(v any) (h uint32) {
	defer func() {
		if recover() != nil {
			h = 0
		}
	}()
	return UInt64(maphash.Comparable(seed, v))
}

// Stubbed returns an algorithm that hashes the keys in stubs to the given
// constants and everything else with fallback. It is mostly useful for
// constructing hash collisions on purpose.
func Stubbed[T comparable](stubs map[T]uint32, fallback Algorithm[T]) Algorithm[T] {
	own := make(map[T]uint32, len(stubs))
	for k, h := range stubs {
		own[k] = h
	}
	return func(v T) uint32 {
		if h, ok := own[v]; ok {
			return h
		}
		return fallback(v)
	}
}

// By hashes a T by hashing the projection f(T) with alg. It is the
// counterpart of equiv.By.
func By[T, U any](f func(T) U, alg Algorithm[U]) Algorithm[T] {
	return func(v T) uint32 { return alg(f(v)) }
}
