// Package hashmap implements Map, a persistent hash map built on a hash array
// mapped trie.
package hashmap

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"src.persist.sh/pkg/equiv"
	"src.persist.sh/pkg/hamt"
	"src.persist.sh/pkg/hash"
	"src.persist.sh/pkg/hashset"
	"src.persist.sh/pkg/natural"
)

// Map is a persistent associative data structure mapping keys to values. It
// is immutable, and supports near-O(1) operations to create modified version of
// the map that shares the underlying data structure. Because it is immutable,
// all of its methods are safe for concurrent use.
//
// A Map carries the key equivalence and hashing algorithm it was created with;
// every map derived from it uses the same ones. The zero value is an empty map
// with the default equivalence and hashing, like Empty.
type Map[K, V any] struct {
	root hamt.Node[K, V]
	eq   equiv.Relation[K]
	hash hash.Algorithm[K]
}

// Pair is a key and its associated value.
type Pair[K, V any] = hamt.Pair[K, V]

// Empty returns an empty Map that compares keys with equiv.Default and hashes
// them with hash.Default.
func Empty[K, V any]() Map[K, V] {
	return New[K, V](equiv.Default[K](), hash.Default[K]())
}

// New returns an empty Map that compares keys with eq and hashes them with
// alg. Keys that are equivalent under eq must have the same hash under alg.
// A nil eq or alg means the default one.
func New[K, V any](eq equiv.Relation[K], alg hash.Algorithm[K]) Map[K, V] {
	if eq == nil {
		eq = equiv.Default[K]()
	}
	if alg == nil {
		alg = hash.Default[K]()
	}
	return Map[K, V]{hamt.New[K, V](), eq, alg}
}

// FromGoMap returns a Map holding the pairs of m, using the default key
// equivalence and hashing.
func FromGoMap[K comparable, V any](m map[K]V) Map[K, V] {
	r := Empty[K, V]()
	for k, v := range m {
		r = r.Put(k, v)
	}
	return r
}

// FromSeq returns a Map holding the pairs of seq, using the default key
// equivalence and hashing. Later pairs win over earlier ones with equivalent
// keys.
func FromSeq[K, V any](seq iter.Seq2[K, V]) Map[K, V] {
	return Empty[K, V]().PutAll(seq)
}

// Get returns the value associated with k, and whether there is one.
func (m Map[K, V]) Get(k K) (V, bool) {
	return hamt.Get[K, V](m.trie(), k, m.hashOf(k), m.eq)
}

// Contains reports whether m has a value associated with k.
func (m Map[K, V]) Contains(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Put returns a map in which k is associated with v. An equivalent key
// already in m is replaced by k.
func (m Map[K, V]) Put(k K, v V) Map[K, V] {
	return m.with(hamt.Put(m.trie(), k, v, m.hashOf(k), m.eq))
}

// PutAll returns a map with all the pairs of seq put into m, in order.
func (m Map[K, V]) PutAll(seq iter.Seq2[K, V]) Map[K, V] {
	for k, v := range seq {
		m = m.Put(k, v)
	}
	return m
}

// Remove returns a map in which k is associated with no value. If k is
// not in m, m itself is returned.
func (m Map[K, V]) Remove(k K) Map[K, V] {
	return m.with(hamt.Remove[K, V](m.trie(), k, m.hashOf(k), m.eq))
}

func (m Map[K, V]) with(root hamt.Node[K, V]) Map[K, V] {
	return Map[K, V]{root, m.eq, m.hash}
}

func (m Map[K, V]) trie() hamt.Node[K, V] {
	if m.root == nil {
		return hamt.New[K, V]()
	}
	return m.root
}

func (m Map[K, V]) hashOf(k K) uint32 {
	if m.hash == nil {
		return hash.Any(k)
	}
	return m.hash(k)
}

// Size returns the number of pairs in m.
func (m Map[K, V]) Size() natural.Natural { return m.trie().Size() }

// Len returns the number of pairs in m as an int. It truncates for maps too
// large for int, which cannot be built in practice.
func (m Map[K, V]) Len() int { return m.trie().Size().Int() }

// IsEmpty reports whether m has no pairs.
func (m Map[K, V]) IsEmpty() bool { return hamt.IsEmpty[K, V](m.trie()) }

// Head returns the first pair in iteration order, if m is not empty.
func (m Map[K, V]) Head() (Pair[K, V], bool) { return hamt.Head[K, V](m.trie()) }

// Tail returns m without the pair returned by Head. The tail of an empty map
// is empty.
func (m Map[K, V]) Tail() Map[K, V] { return m.with(hamt.Tail[K, V](m.trie())) }

// Iterator returns an iterator over the pairs of m. It can be used like this:
//
//	for it := m.Iterator(); it.HasElem(); it.Next() {
//	    key, value := it.Elem()
//	    // do something with elem...
//	}
//
// The order is determined by the hashes of the keys, and is the same for maps
// with the same pairs.
func (m Map[K, V]) Iterator() *hamt.Iterator[K, V] { return hamt.Iterate[K, V](m.trie()) }

// All returns an iterator over the pairs of m, in the order of Iterator.
func (m Map[K, V]) All() iter.Seq2[K, V] { return hamt.All[K, V](m.trie()) }

// Keys returns the keys of m as a set with the same key equivalence and
// hashing as m.
func (m Map[K, V]) Keys() hashset.Set[K] {
	s := hashset.New(m.eq, m.hash)
	for k := range m.All() {
		s = s.Add(k)
	}
	return s
}

// Values returns the values of m in iteration order.
func (m Map[K, V]) Values() []V {
	vs := make([]V, 0, m.Len())
	for _, v := range m.All() {
		vs = append(vs, v)
	}
	return vs
}

// Root returns the root node of the trie backing m.
func (m Map[K, V]) Root() hamt.Node[K, V] { return m.trie() }

// SameEntries reports whether m and other have the same keys, and whether
// the values associated with each key are equivalent under valueEq. Keys are
// looked up in other, with the key equivalence of other. A nil valueEq means
// equiv.Default.
func (m Map[K, V]) SameEntries(other Map[K, V], valueEq equiv.Relation[V]) bool {
	return hamt.SameContent(m.trie(), other, valueEq)
}

// Equal reports whether m and other have the same entries, with values
// compared with equiv.Default. It is SameEntries(other, nil).
func (m Map[K, V]) Equal(other Map[K, V]) bool {
	return m.SameEntries(other, nil)
}

// Hash returns a hash of the entries of m that does not depend on the order
// of iteration. Keys are hashed with the algorithm of m and values with
// hash.Default. Maps that are Equal and share a key hashing algorithm have
// the same hash.
func (m Map[K, V]) Hash() uint32 {
	valueHash := hash.Default[V]()
	var h uint32
	for k, v := range m.All() {
		h += hash.DJB(m.hashOf(k), valueHash(v))
	}
	return h
}

// String returns m in the form HashMap[(k1=v1)|(k2=v2)].
func (m Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("HashMap[")
	first := true
	for k, v := range m.All() {
		if !first {
			sb.WriteByte('|')
		}
		first = false
		fmt.Fprintf(&sb, "(%v=%v)", k, v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON encodes m as a JSON object. Keys must be strings, integers or
// implement encoding.TextMarshaler.
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		keyString, err := jsonKey(k)
		if err != nil {
			return nil, err
		}
		keyBytes, err := json.Marshal(keyString)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valueBytes, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonKey(k any) (string, error) {
	switch k := k.(type) {
	case string:
		return k, nil
	case encoding.TextMarshaler:
		bs, err := k.MarshalText()
		return string(bs), err
	case int:
		return strconv.Itoa(k), nil
	case int8, int16, int32, int64:
		return fmt.Sprint(k), nil
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return fmt.Sprint(k), nil
	}
	return "", fmt.Errorf("unsupported key type %T", k)
}
