// Package hashset implements Set, a persistent hash set built on a hash array
// mapped trie.
package hashset

import (
	"fmt"
	"iter"
	"strings"

	"src.persist.sh/pkg/equiv"
	"src.persist.sh/pkg/hamt"
	"src.persist.sh/pkg/hash"
	"src.persist.sh/pkg/natural"
)

// Set is a persistent set. Like hashmap.Map, it is immutable and safe for
// concurrent use, and carries the equivalence and hashing algorithm it was
// created with. The zero value is an empty set with the default equivalence
// and hashing, like Empty.
type Set[T any] struct {
	root hamt.Node[T, struct{}]
	eq   equiv.Relation[T]
	hash hash.Algorithm[T]
}

// Empty returns an empty Set that uses equiv.Default and hash.Default.
func Empty[T any]() Set[T] {
	return New[T](nil, nil)
}

// New returns an empty Set that compares elements with eq and hashes them
// with alg. A nil eq or alg means the default one.
func New[T any](eq equiv.Relation[T], alg hash.Algorithm[T]) Set[T] {
	if eq == nil {
		eq = equiv.Default[T]()
	}
	if alg == nil {
		alg = hash.Default[T]()
	}
	return Set[T]{hamt.New[T, struct{}](), eq, alg}
}

// Of returns a Set of the given elements, using the default equivalence and
// hashing.
func Of[T any](elems ...T) Set[T] {
	s := Empty[T]()
	for _, e := range elems {
		s = s.Add(e)
	}
	return s
}

// FromSeq returns a Set of the elements of seq, using the default equivalence
// and hashing.
func FromSeq[T any](seq iter.Seq[T]) Set[T] {
	s := Empty[T]()
	for e := range seq {
		s = s.Add(e)
	}
	return s
}

func (s Set[T]) with(root hamt.Node[T, struct{}]) Set[T] {
	return Set[T]{root, s.eq, s.hash}
}

func (s Set[T]) trie() hamt.Node[T, struct{}] {
	if s.root == nil {
		return hamt.New[T, struct{}]()
	}
	return s.root
}

func (s Set[T]) hashOf(e T) uint32 {
	if s.hash == nil {
		return hash.Any(e)
	}
	return s.hash(e)
}

// Add returns a set that also has e. An equivalent element already in s is
// replaced by e.
func (s Set[T]) Add(e T) Set[T] {
	return s.with(hamt.Put(s.trie(), e, struct{}{}, s.hashOf(e), s.eq))
}

// Remove returns a set without e. If e is not in s, s itself is returned.
func (s Set[T]) Remove(e T) Set[T] {
	return s.with(hamt.Remove[T, struct{}](s.trie(), e, s.hashOf(e), s.eq))
}

// Contains reports whether e is in s.
func (s Set[T]) Contains(e T) bool {
	return hamt.Contains[T, struct{}](s.trie(), e, s.hashOf(e), s.eq)
}

// Size returns the number of elements in s.
func (s Set[T]) Size() natural.Natural { return s.trie().Size() }

// Len returns the number of elements in s as an int.
func (s Set[T]) Len() int { return s.trie().Size().Int() }

// IsEmpty reports whether s has no elements.
func (s Set[T]) IsEmpty() bool { return hamt.IsEmpty[T, struct{}](s.trie()) }

// Head returns the first element in iteration order, if s is not empty.
func (s Set[T]) Head() (T, bool) {
	p, ok := hamt.Head[T, struct{}](s.trie())
	return p.Key, ok
}

// Tail returns s without the element returned by Head.
func (s Set[T]) Tail() Set[T] { return s.with(hamt.Tail[T, struct{}](s.trie())) }

// Iterator is an iterator over the elements of a Set.
type Iterator[T any] struct{ it *hamt.Iterator[T, struct{}] }

// Iterator returns an iterator over the elements of s.
func (s Set[T]) Iterator() Iterator[T] { return Iterator[T]{hamt.Iterate[T, struct{}](s.trie())} }

// HasElem returns whether the iterator is pointing to an element.
func (it Iterator[T]) HasElem() bool { return it.it.HasElem() }

// Elem returns the current element.
func (it Iterator[T]) Elem() T {
	e, _ := it.it.Elem()
	return e
}

// Next moves the iterator to the next element.
func (it Iterator[T]) Next() { it.it.Next() }

// All returns an iterator over the elements of s.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := range hamt.All[T, struct{}](s.trie()) {
			if !yield(e) {
				return
			}
		}
	}
}

// Union returns the elements in s or other. It keeps the configuration of s.
func (s Set[T]) Union(other Set[T]) Set[T] {
	for e := range other.All() {
		if !s.Contains(e) {
			s = s.Add(e)
		}
	}
	return s
}

// Intersection returns the elements in both s and other. It keeps the
// configuration of s.
func (s Set[T]) Intersection(other Set[T]) Set[T] {
	r := s
	for e := range s.All() {
		if !other.Contains(e) {
			r = r.Remove(e)
		}
	}
	return r
}

// Difference returns the elements in s but not in other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	r := s
	for e := range s.All() {
		if other.Contains(e) {
			r = r.Remove(e)
		}
	}
	return r
}

// SymmetricDifference returns the elements in exactly one of s and other. It
// keeps the configuration of s.
func (s Set[T]) SymmetricDifference(other Set[T]) Set[T] {
	r := s.Difference(other)
	for e := range other.All() {
		if !s.Contains(e) {
			r = r.Add(e)
		}
	}
	return r
}

// IsSubsetOf reports whether every element of s is in other.
func (s Set[T]) IsSubsetOf(other Set[T]) bool {
	if other.Size().Less(s.Size()) {
		return false
	}
	for e := range s.All() {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other have the same elements.
func (s Set[T]) Equal(other Set[T]) bool {
	return s.Size().Equal(other.Size()) && s.IsSubsetOf(other)
}

// Hash returns a hash of the elements of s that does not depend on the order
// of iteration.
func (s Set[T]) Hash() uint32 {
	var h uint32
	for e := range s.All() {
		h += s.hashOf(e)
	}
	return h
}

// String returns s in the form HashSet[a, b].
func (s Set[T]) String() string {
	var sb strings.Builder
	sb.WriteString("HashSet[")
	first := true
	for e := range s.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, e)
	}
	sb.WriteByte(']')
	return sb.String()
}
