package hamt

import (
	"src.persist.sh/pkg/bitmap"
	"src.persist.sh/pkg/natural"
)

const (
	chunkBits = 5
	chunkMask = 1<<chunkBits - 1
	// maxLevel is the deepest level. It consumes the 2 bits of the hash left
	// over after six 5-bit levels; past it, equal slots mean equal hashes.
	maxLevel = 32 / chunkBits
)

// slot returns the branch a hash takes at the given level. Level 0 consumes
// the least significant 5 bits.
func slot(hash uint32, level uint) uint {
	return uint(hash>>(level*chunkBits)) & chunkMask
}

// Node is a node of a hash trie. It is one of Empty, *Entry, *Collision and
// *SubTrie; other implementations are not possible.
//
// Nodes are immutable once built and may be shared freely between tries and
// goroutines.
type Node[K, V any] interface {
	// Size returns the number of pairs stored under the node.
	Size() natural.Natural
	node()
}

// leaf is implemented by the nodes that hold pairs directly.
type leaf[K, V any] interface {
	Node[K, V]
	leafHash() uint32
}

// Pair is a key and its associated value.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Empty is the node with no pairs.
type Empty[K, V any] struct{}

// New returns the Empty node.
func New[K, V any]() Node[K, V] { return Empty[K, V]{} }

func (Empty[K, V]) Size() natural.Natural { return natural.Zero() }
func (Empty[K, V]) node()                 {}

// IsEmpty reports whether n is the Empty node.
func IsEmpty[K, V any](n Node[K, V]) bool {
	_, ok := n.(Empty[K, V])
	return ok
}

// Entry is a leaf holding exactly one pair.
type Entry[K, V any] struct {
	key   K
	value V
	hash  uint32
}

func newEntry[K, V any](key K, value V, hash uint32) *Entry[K, V] {
	return &Entry[K, V]{key, value, hash}
}

func (e *Entry[K, V]) Key() K           { return e.key }
func (e *Entry[K, V]) Value() V         { return e.value }
func (e *Entry[K, V]) Hash() uint32     { return e.hash }
func (e *Entry[K, V]) leafHash() uint32 { return e.hash }
func (*Entry[K, V]) Size() natural.Natural {
	return natural.One()
}
func (*Entry[K, V]) node() {}

// Collision is a leaf holding two or more pairs whose keys have the same
// 32-bit hash. Pairs are kept in the order they were first put.
type Collision[K, V any] struct {
	hash    uint32
	entries []Pair[K, V]
}

func (c *Collision[K, V]) Hash() uint32     { return c.hash }
func (c *Collision[K, V]) leafHash() uint32 { return c.hash }
func (c *Collision[K, V]) Size() natural.Natural {
	return natural.FromUint64(uint64(len(c.entries)))
}
func (*Collision[K, V]) node() {}

// Entries returns a copy of the pairs of c.
func (c *Collision[K, V]) Entries() []Pair[K, V] {
	return append([]Pair[K, V](nil), c.entries...)
}

// SubTrie is a branch. Bit i of its bitmap is set when slot i is occupied, and
// the occupant of slot i is children[popcount(bitmap below i)].
//
// A SubTrie always has at least one child, and never has a leaf as its only
// child.
type SubTrie[K, V any] struct {
	bitmap   bitmap.Bitmap32
	children []Node[K, V]
	size     natural.Natural
}

func (s *SubTrie[K, V]) Size() natural.Natural { return s.size }
func (*SubTrie[K, V]) node()                   {}

// Bitmap returns the occupancy bitmap of s.
func (s *SubTrie[K, V]) Bitmap() bitmap.Bitmap32 { return s.bitmap }

// Children returns a copy of the children of s, in ascending slot order.
func (s *SubTrie[K, V]) Children() []Node[K, V] {
	return append([]Node[K, V](nil), s.children...)
}

// Child returns the occupant of slot i, if there is one.
func (s *SubTrie[K, V]) Child(i uint) (Node[K, V], bool) {
	if !s.bitmap.PopulatedAtIndex(i) {
		return nil, false
	}
	return s.children[s.index(i)], true
}

func (s *SubTrie[K, V]) index(i uint) int {
	return s.bitmap.LowerBits(int(i)).PopulationCount()
}

// resize computes the size of a node after one of its children, of size
// before, is replaced by one of size after.
func resize(total, before, after natural.Natural) natural.Natural {
	n, ok := total.Plus(after).Minus(before)
	if !ok {
		panic("hamt: child larger than its parent")
	}
	return n
}

func (s *SubTrie[K, V]) withInserted(i uint, child Node[K, V]) *SubTrie[K, V] {
	idx := s.index(i)
	children := make([]Node[K, V], len(s.children)+1)
	copy(children[:idx], s.children[:idx])
	children[idx] = child
	copy(children[idx+1:], s.children[idx:])
	return &SubTrie[K, V]{
		s.bitmap.PopulateAtIndex(i), children, s.size.Plus(child.Size())}
}

func (s *SubTrie[K, V]) withReplaced(i uint, child Node[K, V]) *SubTrie[K, V] {
	idx := s.index(i)
	children := append([]Node[K, V](nil), s.children...)
	old := children[idx]
	children[idx] = child
	return &SubTrie[K, V]{
		s.bitmap, children, resize(s.size, old.Size(), child.Size())}
}

// withChild replaces the occupant of slot i with child, removing the slot
// when child is Empty, and canonicalizes the result.
func (s *SubTrie[K, V]) withChild(i uint, child Node[K, V]) Node[K, V] {
	if !IsEmpty[K, V](child) {
		return canonical(s.withReplaced(i, child))
	}
	idx := s.index(i)
	children := make([]Node[K, V], len(s.children)-1)
	copy(children[:idx], s.children[:idx])
	copy(children[idx:], s.children[idx+1:])
	old := s.children[idx]
	return canonical(&SubTrie[K, V]{
		s.bitmap.EvictAtIndex(i), children,
		resize(s.size, old.Size(), natural.Zero())})
}

// canonical collapses a SubTrie with no children to Empty, and one whose only
// child is a leaf to that leaf, so that equal contents always have equal
// shapes.
func canonical[K, V any](s *SubTrie[K, V]) Node[K, V] {
	switch len(s.children) {
	case 0:
		return Empty[K, V]{}
	case 1:
		if l, ok := s.children[0].(leaf[K, V]); ok {
			return l
		}
	}
	return s
}
