// Package hamt implements a persistent hash array mapped trie.
//
// A trie is a tree of immutable nodes. The branch taken at each level is the
// next 5-bit slice of the key's 32-bit hash, starting from the least
// significant bits; the seventh and last level consumes the remaining 2 bits.
// Keys whose hashes agree on all 32 bits share a Collision leaf.
//
// The functions in this package never modify a node. Put and Remove return a
// new root that reallocates only the path from the root to the affected leaf
// and shares every other node with the original. Tries are canonical: the same
// set of pairs always produces the same shape, regardless of the order of the
// operations that built it, except that pairs in a Collision keep the order
// they were first put in.
//
// The key equivalence and hash are supplied by the caller on every call. They
// must agree: keys that are equivalent must have the same hash.
package hamt

import (
	"src.persist.sh/pkg/bitmap"
	"src.persist.sh/pkg/equiv"
	"src.persist.sh/pkg/natural"
)

// Get looks up the value associated with key, whose hash is hash.
func Get[K, V any](root Node[K, V], key K, hash uint32, eq equiv.Relation[K]) (V, bool) {
	var zero V
	n := root
	for level := uint(0); ; level++ {
		switch n1 := n.(type) {
		case *SubTrie[K, V]:
			child, ok := n1.Child(slot(hash, level))
			if !ok {
				return zero, false
			}
			n = child
		case *Entry[K, V]:
			if n1.hash == hash && eq.Holds(key, n1.key) {
				return n1.value, true
			}
			return zero, false
		case *Collision[K, V]:
			if n1.hash == hash {
				if i := n1.find(key, eq); i != -1 {
					return n1.entries[i].Value, true
				}
			}
			return zero, false
		default:
			return zero, false
		}
	}
}

// Contains reports whether key is in the trie.
func Contains[K, V any](root Node[K, V], key K, hash uint32, eq equiv.Relation[K]) bool {
	_, ok := Get[K, V](root, key, hash, eq)
	return ok
}

// Put returns a trie in which key is associated with value. If the trie
// already has an equivalent key, that pair is replaced, key included.
func Put[K, V any](root Node[K, V], key K, value V, hash uint32, eq equiv.Relation[K]) Node[K, V] {
	return put(root, 0, key, value, hash, eq)
}

func put[K, V any](n Node[K, V], level uint, key K, value V, hash uint32, eq equiv.Relation[K]) Node[K, V] {
	switch n1 := n.(type) {
	case *SubTrie[K, V]:
		i := slot(hash, level)
		child, ok := n1.Child(i)
		if !ok {
			return n1.withInserted(i, newEntry(key, value, hash))
		}
		return n1.withReplaced(i, put(child, level+1, key, value, hash, eq))
	case *Entry[K, V]:
		if n1.hash != hash {
			return fork[K, V](level, n1, newEntry(key, value, hash))
		}
		if eq.Holds(key, n1.key) {
			return newEntry(key, value, hash)
		}
		return &Collision[K, V]{hash, []Pair[K, V]{{n1.key, n1.value}, {key, value}}}
	case *Collision[K, V]:
		if n1.hash != hash {
			return fork[K, V](level, n1, newEntry(key, value, hash))
		}
		return n1.with(key, value, eq)
	default:
		return newEntry(key, value, hash)
	}
}

// fork builds the smallest SubTrie at the given level that holds both a and
// b, whose hashes must differ.
func fork[K, V any](level uint, a, b leaf[K, V]) *SubTrie[K, V] {
	if level > maxLevel {
		panic("hamt: fork of leaves with equal hashes")
	}
	ia, ib := slot(a.leafHash(), level), slot(b.leafHash(), level)
	size := a.Size().Plus(b.Size())
	if ia == ib {
		child := fork[K, V](level+1, a, b)
		return &SubTrie[K, V]{
			bitmap.Empty().PopulateAtIndex(ia), []Node[K, V]{child}, size}
	}
	bm := bitmap.Empty().PopulateAtIndex(ia).PopulateAtIndex(ib)
	if ia < ib {
		return &SubTrie[K, V]{bm, []Node[K, V]{a, b}, size}
	}
	return &SubTrie[K, V]{bm, []Node[K, V]{b, a}, size}
}

func (c *Collision[K, V]) find(key K, eq equiv.Relation[K]) int {
	for i, e := range c.entries {
		if eq.Holds(key, e.Key) {
			return i
		}
	}
	return -1
}

// with returns a Collision with the pair added. An equivalent pair is
// replaced where it is; a new one goes to the end.
func (c *Collision[K, V]) with(key K, value V, eq equiv.Relation[K]) *Collision[K, V] {
	if i := c.find(key, eq); i != -1 {
		entries := append([]Pair[K, V](nil), c.entries...)
		entries[i] = Pair[K, V]{key, value}
		return &Collision[K, V]{c.hash, entries}
	}
	entries := make([]Pair[K, V], len(c.entries)+1)
	copy(entries, c.entries)
	entries[len(c.entries)] = Pair[K, V]{key, value}
	return &Collision[K, V]{c.hash, entries}
}

// without returns the leaf left after removing the pair at index i.
func (c *Collision[K, V]) without(i int) leaf[K, V] {
	if len(c.entries) == 2 {
		rest := c.entries[1-i]
		return newEntry(rest.Key, rest.Value, c.hash)
	}
	entries := make([]Pair[K, V], len(c.entries)-1)
	copy(entries[:i], c.entries[:i])
	copy(entries[i:], c.entries[i+1:])
	return &Collision[K, V]{c.hash, entries}
}

// Remove returns a trie without key. If key is not in the trie, root itself is
// returned.
func Remove[K, V any](root Node[K, V], key K, hash uint32, eq equiv.Relation[K]) Node[K, V] {
	return remove[K, V](root, 0, key, hash, eq)
}

func remove[K, V any](n Node[K, V], level uint, key K, hash uint32, eq equiv.Relation[K]) Node[K, V] {
	switch n1 := n.(type) {
	case *SubTrie[K, V]:
		i := slot(hash, level)
		child, ok := n1.Child(i)
		if !ok {
			return n
		}
		newChild := remove[K, V](child, level+1, key, hash, eq)
		if newChild == child {
			return n
		}
		return n1.withChild(i, newChild)
	case *Entry[K, V]:
		if n1.hash == hash && eq.Holds(key, n1.key) {
			return Empty[K, V]{}
		}
		return n
	case *Collision[K, V]:
		if n1.hash != hash {
			return n
		}
		if i := n1.find(key, eq); i != -1 {
			return n1.without(i)
		}
		return n
	default:
		return n
	}
}

// Size returns the number of pairs in the trie.
func Size[K, V any](root Node[K, V]) natural.Natural {
	return root.Size()
}

// Head returns the first pair in iteration order, if the trie is not empty.
func Head[K, V any](root Node[K, V]) (Pair[K, V], bool) {
	for {
		switch n := root.(type) {
		case *SubTrie[K, V]:
			root = n.children[0]
		case *Entry[K, V]:
			return Pair[K, V]{n.key, n.value}, true
		case *Collision[K, V]:
			return n.entries[0], true
		default:
			return Pair[K, V]{}, false
		}
	}
}

// Tail returns the trie without the pair returned by Head. The tail of the
// Empty trie is Empty.
func Tail[K, V any](root Node[K, V]) Node[K, V] {
	switch n := root.(type) {
	case *SubTrie[K, V]:
		first := n.children[0]
		return n.withChild(lowestSlot(n.bitmap), Tail[K, V](first))
	case *Entry[K, V]:
		return Empty[K, V]{}
	case *Collision[K, V]:
		return n.without(0)
	default:
		return root
	}
}

func lowestSlot(b bitmap.Bitmap32) uint {
	for i := uint(0); i < bitmap.Size; i++ {
		if b.PopulatedAtIndex(i) {
			return i
		}
	}
	panic("hamt: SubTrie with empty bitmap")
}

// Lookup is something pairs can be looked up in.
type Lookup[K, V any] interface {
	Get(key K) (V, bool)
	Size() natural.Natural
}

// SameContent reports whether the pairs of root are exactly the pairs in
// other: both have the same size, and every key of root is found in other
// with an equivalent value under valueEq. A nil valueEq means
// equiv.Default.
func SameContent[K, V any](root Node[K, V], other Lookup[K, V], valueEq equiv.Relation[V]) bool {
	if !root.Size().Equal(other.Size()) {
		return false
	}
	for it := Iterate[K, V](root); it.HasElem(); it.Next() {
		k, v := it.Elem()
		v2, ok := other.Get(k)
		if !ok || !valueEq.Holds(v, v2) {
			return false
		}
	}
	return true
}
