package hamt

import "iter"

// Iterator walks the pairs of a trie depth-first, visiting the children of
// each SubTrie in ascending slot order and the pairs of each Collision in
// order. It can be used like this:
//
//	for it := hamt.Iterate(root); it.HasElem(); it.Next() {
//	    key, value := it.Elem()
//	    // do something with key and value...
//	}
//
// An Iterator holds an explicit stack of the SubTries it is inside of; it
// never recurses. Since tries are immutable, an Iterator is never invalidated,
// but it must not be shared between goroutines.
type Iterator[K, V any] struct {
	stack []frame[K, V]
	// current is the *Entry or *Collision being visited, or nil when the
	// iterator is exhausted.
	current leaf[K, V]
	// index is the position within current when it is a *Collision.
	index int
}

type frame[K, V any] struct {
	n    *SubTrie[K, V]
	next int
}

// Iterate returns an Iterator positioned at the first pair of root.
func Iterate[K, V any](root Node[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{}
	it.descend(root)
	return it
}

// descend pushes the leftmost path under n and stops at its first leaf.
func (it *Iterator[K, V]) descend(n Node[K, V]) {
	for {
		switch n1 := n.(type) {
		case *SubTrie[K, V]:
			it.stack = append(it.stack, frame[K, V]{n1, 1})
			n = n1.children[0]
		case leaf[K, V]:
			it.current, it.index = n1, 0
			return
		default:
			it.current = nil
			return
		}
	}
}

// HasElem returns whether the iterator is pointing to a pair.
func (it *Iterator[K, V]) HasElem() bool {
	return it.current != nil
}

// Elem returns the current pair.
func (it *Iterator[K, V]) Elem() (K, V) {
	switch n := it.current.(type) {
	case *Entry[K, V]:
		return n.key, n.value
	case *Collision[K, V]:
		e := n.entries[it.index]
		return e.Key, e.Value
	}
	panic("hamt: Elem called on exhausted iterator")
}

// Hash returns the hash of the current key.
func (it *Iterator[K, V]) Hash() uint32 {
	return it.current.leafHash()
}

// Depth returns the number of SubTries above the current pair.
func (it *Iterator[K, V]) Depth() int {
	return len(it.stack)
}

// Next moves the iterator to the next pair.
func (it *Iterator[K, V]) Next() {
	if c, ok := it.current.(*Collision[K, V]); ok && it.index+1 < len(c.entries) {
		it.index++
		return
	}
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.next < len(top.n.children) {
			child := top.n.children[top.next]
			top.next++
			it.descend(child)
			return
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	it.current = nil
}

// All returns an iterator over the pairs of root in the order of Iterate.
func All[K, V any](root Node[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := Iterate[K, V](root); it.HasElem(); it.Next() {
			if !yield(it.Elem()) {
				return
			}
		}
	}
}
