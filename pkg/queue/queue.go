// Package queue implements Queue, a persistent FIFO queue that also supports
// the operations of a stack.
package queue

import (
	"fmt"
	"iter"
	"strings"

	"src.persist.sh/pkg/equiv"
	"src.persist.sh/pkg/natural"
	"src.persist.sh/pkg/stack"
)

// Queue is a persistent queue held in two stacks: values are taken from the
// top of outgoing, and added on top of incoming, which holds the back of the
// queue in reverse. When outgoing runs out, incoming is reversed to become the
// new outgoing, so Snoc, Cons and Head are O(1) and Tail is amortized O(1).
//
// A non-empty queue always has a non-empty outgoing stack. The zero value is
// an empty queue.
type Queue[T any] struct {
	outgoing stack.Stack[T]
	incoming stack.Stack[T]
}

// Empty returns an empty queue.
func Empty[T any]() Queue[T] { return Queue[T]{} }

// Of returns a queue of the given values, with the first one at the front.
func Of[T any](values ...T) Queue[T] {
	return Queue[T]{outgoing: stack.Of(values...)}
}

// Snoc returns a queue with v added at the back of q.
func (q Queue[T]) Snoc(v T) Queue[T] {
	if q.outgoing.IsEmpty() {
		return Queue[T]{outgoing: stack.Empty[T]().Cons(v)}
	}
	return Queue[T]{q.outgoing, q.incoming.Cons(v)}
}

// SnocAll returns a queue with the values of seq added at the back of q, in
// order.
func (q Queue[T]) SnocAll(seq iter.Seq[T]) Queue[T] {
	for v := range seq {
		q = q.Snoc(v)
	}
	return q
}

// Cons returns a queue with v added at the front of q.
func (q Queue[T]) Cons(v T) Queue[T] {
	return Queue[T]{q.outgoing.Cons(v), q.incoming}
}

// ConsAll returns a queue with the values of seq added at the front of q, in
// order, so that the last one is at the front.
func (q Queue[T]) ConsAll(seq iter.Seq[T]) Queue[T] {
	return Queue[T]{q.outgoing.ConsAll(seq), q.incoming}
}

// Head returns the value at the front of q, if q is not empty.
func (q Queue[T]) Head() (T, bool) { return q.outgoing.Head() }

// Tail returns q without its front value. The tail of an empty queue is
// empty.
func (q Queue[T]) Tail() Queue[T] {
	out := q.outgoing.Tail()
	if out.IsEmpty() {
		return Queue[T]{outgoing: q.incoming.Reverse()}
	}
	return Queue[T]{out, q.incoming}
}

// Reverse returns the values of q in the opposite order. It swaps the two
// stacks, and only reverses when that would leave outgoing empty.
func (q Queue[T]) Reverse() Queue[T] {
	if q.incoming.IsEmpty() {
		return Queue[T]{outgoing: q.outgoing.Reverse()}
	}
	return Queue[T]{q.incoming, q.outgoing}
}

// Size returns the number of values in q.
func (q Queue[T]) Size() natural.Natural {
	return q.outgoing.Size().Plus(q.incoming.Size())
}

// Len returns the number of values in q as an int.
func (q Queue[T]) Len() int { return q.Size().Int() }

// IsEmpty reports whether q has no values.
func (q Queue[T]) IsEmpty() bool { return q.outgoing.IsEmpty() }

// Iterator walks a queue from the front.
type Iterator[T any] struct {
	it       *stack.Iterator[T]
	incoming stack.Stack[T]
}

// Iterator returns an iterator over the values of q, from the front.
func (q Queue[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{q.outgoing.Iterator(), q.incoming}
}

// HasElem returns whether the iterator is pointing to a value.
func (it *Iterator[T]) HasElem() bool { return it.it.HasElem() }

// Elem returns the current value.
func (it *Iterator[T]) Elem() T { return it.it.Elem() }

// Next moves the iterator to the next value.
func (it *Iterator[T]) Next() {
	it.it.Next()
	if !it.it.HasElem() && !it.incoming.IsEmpty() {
		it.it = it.incoming.Reverse().Iterator()
		it.incoming = stack.Empty[T]()
	}
}

// All returns an iterator over the values of q, from the front.
func (q Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := q.Iterator(); it.HasElem(); it.Next() {
			if !yield(it.Elem()) {
				return
			}
		}
	}
}

// Equal reports whether q and other hold equivalent values in the same order.
// A nil eq means equiv.Default.
func (q Queue[T]) Equal(other Queue[T], eq equiv.Relation[T]) bool {
	if !q.Size().Equal(other.Size()) {
		return false
	}
	a, b := q.Iterator(), other.Iterator()
	for ; a.HasElem(); a.Next() {
		if !eq.Holds(a.Elem(), b.Elem()) {
			return false
		}
		b.Next()
	}
	return true
}

// String returns q in the form StrictQueue[a, b], front first.
func (q Queue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("StrictQueue[")
	first := true
	for v := range q.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
