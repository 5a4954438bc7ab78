// Package stack implements Stack, a persistent LIFO list.
package stack

import (
	"fmt"
	"iter"
	"strings"

	"src.persist.sh/pkg/equiv"
	"src.persist.sh/pkg/natural"
)

// Stack is a persistent singly linked list. Cons, Head and Tail are O(1), and
// stacks built from a common stack share its cells. The zero value is an empty
// stack.
type Stack[T any] struct {
	top *cell[T]
}

type cell[T any] struct {
	head T
	tail *cell[T]
	size natural.Natural
}

// Empty returns an empty stack.
func Empty[T any]() Stack[T] { return Stack[T]{} }

// Of returns a stack of the given values, with the first one on top.
func Of[T any](values ...T) Stack[T] {
	var s Stack[T]
	for i := len(values) - 1; i >= 0; i-- {
		s = s.Cons(values[i])
	}
	return s
}

// Cons returns a stack with v on top of s.
func (s Stack[T]) Cons(v T) Stack[T] {
	return Stack[T]{&cell[T]{v, s.top, s.Size().Inc()}}
}

// ConsAll returns a stack with the values of seq pushed onto s in order, so
// that the last one is on top.
func (s Stack[T]) ConsAll(seq iter.Seq[T]) Stack[T] {
	for v := range seq {
		s = s.Cons(v)
	}
	return s
}

// Head returns the value on top of s, if s is not empty.
func (s Stack[T]) Head() (T, bool) {
	if s.top == nil {
		var zero T
		return zero, false
	}
	return s.top.head, true
}

// Tail returns s without its top value. The tail of an empty stack is empty.
func (s Stack[T]) Tail() Stack[T] {
	if s.top == nil {
		return s
	}
	return Stack[T]{s.top.tail}
}

// Reverse returns the values of s in the opposite order. It is O(n).
func (s Stack[T]) Reverse() Stack[T] {
	var r Stack[T]
	for c := s.top; c != nil; c = c.tail {
		r = r.Cons(c.head)
	}
	return r
}

// Size returns the number of values in s.
func (s Stack[T]) Size() natural.Natural {
	if s.top == nil {
		return natural.Zero()
	}
	return s.top.size
}

// Len returns the number of values in s as an int.
func (s Stack[T]) Len() int { return s.Size().Int() }

// IsEmpty reports whether s has no values.
func (s Stack[T]) IsEmpty() bool { return s.top == nil }

// Iterator walks a stack from the top.
type Iterator[T any] struct{ c *cell[T] }

// Iterator returns an iterator over the values of s, from the top.
func (s Stack[T]) Iterator() *Iterator[T] { return &Iterator[T]{s.top} }

// HasElem returns whether the iterator is pointing to a value.
func (it *Iterator[T]) HasElem() bool { return it.c != nil }

// Elem returns the current value.
func (it *Iterator[T]) Elem() T { return it.c.head }

// Next moves the iterator to the next value.
func (it *Iterator[T]) Next() { it.c = it.c.tail }

// All returns an iterator over the values of s, from the top.
func (s Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := s.top; c != nil; c = c.tail {
			if !yield(c.head) {
				return
			}
		}
	}
}

// Equal reports whether s and other hold equivalent values in the same order.
// A nil eq means equiv.Default.
func (s Stack[T]) Equal(other Stack[T], eq equiv.Relation[T]) bool {
	if !s.Size().Equal(other.Size()) {
		return false
	}
	for a, b := s.top, other.top; a != nil; a, b = a.tail, b.tail {
		if a == b {
			// Shared cells from here on.
			return true
		}
		if !eq.Holds(a.head, b.head) {
			return false
		}
	}
	return true
}

// String returns s in the form StrictStack[a, b], top first.
func (s Stack[T]) String() string {
	return format("StrictStack", s.All())
}

func format[T any](name string, seq iter.Seq[T]) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('[')
	first := true
	for v := range seq {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
