// Package equiv defines equivalence relations, the notion of "sameness" that
// hash tries use to compare keys and values.
package equiv

import (
	"math"
	"reflect"
)

// Relation reports whether two values are equivalent. Implementations must be
// reflexive, symmetric and transitive.
type Relation[T any] func(a, b T) bool

// Equaler is a value that knows whether it is equal to another value of the
// same type.
type Equaler[T any] interface {
	Equal(other T) bool
}

// AnyEqualer is a value that knows whether it is equal to another value of any
// type.
type AnyEqualer interface {
	Equal(other any) bool
}

// Default returns the relation used when none is configured. Values that
// implement Equaler[T] or AnyEqualer are compared with their Equal method,
// comparable values with ==, and everything else with reflect.DeepEqual.
// Floating-point NaN is equivalent to itself, so that it can be used as a key.
// Values of a comparable type that hold something incomparable, like a struct
// with an interface field holding a slice, also go to reflect.DeepEqual.
func Default[T any]() Relation[T] {
	return Equal[T]
}

// Equal compares a and b as described in Default.
func Equal[T any](a, b T) bool {
	switch a := any(a).(type) {
	case Equaler[T]:
		return a.Equal(b)
	case AnyEqualer:
		return a.Equal(b)
	case float64:
		if b, ok := any(b).(float64); ok && math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
	case float32:
		if b, ok := any(b).(float32); ok && math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
			return true
		}
	}
	ia, ib := any(a), any(b)
	if ia == nil || ib == nil {
		return ia == ib
	}
	if reflect.TypeOf(ia).Comparable() && reflect.TypeOf(ib).Comparable() {
		if eq, ok := compare(ia, ib); ok {
			return eq
		}
	}
	return reflect.DeepEqual(ia, ib)
}

// compare returns a == b, with ok false if the comparison panics because a
// and b hold incomparable values.
func compare(a, b any) (eq, ok bool) {
	defer func() {
		if recover() != nil {
			eq, ok = false, false
		}
	}()
	return a == b, true
}

// Comparable returns the relation ==.
func Comparable[T comparable]() Relation[T] {
	return func(a, b T) bool { return a == b }
}

// By returns the relation under which two values are equivalent when their
// projections through f are ==.
func By[T any, U comparable](f func(T) U) Relation[T] {
	return func(a, b T) bool { return f(a) == f(b) }
}

// Always returns the relation that holds for any two values.
func Always[T any]() Relation[T] {
	return func(T, T) bool { return true }
}

// Holds reports whether a and b are equivalent under r, or under Default when
// r is nil.
func (r Relation[T]) Holds(a, b T) bool {
	if r == nil {
		return Equal(a, b)
	}
	return r(a, b)
}
