package hashset

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.persist.sh/pkg/hash"
	"src.persist.sh/pkg/tt"
)

func elems[T any](s Set[T]) []T { return slices.Collect(s.All()) }

func TestAddRemoveContains(t *testing.T) {
	s := Of(1, 2, 3)
	tt.Test(t, tt.Fn("Contains", s.Contains), tt.Table{
		tt.Args(1).Rets(true),
		tt.Args(3).Rets(true),
		tt.Args(4).Rets(false),
	})
	if s.Add(2).Len() != 3 {
		t.Errorf("adding an existing element changed the size")
	}
	if s.Remove(2).Contains(2) || !s.Contains(2) {
		t.Errorf("Remove is wrong or not persistent")
	}
	if s.Remove(4).Len() != 3 {
		t.Errorf("removing an absent element changed the size")
	}
	if !Empty[int]().IsEmpty() || s.IsEmpty() {
		t.Errorf("IsEmpty is wrong")
	}
}

func TestOrderAndString(t *testing.T) {
	s := Of(32, 1, 0)
	if diff := cmp.Diff([]int{0, 32, 1}, elems(s)); diff != "" {
		t.Errorf("All() (-want +got):\n%s", diff)
	}
	var viaIterator []int
	for it := s.Iterator(); it.HasElem(); it.Next() {
		viaIterator = append(viaIterator, it.Elem())
	}
	if diff := cmp.Diff([]int{0, 32, 1}, viaIterator); diff != "" {
		t.Errorf("Iterator (-want +got):\n%s", diff)
	}
	if s.String() != "HashSet[0, 32, 1]" {
		t.Errorf("String() = %q", s.String())
	}
	if Empty[int]().String() != "HashSet[]" {
		t.Errorf("String() of empty set = %q", Empty[int]().String())
	}
}

func TestHeadTail(t *testing.T) {
	s := Of(32, 1, 0)
	var got []int
	for r := s; !r.IsEmpty(); r = r.Tail() {
		e, _ := r.Head()
		got = append(got, e)
	}
	if diff := cmp.Diff(elems(s), got); diff != "" {
		t.Errorf("Head/Tail (-All +Head/Tail):\n%s", diff)
	}
	if _, ok := Empty[int]().Head(); ok {
		t.Errorf("Head of empty set found an element")
	}
}

func TestFromSeq(t *testing.T) {
	s := FromSeq(slices.Values([]string{"a", "b", "a"}))
	if s.Len() != 2 || !s.Equal(Of("b", "a")) {
		t.Errorf("FromSeq = %v", s)
	}
}

func TestAlgebra(t *testing.T) {
	a := Of(1, 2, 3, 4)
	b := Of(3, 4, 5)
	tests := []struct {
		name string
		got  Set[int]
		want Set[int]
	}{
		{"Union", a.Union(b), Of(1, 2, 3, 4, 5)},
		{"Intersection", a.Intersection(b), Of(3, 4)},
		{"Difference", a.Difference(b), Of(1, 2)},
		{"Difference reversed", b.Difference(a), Of(5)},
		{"SymmetricDifference", a.SymmetricDifference(b), Of(1, 2, 5)},
		{"Union with empty", a.Union(Empty[int]()), a},
		{"Intersection with empty", a.Intersection(Empty[int]()), Empty[int]()},
	}
	for _, test := range tests {
		if !test.got.Equal(test.want) {
			t.Errorf("%s = %v, want %v", test.name, test.got, test.want)
		}
	}
	tt.Test(t, tt.Fn("IsSubsetOf", Set[int].IsSubsetOf), tt.Table{
		tt.Args(Of(3, 4), a).Rets(true),
		tt.Args(a, a).Rets(true),
		tt.Args(Empty[int](), a).Rets(true),
		tt.Args(b, a).Rets(false),
		tt.Args(a, Of(3, 4)).Rets(false),
	})
}

func TestEqualAndHash(t *testing.T) {
	a := Of("x", "y", "z")
	b := Of("z", "y", "x")
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("sets with the same elements are not Equal or hash differently")
	}
	if a.Equal(a.Remove("x")) || a.Remove("x").Equal(a) {
		t.Errorf("sets of different sizes are Equal")
	}
	if a.Equal(Of("x", "y", "w")) {
		t.Errorf("sets with different elements are Equal")
	}
	// Sets can be elements of sets.
	ss := Of(a)
	if !ss.Contains(b) {
		t.Errorf("set of sets does not find an Equal set")
	}
}

func TestCustomConfig(t *testing.T) {
	lengthEq := func(a, b string) bool { return len(a) == len(b) }
	s := New(lengthEq, hash.By(func(s string) int { return len(s) }, hash.Any[int]))
	s = s.Add("a").Add("bb").Add("c")
	if diff := cmp.Diff([]string{"c", "bb"}, elems(s)); diff != "" {
		t.Errorf("All() (-want +got):\n%s", diff)
	}
	if !s.Contains("z") {
		t.Errorf("Contains does not use the configured equivalence")
	}
}

func TestZeroValue(t *testing.T) {
	var zero Set[int]
	if !zero.IsEmpty() || zero.Len() != 0 || zero.Contains(1) {
		t.Errorf("zero Set is not empty")
	}
	if !zero.Equal(Empty[int]()) || !Empty[int]().Equal(zero) || zero.String() != "HashSet[]" {
		t.Errorf("zero Set %v is not Equal to Empty", zero)
	}
	s := zero.Add(1).Add(2).Add(1)
	if diff := cmp.Diff([]int{1, 2}, elems(s)); diff != "" {
		t.Errorf("elements (-want +got):\n%s", diff)
	}
	if !s.Equal(Of(2, 1)) || s.Hash() != Of(1, 2).Hash() {
		t.Errorf("set built from zero Set differs from Of(1, 2)")
	}
	if !zero.Union(Of(3)).Equal(Of(3)) || !zero.Remove(1).IsEmpty() {
		t.Errorf("Union or Remove on zero Set is wrong")
	}
}
