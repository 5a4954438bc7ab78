package hash

import (
	"math"
	"testing"

	"src.persist.sh/pkg/tt"
)

type hasher struct{}

func (hasher) Hash() uint32 { return 42 }

type box struct{ x any }

func TestDJB(t *testing.T) {
	tt.Test(t, tt.Fn("DJB", DJB), tt.Table{
		tt.Args().Rets(DJBInit),
		tt.Args(uint32(1)).Rets(DJBInit*33 + 1),
		tt.Args(uint32(1), uint32(2)).Rets((DJBInit*33+1)*33 + 2),
	})
	tt.Test(t, tt.Fn("String", String), tt.Table{
		tt.Args("").Rets(DJBInit),
		tt.Args("a").Rets(DJBInit*33 + 'a'),
	})
	tt.Test(t, tt.Fn("UInt64", UInt64), tt.Table{
		tt.Args(uint64(7)).Rets(uint32(7)),
		tt.Args(uint64(1) << 32).Rets(uint32(33)),
	})
}

func TestAny(t *testing.T) {
	tt.Test(t, tt.Fn("Any", Any[any]), tt.Table{
		tt.Args(nil).Rets(uint32(0)),
		tt.Args(hasher{}).Rets(uint32(42)),
		tt.Args("a").Rets(String("a")),
		tt.Args(true).Rets(uint32(1)),
		tt.Args(7).Rets(uint32(7)),
		tt.Args(uint8(7)).Rets(uint32(7)),
		tt.Args([]int{1}).Rets(uint32(0)),
		tt.Args(map[string]int{}).Rets(uint32(0)),
		tt.Args(box{[]int{1}}).Rets(uint32(0)),
	})
}

func TestAny_FloatsHashByValue(t *testing.T) {
	negZero := math.Copysign(0, -1)
	if Any(0.0) != Any(negZero) {
		t.Errorf("0 and -0 hash differently")
	}
	if Any(float32(0)) != Any(float32(negZero)) {
		t.Errorf("float32 0 and -0 hash differently")
	}
	nan := math.NaN()
	otherNaN := math.Float64frombits(math.Float64bits(nan) | 1)
	if !math.IsNaN(otherNaN) || Any(nan) != Any(otherNaN) || Any(nan) != Any(-nan) {
		t.Errorf("NaNs hash differently")
	}
	if Any(1.0) == Any(2.0) {
		t.Errorf("1.0 and 2.0 hash alike")
	}
}

func TestAny_Comparable(t *testing.T) {
	if Any(box{"a"}) != Any(box{"a"}) {
		t.Errorf("equal structs hash differently")
	}
	// Pointers hash by identity, like ==.
	p := new(int)
	if Any(p) != Any(p) {
		t.Errorf("a pointer hashes differently from itself")
	}
}

func TestStubbedAndBy(t *testing.T) {
	stubs := map[string]uint32{"foo": 1}
	alg := Stubbed(stubs, String)
	stubs["foo"] = 2
	tt.Test(t, tt.Fn("Stubbed", alg), tt.Table{
		tt.Args("foo").Rets(uint32(1)),
		tt.Args("bar").Rets(String("bar")),
	})
	length := By(func(s string) int { return len(s) }, Default[int]())
	if length("ab") != length("cd") || length("ab") == length("abc") {
		t.Errorf("By does not hash the projection")
	}
}
