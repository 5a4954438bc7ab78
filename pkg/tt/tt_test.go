package tt

import (
	"fmt"
	"strings"
	"testing"

	"src.persist.sh/pkg/natural"
)

// testT implements the T interface and is used to verify the Test function's
// interaction with T.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

// Simple functions to test.

func plus(x, y uint64) natural.Natural {
	return natural.FromUint64(x).Plus(natural.FromUint64(y))
}

func minus(x, y uint64) (natural.Natural, bool) {
	return natural.FromUint64(x).Minus(natural.FromUint64(y))
}

func TestTTPass(t *testing.T) {
	var testT testT
	Test(&testT, Fn("minus", minus), Table{
		Args(uint64(10), uint64(1)).Rets(natural.FromUint64(9), true),
		Args(uint64(1), uint64(10)).Rets(Any, false),
	})
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass: %v", testT)
	}
}

func TestTTFailDefaultFmtOneReturn(t *testing.T) {
	var testT testT
	Test(&testT,
		Fn("plus", plus),
		Table{Args(uint64(1), uint64(10)).Rets(natural.FromUint64(12))},
	)
	assertOneError(t, testT, "plus(1, 10) returns (-Wanted +Actual):\n")
}

func TestTTFailDefaultFmtMultiReturn(t *testing.T) {
	var testT testT
	Test(&testT,
		Fn("minus", minus),
		Table{Args(uint64(1), uint64(10)).Rets(natural.Zero(), true)},
	)
	assertOneError(t, testT, "minus(1, 10) returns (-Wanted +Actual):\n")
}

func TestTTFailCustomFmt(t *testing.T) {
	var testT testT
	Test(&testT,
		Fn("minus", minus).ArgsFmt("x = %d, y = %d").RetsFmt("(n = %v, ok = %v)"),
		Table{Args(uint64(10), uint64(1)).Rets(natural.FromUint64(8), true)},
	)
	assertOneError(t, testT,
		"minus(x = 10, y = 1) returns (-Wanted +Actual):\n-(n = 8, ok = true)\n+(n = 9, ok = true)\n")
}

func TestTTNilArgument(t *testing.T) {
	var testT testT
	Test(&testT, Fn("isNil", func(err error) bool { return err == nil }), Table{
		Args(nil).Rets(true),
	})
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass: %v", testT)
	}
}

func assertOneError(t *testing.T, testT testT, wantPrefix string) {
	t.Helper()
	switch len(testT) {
	case 0:
		t.Errorf("Test didn't error when it should have done so")
	case 1:
		if !strings.HasPrefix(testT[0], wantPrefix) {
			t.Errorf("Test wrote message:\nWanted: %q...\nActual: %q", wantPrefix, testT[0])
		}
	default:
		t.Errorf("Test wrote too many error messages")
	}
}
