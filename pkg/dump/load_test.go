package dump

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.persist.sh/pkg/hamt"
	"src.persist.sh/pkg/tt"
)

func load(s string) ([]Entry, error) { return Load(strings.NewReader(s)) }

func TestLoad(t *testing.T) {
	tt.Test(t, tt.Fn("Load", load), tt.Table{
		tt.Args("foo: 1\nbar: [a, b]\n").Rets([]Entry{
			{Key: "foo", Value: 1},
			{Key: "bar", Value: []any{"a", "b"}},
		}, nil),
		// Later keys are kept; deduplication is up to the map.
		tt.Args("a: 1\nb: 2\na: 3\n").Rets([]Entry{
			{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "a", Value: 3},
		}, nil),
		// Non-string scalar keys are taken literally.
		tt.Args("1: x\n").Rets([]Entry{{Key: "1", Value: "x"}}, nil),
		// JSON is YAML.
		tt.Args(`{"x": {"y": true}}`).Rets([]Entry{
			{Key: "x", Value: map[string]any{"y": true}},
		}, nil),
		tt.Args("- key: foo\n  value: 1\n  hash: 0b00_00000_00000_00000_00000_00001_00000\n" +
			"- key: bar\n  hash: 7\n" +
			"- key: baz\n  value: 0x10\n").Rets([]Entry{
			{Key: "foo", Value: 1, Hash: 32, HasHash: true},
			{Key: "bar", Hash: 7, HasHash: true},
			{Key: "baz", Value: 16},
		}, nil),
	})
}

func TestLoad_Errors(t *testing.T) {
	for _, test := range []struct {
		name    string
		in      string
		wantErr string
	}{
		{"empty", "", "empty input"},
		{"scalar document", "foo\n", "line 1: want a mapping or a sequence of entries"},
		{"non-scalar key", "? [a]\n: b\n", "line 1: key must be a scalar"},
		{"non-mapping entry", "- foo\n", "line 1: entry must be a mapping"},
		{"bad hash", "- key: a\n  hash: 0x100000000\n", `line 2: bad hash "0x100000000"`},
		{"negative hash", "- key: a\n  hash: -1\n", `line 2: bad hash "-1"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := load(test.in)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("got error %v, want one containing %q", err, test.wantErr)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	entries := []Entry{
		{Key: "a", Value: 1, Hash: 5, HasHash: true},
		{Key: "b", Value: 2, Hash: 5, HasHash: true},
		{Key: "a", Value: 3},
	}
	m := Build(entries, true)
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if v, _ := m.Get("a"); v != 3 {
		t.Errorf("Get(a) = %v, want 3", v)
	}
	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	// Hashes are ignored unless stubbing is asked for.
	if st := hamt.Measure[string, any](Build(entries, false).Root()); st.Collisions != 0 {
		t.Errorf("Build without stubbing has collisions: %+v", st)
	}
}

func TestTruncate(t *testing.T) {
	tt.Test(t, tt.Fn("truncate", truncate), tt.Table{
		tt.Args("hello", 10).Rets("hello"),
		tt.Args("hello", 5).Rets("hello"),
		tt.Args("hello world", 6).Rets("hello…"),
		tt.Args("日本語のテキスト", 4).Rets("日本語…"),
	})
}
