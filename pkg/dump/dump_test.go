package dump_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.persist.sh/pkg/dump"
	"src.persist.sh/pkg/must"
	"src.persist.sh/pkg/prog/progtest"
	"src.persist.sh/pkg/testutil"
)

var (
	Test         = progtest.Test
	ThatHamtdump = progtest.ThatHamtdump
)

const entries = `- {key: foo, value: 1, hash: 0}
- {key: bar, value: 2, hash: 0b00_00000_00000_00000_00000_00001_00000}
- {key: baz, value: 3, hash: 0b00_00000_00000_00000_00001_00001_00000}
- {key: qux, value: [a, b], hash: 0}
`

var textReport = testutil.Dedent(`
	size: 4
	stats: subtries=3 entries=2 collisions=1 max-depth=3
	trie:
	subtrie 0b00_00000_00000_00000_00000_00000_00001 size=4
	  [0] subtrie 0b00_00000_00000_00000_00000_00000_00011 size=4
	    [0] collision 0b00_00000_00000_00000_00000_00000_00000 size=2
	      foo=1
	      qux=[a b]
	    [1] subtrie 0b00_00000_00000_00000_00000_00000_00011 size=2
	      [0] entry 0b00_00000_00000_00000_00000_00001_00000 bar=2
	      [1] entry 0b00_00000_00000_00000_00001_00001_00000 baz=3
	order: foo qux bar baz
	`)

func writeInput(t *testing.T, content string) string {
	name := filepath.Join(t.TempDir(), "entries.yaml")
	must.WriteFile(name, content)
	return name
}

func TestText(t *testing.T) {
	file := writeInput(t, entries)
	Test(t, dump.Program{},
		ThatHamtdump("-hash", "stub", file).WritesStdout(textReport),
		ThatHamtdump("-hash", "stub", "-").WithStdin(entries).WritesStdout(textReport),
		ThatHamtdump("-hash", "stub").WithStdin(entries).WritesStdout(textReport),
		// Pipes are not terminals.
		ThatHamtdump("-hash", "stub", "-color", "auto", file).WritesStdout(textReport),
		ThatHamtdump("-hash", "stub", "-color", "always", file).
			WritesStdoutContaining("order: \033[32mfoo\033[m \033[32mqux\033[m"),
	)
}

func TestText_DefaultHashIgnoresHashField(t *testing.T) {
	file := writeInput(t, entries)
	Test(t, dump.Program{},
		ThatHamtdump(file).WritesStdoutContaining("size: 4\nstats: subtries="),
	)
}

func TestText_Empty(t *testing.T) {
	Test(t, dump.Program{},
		ThatHamtdump().WithStdin("{}\n").
			WritesStdout("size: 0\n" +
				"stats: subtries=0 entries=0 collisions=0 max-depth=0\n" +
				"trie:\nempty\norder:\n"),
	)
}

func TestJSON(t *testing.T) {
	_, stdout, _ := progtest.Run(dump.Program{}, entries, "hamtdump", "-json", "-hash", "stub")
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	want := map[string]any{
		"size": 4.0,
		"stats": map[string]any{
			"subtries": 3.0, "entries": 2.0, "collisions": 1.0, "maxDepth": 3.0,
		},
		"order": []any{"foo", "qux", "bar", "baz"},
		"entries": map[string]any{
			"foo": 1.0, "qux": []any{"a", "b"}, "bar": 2.0, "baz": 3.0,
		},
	}
	trie, _ := got["trie"].([]any)
	delete(got, "trie")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON report (-want +got):\n%s", diff)
	}
	wantTrie := strings.Split(strings.SplitN(textReport, "trie:\n", 2)[1], "\n")
	wantTrie = wantTrie[:len(wantTrie)-2]
	var gotTrie []string
	for _, line := range trie {
		gotTrie = append(gotTrie, line.(string))
	}
	if diff := cmp.Diff(wantTrie, gotTrie); diff != "" {
		t.Errorf("JSON trie (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	Test(t, dump.Program{},
		ThatHamtdump("a", "b").
			ExitsWith(2).
			WritesStderrContaining("at most one file may be given\nUsage:"),
		ThatHamtdump(filepath.Join(t.TempDir(), "missing.yaml")).
			ExitsWith(1).
			WritesStderrContaining("missing.yaml: no such file or directory"),
		ThatHamtdump().WithStdin("").
			ExitsWith(1).
			WritesStderr("read stdin: empty input\n"),
		ThatHamtdump().WithStdin("- key: a\n  hash: x\n").
			ExitsWith(1).
			WritesStderrContaining(`read stdin: line 2: bad hash "x"`),
		ThatHamtdump("-json").WithStdin("- {key: a, value: {[1]: 2}}\n").
			ExitsWith(1),
	)
}
