// Package dump implements the hamtdump program, which builds a hash map from
// entries read from a YAML file and shows how the map lays them out in its
// trie.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"src.persist.sh/pkg/hamt"
	"src.persist.sh/pkg/hash"
	"src.persist.sh/pkg/hashmap"
	"src.persist.sh/pkg/logutil"
	"src.persist.sh/pkg/natural"
	"src.persist.sh/pkg/prog"
	"src.persist.sh/pkg/sys"
)

var logger = logutil.GetLogger("[dump] ")

// Program is the hamtdump program.
type Program struct{}

// Run reads entries from the file named by the only argument, or from stdin
// when there is no argument or the argument is "-", and writes a report to
// stdout.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	var in io.Reader
	name := "stdin"
	switch {
	case len(args) > 1:
		return prog.BadUsage("at most one file may be given")
	case len(args) == 1 && args[0] != "-":
		name = args[0]
		file, err := os.Open(name)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	default:
		in = fds[0]
	}

	entries, err := Load(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	logger.Printf("read %d entries from %s", len(entries), name)

	m := Build(entries, f.Hash == prog.HashStub)
	if f.JSON {
		return writeJSON(fds[1], m)
	}
	return writeText(fds[1], m, textStyle(fds[1], f.Color))
}

// Build puts entries into a new map in order. When stub is true, keys are
// hashed with the hash given in their entry, if any; other keys are hashed
// with hash.String.
func Build(entries []Entry, stub bool) hashmap.Map[string, any] {
	alg := hash.Algorithm[string](hash.String)
	if stub {
		stubs := make(map[string]uint32)
		for _, e := range entries {
			if e.HasHash {
				stubs[e.Key] = e.Hash
			}
		}
		logger.Printf("using %d stubbed hashes", len(stubs))
		alg = hash.Stubbed(stubs, alg)
	}
	m := hashmap.New[string, any](nil, alg)
	for _, e := range entries {
		m = m.Put(e.Key, e.Value)
	}
	return m
}

type style struct {
	color bool
	// width is the width of the terminal, or 0 if output is not a terminal.
	width int
}

func textStyle(out *os.File, color string) style {
	var st style
	isTTY := sys.IsATTY(out.Fd())
	if isTTY {
		_, st.width = sys.WinSize(out)
		if st.width < 0 {
			st.width = 0
		}
	}
	switch color {
	case prog.ColorAlways:
		st.color = true
	case prog.ColorAuto:
		st.color = isTTY
	}
	return st
}

// entryHeader is the width of "[31] entry 0b00_00000_00000_00000_00000_00000_00000 ".
const entryHeader = 52

const (
	sgrKey   = "\033[32m"
	sgrReset = "\033[m"
)

func (st style) key(k string) string {
	if st.color {
		return sgrKey + k + sgrReset
	}
	return k
}

// value renders v to fit in the given number of columns, if the width of the
// terminal is known.
func (st style) value(v any, indent int) string {
	s := fmt.Sprint(v)
	if st.width == 0 {
		return s
	}
	return truncate(s, max(st.width-indent, 8))
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

func writeText(w io.Writer, m hashmap.Map[string, any], st style) error {
	stats := hamt.Measure[string, any](m.Root())
	var sb strings.Builder
	fmt.Fprintf(&sb, "size: %s\n", m.Size())
	fmt.Fprintf(&sb, "stats: subtries=%d entries=%d collisions=%d max-depth=%d\n",
		stats.SubTries, stats.Entries, stats.Collisions, stats.MaxDepth)
	sb.WriteString("trie:\n")
	err := hamt.Dump(&sb, m.Root(), func(k string, v any) string {
		return st.key(k) + "=" + st.value(v, 2*stats.MaxDepth+entryHeader+len(k)+1)
	})
	if err != nil {
		return err
	}
	sb.WriteString("order:")
	for k := range m.All() {
		sb.WriteString(" " + st.key(k))
	}
	sb.WriteString("\n")
	_, err = io.WriteString(w, sb.String())
	return err
}

type report struct {
	Size    natural.Natural          `json:"size"`
	Stats   statsReport              `json:"stats"`
	Order   []string                 `json:"order"`
	Entries hashmap.Map[string, any] `json:"entries"`
	Trie    []string                 `json:"trie"`
}

type statsReport struct {
	SubTries   int `json:"subtries"`
	Entries    int `json:"entries"`
	Collisions int `json:"collisions"`
	MaxDepth   int `json:"maxDepth"`
}

func writeJSON(w io.Writer, m hashmap.Map[string, any]) error {
	st := hamt.Measure[string, any](m.Root())
	var sb strings.Builder
	if err := hamt.Dump[string, any](&sb, m.Root(), nil); err != nil {
		return err
	}
	order := make([]string, 0, m.Len())
	for k := range m.All() {
		order = append(order, k)
	}
	r := report{
		Size:    m.Size(),
		Stats:   statsReport(st),
		Order:   order,
		Entries: m,
		Trie:    strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n"),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
