package hamt

import (
	"fmt"
	"io"
	"strings"

	"src.persist.sh/pkg/bitmap"
)

// Stats summarizes the shape of a trie.
type Stats struct {
	SubTries   int
	Entries    int
	Collisions int
	// MaxDepth is the largest number of SubTries above any leaf.
	MaxDepth int
}

// Measure walks root and returns its Stats.
func Measure[K, V any](root Node[K, V]) Stats {
	var st Stats
	measure[K, V](root, 0, &st)
	return st
}

func measure[K, V any](n Node[K, V], depth int, st *Stats) {
	switch n1 := n.(type) {
	case *SubTrie[K, V]:
		st.SubTries++
		for _, child := range n1.children {
			measure[K, V](child, depth+1, st)
		}
		return
	case *Entry[K, V]:
		st.Entries++
	case *Collision[K, V]:
		st.Collisions++
	default:
		return
	}
	if depth > st.MaxDepth {
		st.MaxDepth = depth
	}
}

// Dump writes an indented rendering of the node tree under root to w, one
// node per line. Bitmaps and hashes are shown in the grouped binary form of
// bitmap.Bitmap32. If label is nil, pairs are shown as key=value.
func Dump[K, V any](w io.Writer, root Node[K, V], label func(K, V) string) error {
	if label == nil {
		label = func(k K, v V) string { return fmt.Sprintf("%v=%v", k, v) }
	}
	d := dumper[K, V]{w: w, label: label}
	d.node(root, 0, "")
	return d.err
}

type dumper[K, V any] struct {
	w     io.Writer
	label func(K, V) string
	err   error
}

func (d *dumper[K, V]) printf(indent int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, strings.Repeat("  ", indent)+format+"\n", args...)
}

func (d *dumper[K, V]) node(n Node[K, V], indent int, prefix string) {
	switch n1 := n.(type) {
	case *SubTrie[K, V]:
		d.printf(indent, "%ssubtrie %s size=%s", prefix, n1.bitmap, n1.size)
		i := 0
		for s := uint(0); s < bitmap.Size; s++ {
			if n1.bitmap.PopulatedAtIndex(s) {
				d.node(n1.children[i], indent+1, fmt.Sprintf("[%d] ", s))
				i++
			}
		}
	case *Entry[K, V]:
		d.printf(indent, "%sentry %s %s", prefix,
			bitmap.Bitmap32(n1.hash), d.label(n1.key, n1.value))
	case *Collision[K, V]:
		d.printf(indent, "%scollision %s size=%d", prefix,
			bitmap.Bitmap32(n1.hash), len(n1.entries))
		for _, e := range n1.entries {
			d.printf(indent+1, "%s", d.label(e.Key, e.Value))
		}
	default:
		d.printf(indent, "%sempty", prefix)
	}
}
