package dump

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Entry is one key and value read from the input.
type Entry struct {
	Key   string
	Value any
	// Hash is the hash given in the input, if HasHash is true.
	Hash    uint32
	HasHash bool
}

type listEntry struct {
	Key   string    `yaml:"key"`
	Value any       `yaml:"value"`
	Hash  yaml.Node `yaml:"hash"`
}

var errEmptyInput = errors.New("empty input")

// Load reads entries from a YAML document. The document is either a mapping
// from keys to values, or a sequence of mappings with the fields key, value
// and an optional hash. Entries are returned in document order; JSON input
// works too, being a subset of YAML.
func Load(r io.Reader) ([]Entry, error) {
	var doc yaml.Node
	err := yaml.NewDecoder(r).Decode(&doc)
	if err == io.EOF {
		return nil, errEmptyInput
	} else if err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errEmptyInput
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		return loadMapping(root)
	case yaml.SequenceNode:
		return loadSequence(root)
	}
	return nil, fmt.Errorf("line %d: want a mapping or a sequence of entries", root.Line)
}

func loadMapping(n *yaml.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: key must be a scalar", k.Line)
		}
		var value any
		if err := v.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", v.Line, err)
		}
		entries = append(entries, Entry{Key: k.Value, Value: value})
	}
	return entries, nil
}

func loadSequence(n *yaml.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: entry must be a mapping", item.Line)
		}
		var le listEntry
		if err := item.Decode(&le); err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}
		e := Entry{Key: le.Key, Value: le.Value}
		if le.Hash.Kind != 0 {
			h, err := parseHash(le.Hash.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad hash %q: %w", le.Hash.Line, le.Hash.Value, err)
			}
			e.Hash, e.HasHash = h, true
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// parseHash parses a 32-bit hash in decimal, or in binary or hexadecimal with
// a 0b or 0x prefix. Underscores may separate groups of digits, as in the
// rendering of bitmap.Bitmap32.
func parseHash(s string) (uint32, error) {
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(u), nil
}
