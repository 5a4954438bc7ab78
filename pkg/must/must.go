// Package must turns failures that a caller has ruled out into panics. It is
// meant for tests and for the few places where a failure would be a bug.
package must

import (
	"io"
	"os"
	"path/filepath"
)

// OK panics with err if it is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, or panics with err if it is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// Present returns v, or panics if ok is false. It unwraps the comma-ok results
// of lookups and partial operations like natural.Natural.Minus and
// bitmap.FromBits.
func Present[T any](v T, ok bool) T {
	if !ok {
		panic(errAbsent)
	}
	return v
}

type absentError struct{}

func (absentError) Error() string { return "must: value is absent" }

var errAbsent error = absentError{}

// Pipe returns both ends of a new pipe.
func Pipe() (r, w *os.File) {
	r, w, err := os.Pipe()
	OK(err)
	return r, w
}

// ReadAllAndClose reads r to the end and closes it.
func ReadAllAndClose(r io.ReadCloser) []byte {
	defer func() { OK(r.Close()) }()
	return OK1(io.ReadAll(r))
}

// WriteFile writes data to filename with mode 0600, creating missing parent
// directories.
func WriteFile(filename, data string) {
	OK(os.MkdirAll(filepath.Dir(filename), 0700))
	OK(os.WriteFile(filename, []byte(data), 0600))
}
