// Package progtest provides a framework for testing programs run by
// prog.Run.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.persist.sh/pkg/must"
	"src.persist.sh/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + strings.TrimSuffix(o.content, "\n")
	}
	return o.content
}

// ThatHamtdump returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "hamtdump -bad-flag" exits with 2 is
// written as:
//
//	ThatHamtdump("-bad-flag").ExitsWith(2)
func ThatHamtdump(args ...string) Case {
	return Case{args: append([]string{"hamtdump"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatHamtdump("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// run to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// run to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.stdin, c.args...)
			r := result{exit, output{content: stdout}, output{content: stderr}}
			if !match(r, c.want) {
				t.Errorf("got ret=%v, stdout=%q, stderr=%q", r.exitCode, r.stdout, r.stderr)
				t.Errorf("want ret=%v, stdout=%q, stderr=%q", c.want.exitCode, c.want.stdout, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given stdin and arguments, where args[0] is
// the name of the program. It returns the exit code and the output written to
// stdout and stderr.
func Run(p prog.Program, stdin string, args ...string) (int, string, string) {
	r0, w0 := must.Pipe()
	// Write stdin in a goroutine so that large inputs don't block.
	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	stdout := readAllAsync(r1)
	stderr := readAllAsync(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	r0.Close()
	w1.Close()
	w2.Close()
	return exit, <-stdout, <-stderr
}

func readAllAsync(r io.ReadCloser) <-chan string {
	ch := make(chan string, 1)
	go func() { ch <- string(must.ReadAllAndClose(r)) }()
	return ch
}

func match(got, want result) bool {
	return got.exitCode == want.exitCode &&
		matchOutput(got.stdout.content, want.stdout) &&
		matchOutput(got.stderr.content, want.stderr)
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
