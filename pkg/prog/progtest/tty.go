//go:build !windows

package progtest

import (
	"os"
	"strings"

	"github.com/creack/pty"

	"src.persist.sh/pkg/must"
	"src.persist.sh/pkg/prog"
)

// RunOnTTY is like Run, but stdout is the slave end of a pseudo-terminal with
// the given size. Line endings written to the terminal are converted back to
// "\n".
func RunOnTTY(p prog.Program, rows, cols uint16, stdin string, args ...string) (int, string, string) {
	ptmx, tty, err := pty.Open()
	must.OK(err)
	must.OK(pty.Setsize(tty, &pty.Winsize{Rows: rows, Cols: cols}))

	r0, w0 := must.Pipe()
	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	r2, w2 := must.Pipe()
	stdout := readTTYAsync(ptmx)
	stderr := readAllAsync(r2)

	exit := prog.Run([3]*os.File{r0, tty, w2}, args, p)
	r0.Close()
	tty.Close()
	w2.Close()
	return exit, strings.ReplaceAll(<-stdout, "\r\n", "\n"), <-stderr
}

// readTTYAsync reads from the master end of a pseudo-terminal until the slave
// end is closed, which some systems report as an error rather than io.EOF.
func readTTYAsync(ptmx *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		var sb strings.Builder
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			sb.Write(buf[:n])
			if err != nil {
				break
			}
		}
		ptmx.Close()
		ch <- sb.String()
	}()
	return ch
}
