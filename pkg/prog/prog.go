// Package prog provides the entry point to command-line programs. It parses
// the common flags and runs a Program with them.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"src.persist.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[prog] ")

// Flags keeps command-line flags.
type Flags struct {
	Log string

	Help, JSON bool

	// Color is one of "auto", "always" and "never".
	Color string
	// Hash names the hash algorithm for keys: "djb" or "stub".
	Hash string
}

// Possible values of Flags.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Possible values of Flags.Hash.
const (
	HashDJB  = "djb"
	HashStub = "stub"
)

func newFlagSet(name string, f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON")
	fs.StringVar(&f.Color, "color", ColorAuto,
		"when to colorize output: auto, always or never")
	fs.StringVar(&f.Hash, "hash", HashDJB,
		"how to hash keys: djb, or stub to use the hash field of each entry")

	return fs
}

func usage(out io.Writer, name string, fs *flag.FlagSet) {
	fmt.Fprintf(out, "Usage: %s [flags] [file]\n", name)
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the program. It returns the exit
// status of the program: 0 on success, 2 for bad usage and 1 for other
// errors.
func Run(fds [3]*os.File, args []string, p Program) int {
	name := filepath.Base(args[0])
	f := &Flags{}
	fs := newFlagSet(name, f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h was requested but
			// not defined. Treat it like any other undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], name, fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}
	logger.Printf("running %s with args %q", name, args[1:])

	if f.Help {
		usage(fds[1], name, fs)
		return 0
	}

	err = checkFlags(f)
	if err == nil {
		err = p.Run(fds, f, fs.Args())
	}
	if err == nil {
		return 0
	}
	logger.Println("program returned error:", err)
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	var exit exitError
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], name, fs)
		return 2
	case errors.As(err, &exit):
		return exit.exit
	}
	return 1
}

func checkFlags(f *Flags) error {
	switch f.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return BadUsage(fmt.Sprintf("invalid value for -color: %q", f.Color))
	}
	switch f.Hash {
	case HashDJB, HashStub:
	default:
		return BadUsage(fmt.Sprintf("invalid value for -hash: %q", f.Hash))
	}
	return nil
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
