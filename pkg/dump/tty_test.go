//go:build !windows

package dump_test

import (
	"strings"
	"testing"

	"src.persist.sh/pkg/dump"
	"src.persist.sh/pkg/prog/progtest"
)

const longEntry = "long: abcdefghijklmnopqrstuvwxyz0123456789\n"

func TestText_Terminal(t *testing.T) {
	// The value starts at column 57 (header, key and "="), leaving 23 columns.
	exit, stdout, stderr := progtest.RunOnTTY(dump.Program{}, 24, 80, longEntry, "hamtdump")
	if exit != 0 {
		t.Fatalf("exit %d, stderr %q", exit, stderr)
	}
	for _, want := range []string{
		"\033[32mlong\033[m=abcdefghijklmnopqrstuv…\n",
		"order: \033[32mlong\033[m\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout %q does not contain %q", stdout, want)
		}
	}
}

func TestText_TerminalWithoutColor(t *testing.T) {
	_, stdout, _ := progtest.RunOnTTY(dump.Program{}, 24, 80, longEntry, "hamtdump", "-color", "never")
	if strings.Contains(stdout, "\033[") {
		t.Errorf("stdout %q has escape sequences", stdout)
	}
	if !strings.Contains(stdout, " long=abcdefghijklmnopqrstuv…\n") {
		t.Errorf("stdout %q does not have the truncated value", stdout)
	}
}

func TestText_NarrowTerminal(t *testing.T) {
	// Values keep at least 8 columns however narrow the terminal is.
	_, stdout, _ := progtest.RunOnTTY(dump.Program{}, 24, 20, longEntry, "hamtdump", "-color", "never")
	if !strings.Contains(stdout, "long=abcdefg…\n") {
		t.Errorf("stdout %q does not have the value cut to 8 columns", stdout)
	}
}
