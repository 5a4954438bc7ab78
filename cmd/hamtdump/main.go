// Hamtdump reads key/value entries from a YAML file, puts them into a
// persistent hash map, and shows the hash trie that holds them.
package main

import (
	"os"

	"src.persist.sh/pkg/dump"
	"src.persist.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, dump.Program{}))
}
