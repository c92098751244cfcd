// Command crossgen is the CLI front end for the layout engine: generate
// a puzzle from a list of entries, validate an entries file against the
// normalizer, report stats on an already-generated layout, convert
// between export formats, or suggest (word, clue) pairs from a theme.
package main

import (
	"fmt"
	"os"

	"github.com/xwordgen/engine/cmd/crossgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
