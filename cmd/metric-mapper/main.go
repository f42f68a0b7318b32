// Package main provides the CLI entrypoint for metric-mapper.
//
// metric-mapper edits the mapping file that tells the city renderer which
// source-code metric drives which building attribute:
//   - matrix prints which metric kinds can feed which attribute kinds
//   - edit binds metrics and resources to attribute slots and saves the file
//   - suggest ranks the metrics that fit an attribute slot
//   - check validates an existing mapping file
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
