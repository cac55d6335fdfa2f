// interleave-verify checks that a MIMO sample-stream codec interleaves and
// deinterleaves fixed-format sample buffers correctly.
//
// With no arguments it runs the standard scenario suite (1- and 2-channel
// layouts, with and without metadata headers) against the reference codec
// and exits nonzero at the first failing scenario.
//
// Usage:
//
//	interleave-verify                 # run the standard suite
//	interleave-verify -v              # per-word diagnostics and buffer dumps
//	interleave-verify -q              # failures only
//	interleave-verify --config x.yaml # custom scenario list
package main

import (
	"os"

	"github.com/sdrlab/go-interleave/cmd/interleave-verify/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
