// Command wgslhost runs a single-file WGSL game: it preprocesses the
// extended dialect, loads its declared assets, and drives the Frame
// Scheduler until the window closes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wgslhost",
		Short: "Host runtime for single-file WGSL games",
	}
	root.AddCommand(newRunCmd())
	return root
}
