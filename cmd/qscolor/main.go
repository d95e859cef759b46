// Command qscolor refines a directed, edge-weighted graph into quasi-stable
// colors: groups of nodes with nearly equal cross-group edge weight in both
// directions. It is a thin driver over the qscolor and csr packages — all
// algorithmic behavior lives there.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qscolor",
	Short: "Quasi-stable coloring of directed weighted graphs",
	Long: `qscolor partitions the nodes of a directed, edge-weighted graph into
color classes whose members carry nearly equal total edge weight toward every
other class, in both the outgoing and incoming directions. The result is a
compact summary of the graph usable for coarse-grained analysis.`,
}

func main() {
	// Cobra handles argument parsing and prints its own usage on error.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
