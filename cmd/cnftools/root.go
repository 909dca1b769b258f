package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "cnftools",
	Short: "Static analysis of CNF SAT formulas",
	Long: `cnftools computes isomorphism-invariant fingerprints ("isohashes") of a
CNF's literal hypergraph via Weisfeiler-Leman color refinement, and
extracts the hierarchical gate structure (AND/OR/equivalence/full-encoding
definitions) a CNF encodes.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress logging")
	rootCmd.AddCommand(isohashCmd)
	rootCmd.AddCommand(gatesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
