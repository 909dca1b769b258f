package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-air/cnftools/gate"
	"github.com/go-air/cnftools/internal/analysis"
)

var gatesOpts = gate.Options{Patterns: true, Semantic: false, MaxPasses: 16}

var gatesCmd = &cobra.Command{
	Use:   "gates [file.cnf|file.cnf.gz|-]",
	Short: "Extract and report the hierarchical gate structure of a CNF",
	Long: `gates runs hierarchical gate recognition over a CNF and reports
recognized-gate statistics, the way original_source's "gates" tool mode
prints GateFormula::printGates' summary: number of gates, how many are
monotonic, number of root clauses, and the size of what's left
unexplained.`,
	Args: cobra.ExactArgs(1),
	RunE: runGates,
}

func init() {
	f := gatesCmd.Flags()
	f.BoolVar(&gatesOpts.Patterns, "patterns", gatesOpts.Patterns, "recognize gates via syntactic pattern matching")
	f.BoolVar(&gatesOpts.Semantic, "semantic", gatesOpts.Semantic, "recognize gates via a SAT-oracle-backed semantic check")
	f.IntVar(&gatesOpts.MaxPasses, "max-passes", gatesOpts.MaxPasses, "maximum number of outer analysis passes")
}

func runGates(cmd *cobra.Command, args []string) error {
	log := newLogger(quiet)

	parseStart := time.Now()
	r, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	sess, err := analysis.Open(r)
	if err != nil {
		return err
	}
	defer sess.Close()
	log.Info().Msg(cLine(fmt.Sprintf("parsed %d vars, %d clauses in %s",
		sess.Formula().NVars(), sess.Formula().NClauses(), time.Since(parseStart))))

	log.Info().Msg(cLine("Starting gate-recognition..."))
	analyzeStart := time.Now()
	stats, err := sess.Gates(gatesOpts)
	if err != nil {
		return err
	}
	log.Info().Msg(cLine(fmt.Sprintf("gate-recognition finished in %s", time.Since(analyzeStart))))

	fmt.Printf("c nGates %d\n", stats.NGates)
	fmt.Printf("c nMonotonicGates %d\n", stats.NMonotonicGates)
	fmt.Printf("c nRoots %d\n", stats.NRoots)
	fmt.Printf("c remainder %d\n", stats.RemainderSize)
	return nil
}
