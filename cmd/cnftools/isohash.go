package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-air/cnftools/internal/analysis"
	"github.com/go-air/cnftools/wlhash"
)

var isohashCfg = wlhash.DefaultConfig()

var isohashCmd = &cobra.Command{
	Use:   "isohash [file.cnf|file.cnf.gz|-]",
	Short: "Compute the Weisfeiler-Leman isomorphism-invariant hash of a CNF",
	Args:  cobra.ExactArgs(1),
	RunE:  runIsohash,
}

func init() {
	f := isohashCmd.Flags()
	f.IntVar(&isohashCfg.Depth, "depth", isohashCfg.Depth, "half-iteration budget")
	f.BoolVar(&isohashCfg.CrossReferenceLiterals, "cross-reference", isohashCfg.CrossReferenceLiterals, "fold each variable's two polarities together every iteration")
	f.BoolVar(&isohashCfg.RehashClauses, "rehash-clauses", isohashCfg.RehashClauses, "rehash a clause's combined color before folding it into its literals")
	f.BoolVar(&isohashCfg.OptimizeFirstIteration, "optimize-first-iteration", isohashCfg.OptimizeFirstIteration, "use clause size in place of a full clause hash on the first iteration")
	f.IntVar(&isohashCfg.FirstProgressCheckIteration, "first-progress-check", isohashCfg.FirstProgressCheckIteration, "first iteration at which convergence is checked")
	f.BoolVar(&isohashCfg.ReturnMeasurements, "measurements", isohashCfg.ReturnMeasurements, "append parse/compute timings and iteration count to the digest")
	f.BoolVar(&isohashCfg.UsePrimeRing, "prime-ring", isohashCfg.UsePrimeRing, "combine colors modulo the largest prime below 2^64 instead of end-around-carry uint64 addition")
	f.BoolVar(&isohashCfg.UseXXH3, "xxh3", isohashCfg.UseXXH3, "use xxHash (XXH64) instead of truncated MD5 as the scalar hash algorithm")
}

func runIsohash(cmd *cobra.Command, args []string) error {
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

	digest, err := sess.Isohash(isohashCfg)
	if err != nil {
		return err
	}
	fmt.Println(digest)
	return nil
}
