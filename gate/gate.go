// Package gate recognizes hierarchical gate structure in a CNF: a DAG of
// definitional gates (equivalence/or/and/full-encoding) extracted by
// breadth-first exploration of candidate output literals, with monotonicity
// bookkeeping carried alongside (spec.md §3/§4.3).
//
// Ported from original_source/src/gates/GateFormula.h and GateAnalyzer.h,
// in the style of gini's small-value-type packages (z, cnf): a Gate is a
// plain struct, a Formula is a slice-backed store indexed by Var, and the
// Analyzer drives both off a cnf.Index.
package gate

import (
	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/z"
)

// Gate is the recognized definition of one output literal: Fwd are the
// clauses containing not(Out) (the "forward" direction, defining Out in
// terms of its inputs), Bwd are the clauses containing Out. Inp is the
// deduplicated, sorted union of input literals across Fwd. NotMono is true
// when Out was accepted under a non-monotonic context, meaning
// Formula.GetPrunedProblem must also emit Bwd (blocked-clause elimination no
// longer applies once a gate is reachable through both polarities).
type Gate struct {
	Out     z.Lit
	Fwd     []cnf.Clause
	Bwd     []cnf.Clause
	NotMono bool
	Inp     []z.Lit
}

// IsDefined reports whether this Gate slot holds a recognized gate.
func (g *Gate) IsDefined() bool { return g.Out != z.LitNull }

// HasNonMonotonicParent mirrors GateFormula.h's Gate::hasNonMonotonicParent.
func (g *Gate) HasNonMonotonicParent() bool { return g.NotMono }
