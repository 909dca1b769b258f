// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package inter provides the small interfaces shared between cnftools'
// occasional callers of a SAT oracle and the oracle implementation itself.
//
// This is gini's own inter package cut down to size: gini's Solvable,
// Testable, Activatable and async GoSolvable machinery exist to support
// long-running incremental search under a user-managed assumption stack.
// cnftools only ever asks an oracle a single one-shot question under one
// fresh assumption (gate.Analyzer's semantic check, spec.md §4.3's
// fSemantic), so only clause-building, one assumption at a time, and a
// single Solve survive here.
package inter

import "github.com/go-air/cnftools/z"

// Adder encapsulates something to which clauses can be added by sequences
// of z.LitNull-terminated literals.
type Adder interface {
	// Add adds a literal to the clauses. If m is z.LitNull, it
	// signals the end of a clause.
	Add(m z.Lit)
}

// Assumable encapsulates a decision procedure that can be told to assume a
// literal true for the next call to Solve. Unlike gini's own Assumable,
// assumptions here are one-shot per Solve (IPASIR's assume/solve protocol,
// spec.md §6), not a stack managed across several solves.
type Assumable interface {
	Assume(m z.Lit)
}

// Solvable encapsulates a decision procedure. Solve returns
//
//	10 if the problem is satisfiable under the current assumption
//	20 if the problem is unsatisfiable under the current assumption
//	0  if undetermined
//
// the IPASIR result codes spec.md §6 specifies.
type Solvable interface {
	Solve() int
}

// S is the minimal IPASIR-style surface cnftools needs from a SAT oracle.
type S interface {
	Adder
	Assumable
	Solvable
}
