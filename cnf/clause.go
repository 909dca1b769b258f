// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package cnf provides the CNF storage contract of spec.md §3/§4.1: a
// single, opaque-enough clause/formula representation plus the occurrence
// index gate.Analyzer and wlhash.Hasher are built on.
//
// This is new code, grounded on original_source/src/util/CNFFormula.h for
// the parse-time dedup/tautology-elimination semantics, and on gini's
// z.Lit/z.Var for the literal encoding underneath it.
package cnf

import (
	"sort"

	"github.com/go-air/cnftools/z"
)

// Clause is a finite, duplicate-free, tautology-free, sorted sequence of
// literals (spec.md §3). A Clause is immutable once built: Formula.AddClause
// (which Builder.Add calls) normalizes every clause it stores, enforcing
// the invariant.
type Clause []z.Lit

// Len returns the number of literals, in O(1).
func (c Clause) Len() int { return len(c) }

// At returns the i'th literal, in O(1).
func (c Clause) At(i int) z.Lit { return c[i] }

// Contains reports whether l occurs in c. c must be sorted, which it always
// is for a Clause obtained from a Formula.
func (c Clause) Contains(l z.Lit) bool {
	i := sort.Search(len(c), func(i int) bool { return c[i] >= l })
	return i < len(c) && c[i] == l
}

// normalizeClause sorts ms, removes duplicate literals, and reports whether
// the clause is a tautology (contains both x and not(x) for some variable).
// Mirrors CNFFormula.h's readClause: sort, unique by literal, then unique by
// variable to detect a tautology.
func normalizeClause(ms []z.Lit) (Clause, bool) {
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
	j := 0
	for i, m := range ms {
		if i == 0 || ms[j-1] != m {
			ms[j] = m
			j++
		}
	}
	ms = ms[:j]
	for i := 1; i < len(ms); i++ {
		if ms[i-1].Var() == ms[i].Var() {
			return nil, true
		}
	}
	return Clause(ms), false
}
