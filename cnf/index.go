package cnf

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/go-air/cnftools/z"
)

// Index is an occurrence index over a Formula: for each literal, which
// clauses (by position in the Formula) mention it. gate.Analyzer's BFS
// needs fast "clauses containing literal l" lookups; original_source kept the analogous structure inside
// its OccurrenceList, which was not retrieved with the rest of the pack, so
// this is built directly against spec.md §4.2's stated contract
// (IsBlockedSet, EstimateRoots, Remove) instead of a ported header.
type Index struct {
	formula *Formula
	occ     [][]int        // occ[lit] = clause indices containing lit, in insertion order
	alive   *bitset.BitSet // alive.Test(clauseIdx)
	order   []int          // insertion order of every indexed clause index (removed ones included), for EstimateRoots
	seen    int            // number of entries of order already scanned by a previous EstimateRoots call
}

// NewIndex builds an occurrence index over every clause currently in f.
// The index is a snapshot: clauses added to f after NewIndex returns are not
// tracked.
func NewIndex(f *Formula) *Index {
	nl := 2 * (f.nVars + 1)
	ix := &Index{
		formula: f,
		occ:     make([][]int, nl),
		alive:   bitset.New(uint(f.NClauses())),
	}
	for i, c := range f.clauses {
		ix.alive.Set(uint(i))
		ix.order = append(ix.order, i)
		for _, m := range c {
			ix.occ[m] = append(ix.occ[m], i)
		}
	}
	return ix
}

// Occ returns the (alive) clause indices in f mentioning literal l.
func (ix *Index) Occ(l z.Lit) []int {
	out := make([]int, 0, len(ix.occ[l]))
	for _, ci := range ix.occ[l] {
		if ix.alive.Test(uint(ci)) {
			out = append(out, ci)
		}
	}
	return out
}

// NOcc returns the number of alive clauses mentioning l, without allocating.
func (ix *Index) NOcc(l z.Lit) int {
	n := 0
	for _, ci := range ix.occ[l] {
		if ix.alive.Test(uint(ci)) {
			n++
		}
	}
	return n
}

// IsBlockedSet reports whether o is blocked with respect to the index:
// every pair (c in occ(not(o)), d in occ(o)) resolves to a tautology on some
// variable other than var(o) (spec.md §4.2 / §9 "Blocked set on o"). An
// empty occ(o) or occ(not(o)) trivially satisfies the universal quantifier.
func (ix *Index) IsBlockedSet(o z.Lit) bool {
	no := o.Not()
	for _, pi := range ix.occ[o] {
		if !ix.alive.Test(uint(pi)) {
			continue
		}
		pc := ix.formula.clauses[pi]
		for _, ni := range ix.occ[no] {
			if !ix.alive.Test(uint(ni)) {
				continue
			}
			nc := ix.formula.clauses[ni]
			if !resolventIsTautology(pc, nc, o) {
				return false
			}
		}
	}
	return true
}

// resolventIsTautology reports whether resolving pc (containing o) with nc
// (containing not(o)) on o produces a tautology, i.e. pc and nc share some
// other complementary pair with a variable other than var(o).
func resolventIsTautology(pc, nc Clause, o z.Lit) bool {
	for _, m := range pc {
		if m == o {
			continue
		}
		if nc.Contains(m.Not()) {
			return true
		}
	}
	return false
}

// EstimateRoots returns the clause indices not yet handed out by a previous
// call whose literals do not yet appear as inputs elsewhere (spec.md §4.2):
// candidates for the current top level of gate recognition. usedAsInput
// reports whether a literal has already been recorded as some recognized
// gate's input; a clause mentioning one is not a fresh root; its defining
// structure has already been explained by that gate. Remove deletes every
// clause mentioning a gated variable, so combined with the used-as-input
// filter, a clause returned here is genuinely unexplained by anything
// extracted so far. Each clause is scanned by at most one call: the call
// moves past every clause it scanned, returned or filtered out, and the
// index is a snapshot, so once one call has run, later calls return no
// clauses and a clause is never offered twice.
func (ix *Index) EstimateRoots(usedAsInput func(z.Lit) bool) []int {
	var roots []int
	for _, ci := range ix.order[ix.seen:] {
		if !ix.alive.Test(uint(ci)) {
			continue
		}
		c := ix.formula.clauses[ci]
		fresh := true
		for _, l := range c {
			if usedAsInput(l) {
				fresh = false
				break
			}
		}
		if fresh {
			roots = append(roots, ci)
		}
	}
	ix.seen = len(ix.order)
	return roots
}

// Remove deletes every alive clause mentioning variable v's literals (both
// polarities), as GateAnalyzer.h's gate-recognition loop does once it has
// explained v via a gate: v's defining clauses must not be offered again as
// unexplained root material.
func (ix *Index) Remove(v z.Var) {
	for _, l := range [2]z.Lit{v.Pos(), v.Neg()} {
		for _, ci := range ix.occ[l] {
			ix.alive.Clear(uint(ci))
		}
	}
}

// Alive reports whether clause index ci is still present in the index.
func (ix *Index) Alive(ci int) bool { return ix.alive.Test(uint(ci)) }

// Formula returns the formula this index was built over.
func (ix *Index) Formula() *Formula { return ix.formula }
