// Package oracle provides a compact IPASIR-style incremental SAT solver:
// the "opaque oracle" collaborator spec.md §6 leaves unspecified beyond its
// init/add/assume/solve/release protocol and result codes.
//
// gate.Analyzer's fSemantic is the only caller in this module, and it only
// ever asks one question per probe (assert one fresh assumption literal,
// solve, read back SAT/UNSAT) — it never needs the incremental search,
// clause learning, or restart machinery a general-purpose solver carries.
// So unlike gini's own CDCL engine (internal/xo, built for the hard case of
// searching large industrial instances), this is deliberately a small
// DPLL-style solver: unit propagation plus backtracking over a naive
// clause-literal scan, structured after the decision/propagate/backtrack
// split of EricR-saturday's solver package, without its watched-literal
// indexing, VSIDS heuristics, or clause deletion — none of which pay for
// themselves at this module's scale and call pattern.
package oracle

import (
	"github.com/go-air/cnftools/inter"
	"github.com/go-air/cnftools/z"
)

// Result codes, per IPASIR (spec.md §6).
const (
	Unknown = 0
	Sat     = 10
	Unsat   = 20
)

// Solver is the minimal IPASIR-style surface an oracle exposes: inter.S's
// Add/Assume/Solve trio, plus Release to free whatever the concrete
// implementation allocated.
type Solver interface {
	inter.S
	// Release frees any resources held by the solver.
	Release()
}

type clause []z.Lit

// dpll is a compact incremental SAT oracle: a clause database plus a
// recursive DPLL search (unit propagation, then split on an unassigned
// variable) re-run from scratch on every Solve call with the current
// assumptions as additional forced units. This trades search-state reuse
// across calls for simplicity, which is the right trade at the scale
// gate.Analyzer calls it: one small constraint system per candidate gate.
type dpll struct {
	clauses []clause
	buf     clause
	assumed []z.Lit
	nVars   int

	assign []int8 // 0 unassigned, 1 true, -1 false; indexed by Var
	trail  []z.Var
}

// New returns a fresh oracle with an empty clause database.
func New() Solver {
	return &dpll{assign: make([]int8, 1)}
}

func (d *dpll) Add(m z.Lit) {
	if m == z.LitNull {
		cl := make(clause, len(d.buf))
		copy(cl, d.buf)
		d.clauses = append(d.clauses, cl)
		d.buf = d.buf[:0]
		return
	}
	d.buf = append(d.buf, m)
	d.growTo(m.Var())
}

func (d *dpll) Assume(m z.Lit) {
	d.assumed = append(d.assumed, m)
	d.growTo(m.Var())
}

func (d *dpll) growTo(v z.Var) {
	for int(v) >= len(d.assign) {
		d.assign = append(d.assign, 0)
	}
	if int(v) > d.nVars {
		d.nVars = int(v)
	}
}

func (d *dpll) Release() {
	d.clauses = nil
	d.buf = nil
	d.assumed = nil
	d.assign = nil
	d.trail = nil
}

// Solve runs DPLL search over the clause database plus one forced unit per
// assumed literal, then clears the assumption list (IPASIR assumptions are
// one-shot: §6 "the formula is never retracted; each probe is independent
// under assumption").
func (d *dpll) Solve() int {
	for i := range d.assign {
		d.assign[i] = 0
	}
	d.trail = d.trail[:0]

	for _, m := range d.assumed {
		if !d.assignLit(m) {
			d.assumed = d.assumed[:0]
			return Unsat
		}
	}
	d.assumed = d.assumed[:0]

	if !d.propagate() {
		return Unsat
	}
	if d.search() {
		return Sat
	}
	return Unsat
}

func (d *dpll) litValue(m z.Lit) int8 {
	a := d.assign[m.Var()]
	if a == 0 {
		return 0
	}
	if m.IsPos() {
		return a
	}
	return -a
}

func (d *dpll) assignLit(m z.Lit) bool {
	cur := d.litValue(m)
	if cur != 0 {
		return cur > 0
	}
	if m.IsPos() {
		d.assign[m.Var()] = 1
	} else {
		d.assign[m.Var()] = -1
	}
	d.trail = append(d.trail, m.Var())
	return true
}

// propagate repeatedly scans clauses for units and forces them, returning
// false on conflict.
func (d *dpll) propagate() bool {
	for {
		progressed := false
		for _, c := range d.clauses {
			status, unit := d.clauseStatus(c)
			switch status {
			case clauseFalse:
				return false
			case clauseUnit:
				if !d.assignLit(unit) {
					return false
				}
				progressed = true
			}
		}
		if !progressed {
			return true
		}
	}
}

const (
	clauseSat = iota
	clauseFalse
	clauseUnit
	clauseUndetermined
)

// clauseStatus reports whether c is satisfied, falsified, unit (returning
// the forced literal), or undetermined.
func (d *dpll) clauseStatus(c clause) (int, z.Lit) {
	unassignedCount := 0
	var last z.Lit
	for _, m := range c {
		v := d.litValue(m)
		if v > 0 {
			return clauseSat, z.LitNull
		}
		if v == 0 {
			unassignedCount++
			last = m
		}
	}
	if unassignedCount == 0 {
		return clauseFalse, z.LitNull
	}
	if unassignedCount == 1 {
		return clauseUnit, last
	}
	return clauseUndetermined, z.LitNull
}

// search performs DPLL case-split: pick the first unassigned variable, try
// it true then false, propagating after each guess and backtracking to the
// pre-guess trail length on conflict.
func (d *dpll) search() bool {
	v := d.pickUnassigned()
	if v == 0 {
		return d.allSatisfied()
	}
	for _, val := range [2]int8{1, -1} {
		mark := len(d.trail)
		d.assign[v] = val
		d.trail = append(d.trail, v)
		if d.propagate() && d.search() {
			return true
		}
		d.undoTo(mark)
	}
	return false
}

func (d *dpll) undoTo(mark int) {
	for i := mark; i < len(d.trail); i++ {
		d.assign[d.trail[i]] = 0
	}
	d.trail = d.trail[:mark]
}

func (d *dpll) pickUnassigned() z.Var {
	for v := 1; v <= d.nVars; v++ {
		if d.assign[v] == 0 {
			return z.Var(v)
		}
	}
	return 0
}

func (d *dpll) allSatisfied() bool {
	for _, c := range d.clauses {
		status, _ := d.clauseStatus(c)
		if status != clauseSat {
			return false
		}
	}
	return true
}
