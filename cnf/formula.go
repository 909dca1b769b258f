package cnf

import (
	"fmt"
	"sort"

	"github.com/go-air/cnftools/z"
)

// Formula is an in-memory CNF: a sequence of clauses plus the variable
// count they range over. Grounded on original_source/src/util/CNFFormula.h;
// a Formula is what that header calls a CNFFormula once fully read.
type Formula struct {
	clauses []Clause
	nVars   int
}

// NewFormula returns an empty formula.
func NewFormula() *Formula {
	return &Formula{}
}

// NVars returns the number of variables in use: the highest variable index
// seen in any clause, per CNFFormula.h's nVars().
func (f *Formula) NVars() int { return f.nVars }

// NClauses returns the number of clauses stored. Tautologies encountered
// while building are dropped and so are not counted (CNFFormula.h's
// readClause skips them outright).
func (f *Formula) NClauses() int { return len(f.clauses) }

// Clause returns the i'th clause.
func (f *Formula) Clause(i int) Clause { return f.clauses[i] }

// Clauses calls fn for each clause in insertion order, stopping early if fn
// returns false.
func (f *Formula) Clauses(fn func(i int, c Clause) bool) {
	for i, c := range f.clauses {
		if !fn(i, c) {
			return
		}
	}
}

// NewVar allocates and returns a fresh variable beyond the current range,
// mirroring CNFFormula.h's newVar(). gate.Analyzer does not call it: its
// semantic check numbers substitution variables with its own counter.
func (f *Formula) NewVar() z.Var {
	f.nVars++
	return z.Var(f.nVars)
}

// AddClause appends ms as a new clause after normalizing it (sort, dedup,
// tautology check). It reports whether the clause was kept; a tautological
// or empty clause is silently dropped, matching CNFFormula.h's readClause
// (a bare `0` terminator with nothing before it contributes no clause). ms
// is consumed (its backing array may be reordered and truncated); callers
// that still need the original should pass a copy.
func (f *Formula) AddClause(ms []z.Lit) bool {
	c, taut := normalizeClause(ms)
	if taut || len(c) == 0 {
		return false
	}
	for _, m := range c {
		if v := int(m.Var()); v > f.nVars {
			f.nVars = v
		}
	}
	f.clauses = append(f.clauses, c)
	return true
}

// Builder accumulates clauses read from a dimacs.CnfVis-driven parse into a
// Formula. It implements dimacs.CnfVis.
type Builder struct {
	formula *Formula
	buf     []z.Lit
}

// NewBuilder returns a Builder that fills in f as clauses are added. If f is
// nil, a fresh Formula is allocated.
func NewBuilder(f *Formula) *Builder {
	if f == nil {
		f = NewFormula()
	}
	return &Builder{formula: f}
}

// Init implements dimacs.CnfVis. v and c are hints for preallocation.
func (b *Builder) Init(v, c int) {
	if cap(b.formula.clauses) < c {
		cls := make([]Clause, 0, c)
		cls = append(cls, b.formula.clauses...)
		b.formula.clauses = cls
	}
	b.buf = make([]z.Lit, 0, 16)
}

// Add implements dimacs.CnfVis: m == z.LitNull ends the current clause.
func (b *Builder) Add(m z.Lit) {
	if m == z.LitNull {
		ms := make([]z.Lit, len(b.buf))
		copy(ms, b.buf)
		b.formula.AddClause(ms)
		b.buf = b.buf[:0]
		return
	}
	b.buf = append(b.buf, m)
}

// Eof implements dimacs.CnfVis.
func (b *Builder) Eof() {}

// Formula returns the formula built so far.
func (b *Builder) Formula() *Formula { return b.formula }

// NormalizeVariableNames remaps variables to a dense range 1..k in order of
// first appearance, as original_source/src/util/CNFFormula.h's
// normalizeVariableNames does. It returns the new formula and, for
// diagnostics, the number of variables eliminated (those never mentioned in
// any clause).
func (f *Formula) NormalizeVariableNames() (*Formula, int) {
	names := make([]z.Var, f.nVars+1)
	next := z.Var(0)
	out := NewFormula()
	for _, c := range f.clauses {
		nc := make(Clause, len(c))
		for i, m := range c {
			v := m.Var()
			nv := names[v]
			if nv == 0 {
				next++
				names[v] = next
				nv = next
			}
			if m.IsPos() {
				nc[i] = nv.Pos()
			} else {
				nc[i] = nv.Neg()
			}
		}
		sort.Slice(nc, func(i, j int) bool { return nc[i] < nc[j] })
		out.clauses = append(out.clauses, nc)
	}
	out.nVars = int(next)
	eliminated := f.nVars - int(next)
	return out, eliminated
}

func (f *Formula) String() string {
	return fmt.Sprintf("cnf.Formula{vars:%d clauses:%d}", f.nVars, len(f.clauses))
}
