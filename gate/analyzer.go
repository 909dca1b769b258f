package gate

import (
	"math"
	"sort"

	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/oracle"
	"github.com/go-air/cnftools/z"
)

// Options configures an Analyzer run, mirroring GateAnalyzer.h's
// constructor parameters (patterns, semantic, tries).
type Options struct {
	// Patterns enables fPattern, the syntactic equivalence/or/and/full-
	// encoding recognizer.
	Patterns bool
	// Semantic enables fSemantic, the SAT-oracle-backed recognizer.
	Semantic bool
	// MaxPasses bounds how many times analyze() re-derives root clauses
	// from the index (GateAnalyzer.h's `max`).
	MaxPasses int
}

// Analyzer performs hierarchical gate recognition over a cnf.Formula,
// producing a Formula of recognized gates. Ported from GateAnalyzer.h.
type Analyzer struct {
	problem  *cnf.Formula
	index    *cnf.Index
	out      *Formula
	opts     Options
	solver   oracle.Solver
	freshVar z.Var
}

// NewAnalyzer builds an Analyzer over problem. If opts.Semantic is set, a
// fresh oracle.Solver is created for fSemantic's one-shot queries; it stays
// allocated until the caller calls Release (Analyze does not release it).
func NewAnalyzer(problem *cnf.Formula, opts Options) *Analyzer {
	a := &Analyzer{
		problem: problem,
		index:   cnf.NewIndex(problem),
		out:     NewFormula(problem.NVars()),
		opts:    opts,
	}
	if opts.Semantic {
		a.solver = oracle.New()
	}
	a.freshVar = z.Var(problem.NVars())
	return a
}

// Release frees resources held by the analyzer's SAT oracle, if any.
func (a *Analyzer) Release() {
	if a.solver != nil {
		a.solver.Release()
		a.solver = nil
	}
}

// Formula returns the gate formula built so far.
func (a *Analyzer) Formula() *Formula { return a.out }

// Analyze runs the full state machine of spec.md §4.3: repeatedly pull
// root clauses from the index, explain as many of their literals as
// possible as gates via a breadth-first frontier, and on convergence or
// exhausted passes, collect whatever is left in the index as Remainder.
//
// Root-clause literals are not marked used-as-input here: a root clause's
// own literals are exactly the candidates gateRecognition is about to test
// as gate outputs, so pre-marking them would make every candidate look
// non-monotonic before isGate ever runs. usedAsInput bookkeeping is left
// entirely to AddGate, which marks a gate's actual inputs once recognition
// succeeds (spec.md §8 "Monotonicity bookkeeping").
func (a *Analyzer) Analyze() {
	roots := a.index.EstimateRoots(a.out.IsUsedAsInput)

	for pass := 0; pass < a.opts.MaxPasses && len(roots) > 0; pass++ {
		var candidates []z.Lit
		for _, ci := range roots {
			c := a.problem.Clause(ci)
			cc := make(cnf.Clause, len(c))
			copy(cc, c)
			a.out.Roots = append(a.out.Roots, cc)
			candidates = append(candidates, c...)
		}

		a.gateRecognition(candidates)

		roots = a.index.EstimateRoots(a.out.IsUsedAsInput)
	}

	var remainder []cnf.Clause
	for i := 0; i < a.problem.NClauses(); i++ {
		if a.index.Alive(i) {
			c := a.problem.Clause(i)
			cc := make(cnf.Clause, len(c))
			copy(cc, c)
			remainder = append(remainder, cc)
		}
	}
	a.out.Remainder = remainder
}

// gateRecognition is the inner breadth-first pass: starting from roots,
// repeatedly test each pending candidate output literal for gate-hood and,
// on success, add its inputs to the next frontier. Breadth-first (rather
// than depth-first) matters here: it guarantees every candidate is tested
// under the monotonicity information available from the *current* pass
// before any of its inputs are explored, which is what keeps
// IsNestedMonotonic's bookkeeping sound.
func (a *Analyzer) gateRecognition(roots []z.Lit) {
	frontier := append([]z.Lit(nil), roots...)

	for len(frontier) > 0 {
		candidates := frontier
		frontier = nil

		sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
		candidates = uniqueLits(candidates)

		for _, candidate := range candidates {
			if a.isGate(candidate) {
				frontier = append(frontier, a.out.GetGate(candidate).Inp...)
			}
		}
		sort.Slice(frontier, func(i, j int) bool { return frontier[i] < frontier[j] })
	}
}

func uniqueLits(ls []z.Lit) []z.Lit {
	j := 0
	for i, l := range ls {
		if i == 0 || ls[j-1] != l {
			ls[j] = l
			j++
		}
	}
	return ls[:j]
}

// isGate tests whether out has a gate definition still present in the
// index, and if so records it and removes its defining clauses from the
// index. Mirrors GateAnalyzer.h's isGate.
func (a *Analyzer) isGate(out z.Lit) bool {
	no := out.Not()
	if a.index.NOcc(no) == 0 || !a.index.IsBlockedSet(out) {
		return false
	}
	fwd := a.clausesOf(no)
	bwd := a.clausesOf(out)
	monotonic := a.out.IsNestedMonotonic(out)

	if monotonic ||
		(a.opts.Patterns && a.fPattern(out, fwd, bwd)) ||
		(a.opts.Semantic && a.fSemantic(out, fwd, bwd)) {
		a.out.AddGate(out, fwd, bwd)
		a.index.Remove(out.Var())
		return true
	}
	return false
}

func (a *Analyzer) clausesOf(l z.Lit) []cnf.Clause {
	idxs := a.index.Occ(l)
	cs := make([]cnf.Clause, len(idxs))
	for i, ci := range idxs {
		c := a.problem.Clause(ci)
		cc := make(cnf.Clause, len(c))
		copy(cc, c)
		cs[i] = cc
	}
	return cs
}

// fPattern implements the syntactic gate patterns of spec.md §4.3, given
// that fwd already blocks bwd on o (isGate's precondition). I+ and I- are
// the variables occurring in fwd (excluding not(o)) and bwd (excluding o)
// respectively; a pattern match first requires I+ == I-.
func (a *Analyzer) fPattern(o z.Lit, fwd, bwd []cnf.Clause) bool {
	no := o.Not()
	fwdInp := varSet(fwd, no)
	bwdInp := varSet(bwd, o)
	if !sameVarSet(fwdInp, bwdInp) {
		return false
	}

	// (a) equivalence gate
	if len(fwd) == 1 && len(bwd) == 1 && len(fwd[0]) == 2 && len(bwd[0]) == 2 {
		return true
	}
	// (b) or-gate
	if len(fwd) == 1 && fixedClauseSize(bwd, 2) {
		return true
	}
	// (c) and-gate
	if len(bwd) == 1 && fixedClauseSize(fwd, 2) {
		return true
	}
	// (d) full DNF/CNF encoding: 2^(k-1) clauses of size k+1 in each of fwd
	// and bwd, together forming both polarities of every input. Implemented
	// per spec.md's stated formula (|fwd|=|bwd|=2^(k-1)), not the
	// inconsistent `2*fwd.size() == pow(2, fwd_inp.size()/2)` carried by the
	// C++ source (see DESIGN.md).
	k := len(fwdInp)
	if k > 0 && len(fwd) == len(bwd) && len(fwd) == pow2(k-1) {
		fwdLits := make(map[z.Lit]bool)
		for _, c := range fwd {
			for _, l := range c {
				if l != no {
					fwdLits[l] = true
				}
			}
		}
		return 2*k == len(fwdLits)
	}
	return false
}

func pow2(n int) int {
	return int(math.Round(math.Pow(2, float64(n))))
}

func varSet(cs []cnf.Clause, exclude z.Lit) map[z.Var]bool {
	s := make(map[z.Var]bool)
	for _, c := range cs {
		for _, l := range c {
			if l != exclude {
				s[l.Var()] = true
			}
		}
	}
	return s
}

func sameVarSet(a, b map[z.Var]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

func fixedClauseSize(cs []cnf.Clause, n int) bool {
	for _, c := range cs {
		if len(c) != n {
			return false
		}
	}
	return true
}

// fSemantic implements the SAT-backed gate check of spec.md §4.3: build the
// conjunction of fwd and bwd with every occurrence of o/not(o) forced to the
// positive literal of a fresh substitution variable o', assume not(o'), and
// query the oracle. If that's UNSAT, fwd/bwd can't be satisfied with o false
// while playing the role o plays in them, i.e. o's value is forced by the
// inputs: o is a gate.
//
// GateAnalyzer.h's C++ reuses var(o) itself as the substitution target
// rather than a fresh variable, and keeps one SAT oracle instance alive
// across every probe in the run (clauses are never retracted). Combined,
// that means a later probe on an unrelated candidate can still carry unit
// clauses left over from var(o) by an earlier probe, since var(o) is a real
// variable of the problem and can recur in later clause sets. This Go port
// allocates a genuinely fresh variable per probe, matching spec.md's stated
// contract and avoiding that cross-probe contamination.
//
// GateAnalyzer.h's C++ also leaves the final ipasir_add(S, Lit(o.var(),
// false)) call un-terminated (no trailing 0), so the next probe's first
// clause silently absorbs it. This Go port always finishes a clause with
// z.LitNull before the next Solve.
func (a *Analyzer) fSemantic(o z.Lit, fwd, bwd []cnf.Clause) bool {
	a.freshVar++
	sub := a.freshVar
	ov := o.Var()
	for _, group := range [2][]cnf.Clause{fwd, bwd} {
		for _, c := range group {
			for _, l := range c {
				if l.Var() != ov {
					a.solver.Add(l)
				} else {
					a.solver.Add(sub.Pos())
				}
			}
			a.solver.Add(z.LitNull)
		}
	}
	a.solver.Assume(sub.Neg())
	result := a.solver.Solve()
	return result == 20
}
