package gate

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/z"
)

// Formula is the gate-structure store built up by an Analyzer run: the root
// clauses, the per-literal used-as-input bitmap, one Gate slot per variable,
// the clauses left unexplained (remainder), and an optional artificial root
// introduced by NormalizeRoots. Ported from GateFormula.h.
type Formula struct {
	Roots          []cnf.Clause
	Remainder      []cnf.Clause
	gates          []Gate         // indexed by z.Var
	inputs         *bitset.BitSet // indexed by z.Lit
	artificialRoot cnf.Clause
}

// NewFormula allocates an empty gate formula over a problem with nVars
// variables. Slot 0 of gates and slots 0/1 of inputs are unused padding so
// Var/Lit values can index directly, matching GateFormula.h's "2 + nVars"
// sizing.
func NewFormula(nVars int) *Formula {
	return &Formula{
		gates:  make([]Gate, nVars+1),
		inputs: bitset.New(uint(2 * (nVars + 1))),
	}
}

// SetUsedAsInput marks l as occurring as some gate's input.
func (f *Formula) SetUsedAsInput(l z.Lit) { f.inputs.Set(uint(l)) }

// IsUsedAsInput reports whether l has been marked by SetUsedAsInput.
func (f *Formula) IsUsedAsInput(l z.Lit) bool { return f.inputs.Test(uint(l)) }

// IsNestedMonotonic reports whether l is monotonic given everything recorded
// so far: true unless both l and not(l) have been used as some gate's input.
func (f *Formula) IsNestedMonotonic(l z.Lit) bool {
	return !(f.IsUsedAsInput(l) && f.IsUsedAsInput(l.Not()))
}

// AddGate records a recognized gate for output literal o, with defining
// clauses fwd (containing not(o)) and bwd (containing o). Computes Inp as
// the sorted, deduplicated union of fwd's literals excluding not(o), then
// marks every input literal (and, if the gate is non-monotonic, its
// negation too) as used-as-input.
func (f *Formula) AddGate(o z.Lit, fwd, bwd []cnf.Clause) {
	g := &f.gates[o.Var()]
	g.Out = o
	g.Fwd = append(g.Fwd, fwd...)
	g.Bwd = append(g.Bwd, bwd...)
	g.NotMono = !f.IsNestedMonotonic(o)

	no := o.Not()
	for _, c := range fwd {
		for _, l := range c {
			if l != no {
				g.Inp = append(g.Inp, l)
			}
		}
	}
	sort.Slice(g.Inp, func(i, j int) bool { return g.Inp[i] < g.Inp[j] })
	j := 0
	for i, l := range g.Inp {
		if i == 0 || g.Inp[j-1] != l {
			g.Inp[j] = l
			j++
		}
	}
	g.Inp = g.Inp[:j]

	for _, l := range g.Inp {
		f.SetUsedAsInput(l)
		if g.NotMono {
			f.SetUsedAsInput(l.Not())
		}
	}
}

// GetGate returns the gate slot for output's variable (zero-value if none
// has been recognized yet).
func (f *Formula) GetGate(output z.Lit) *Gate {
	return &f.gates[output.Var()]
}

// IsGateOutput reports whether a gate has been recognized for output's
// variable.
func (f *Formula) IsGateOutput(output z.Lit) bool {
	return f.gates[output.Var()].IsDefined()
}

// NGates returns the number of recognized gates.
func (f *Formula) NGates() int {
	n := 0
	for i := range f.gates {
		if f.gates[i].IsDefined() {
			n++
		}
	}
	return n
}

// NMonotonicGates returns the number of recognized gates that are monotonic.
func (f *Formula) NMonotonicGates() int {
	n := 0
	for i := range f.gates {
		if f.gates[i].IsDefined() && !f.gates[i].HasNonMonotonicParent() {
			n++
		}
	}
	return n
}

// NRoots returns the number of root clauses.
func (f *Formula) NRoots() int { return len(f.Roots) }

// Stats is the summary GateFormula::printGates reports after a run: gate
// counts, root count, and how many clauses went unexplained.
type Stats struct {
	NGates          int
	NMonotonicGates int
	NRoots          int
	RemainderSize   int
}

// Stats gathers the formula's summary counts in one call, for the `gates`
// CLI subcommand and for tests.
func (f *Formula) Stats() Stats {
	return Stats{
		NGates:          f.NGates(),
		NMonotonicGates: f.NMonotonicGates(),
		NRoots:          f.NRoots(),
		RemainderSize:   len(f.Remainder),
	}
}

// GetRootLiterals returns the sorted, deduplicated union of literals across
// every root clause.
func (f *Formula) GetRootLiterals() []z.Lit {
	var lits []z.Lit
	for _, c := range f.Roots {
		lits = append(lits, c...)
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
	j := 0
	for i, l := range lits {
		if i == 0 || lits[j-1] != l {
			lits[j] = l
			j++
		}
	}
	return lits[:j]
}

// GetPrunedProblem returns the clauses "reachable" under model, a total
// Boolean assignment indexed by z.Var (model[v] true means v is assigned
// true). Traversal starts from the root literals; for each gate whose
// output is satisfied under model (or whose context is non-monotonic, so it
// can't be skipped as a don't-care), Fwd is emitted, and Bwd too if the gate
// is non-monotonic (blocked-clause elimination doesn't apply there). Each
// output variable is visited at most once. Remainder is always emitted.
//
// GateFormula.h's C++ used std::copy(..., result.end()) to append Fwd/Bwd,
// which is undefined behavior (copying into a destination range that
// doesn't exist yet); this Go port uses append throughout instead.
func (f *Formula) GetPrunedProblem(model []bool) []cnf.Clause {
	result := make([]cnf.Clause, len(f.Roots))
	copy(result, f.Roots)

	literals := f.GetRootLiterals()
	visited := make([]bool, len(f.gates))

	for len(literals) > 0 {
		o := literals[len(literals)-1]
		literals = literals[:len(literals)-1]

		g := &f.gates[o.Var()]
		if !g.IsDefined() {
			continue
		}
		v := int(o.Var())
		if !visited[v] && (g.HasNonMonotonicParent() || model[v] == o.IsPos()) {
			result = append(result, g.Fwd...)
			if g.HasNonMonotonicParent() {
				result = append(result, g.Bwd...)
			}
			literals = append(literals, g.Inp...)
			visited[v] = true
		}
	}

	result = append(result, f.Remainder...)
	return result
}

// HasArtificialRoot reports whether NormalizeRoots has been called.
func (f *Formula) HasArtificialRoot() bool { return len(f.artificialRoot) > 0 }

// GetArtificialRoot returns the unit clause introduced by NormalizeRoots.
func (f *Formula) GetArtificialRoot() cnf.Clause { return f.artificialRoot }

// GetRoot returns the sole root literal, valid only when there is exactly
// one root clause of size 1 (the post-NormalizeRoots shape).
func (f *Formula) GetRoot() z.Lit {
	if len(f.Roots) != 1 || len(f.Roots[0]) != 1 {
		panic("gate: GetRoot called on a formula without a single unit root")
	}
	return f.Roots[0][0]
}

// NormalizeRoots collapses every current root clause (plus whatever is in
// Remainder) into a single fresh AND-gate, so the formula has exactly one
// root literal afterward. Introduces one fresh variable.
//
// GateFormula.h's C++ grows `gates` by one slot for the new variable but
// never grows its fixed-size `inputs` bit-vector to match, so a later
// IsUsedAsInput/SetUsedAsInput on the new variable's literals indexes out
// of bounds. This Go port's inputs is a bitset.BitSet, which extends itself
// on Set, so the two stay in lockstep without an explicit resize.
func (f *Formula) NormalizeRoots() {
	root := z.Var(len(f.gates))
	f.gates = append(f.gates, Gate{})

	rootOut := root.Pos()
	g := &f.gates[root]
	g.Out = rootOut
	g.NotMono = false

	inpSet := make(map[z.Lit]bool)
	f.Roots = append(f.Roots, f.Remainder...)
	f.Remainder = nil

	for _, c := range f.Roots {
		for _, l := range c {
			inpSet[l] = true
		}
		nc := make(cnf.Clause, len(c)+1)
		copy(nc, c)
		nc[len(c)] = root.Neg()
		g.Fwd = append(g.Fwd, nc)
	}
	for l := range inpSet {
		g.Inp = append(g.Inp, l)
	}
	sort.Slice(g.Inp, func(i, j int) bool { return g.Inp[i] < g.Inp[j] })

	f.Roots = []cnf.Clause{{rootOut}}
	f.artificialRoot = cnf.Clause{rootOut}
}
