package gate

import (
	"testing"

	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/z"
)

func mkProblem(t *testing.T, rows [][]int) *cnf.Formula {
	t.Helper()
	f := cnf.NewFormula()
	for _, row := range rows {
		ms := make([]z.Lit, len(row))
		for i, m := range row {
			ms[i] = z.Dimacs2Lit(m)
		}
		f.AddClause(ms)
	}
	return f
}

func TestAnalyzeRecognizesMonotonicOrGate(t *testing.T) {
	// 1 <-> (2 | 3): fwd={-1,2,3}; bwd={1,-2},{1,-3}.
	problem := mkProblem(t, [][]int{
		{-1, 2, 3},
		{1, -2},
		{1, -3},
	})
	a := NewAnalyzer(problem, Options{Patterns: true, MaxPasses: 4})
	a.Analyze()

	out := a.Formula()
	if out.NGates() != 1 {
		t.Fatalf("expected 1 gate, got %d", out.NGates())
	}
	g := out.GetGate(z.Dimacs2Lit(1))
	if !g.IsDefined() {
		t.Fatalf("expected a gate recorded for variable 1")
	}
	wantInp := []int{2, 3}
	if len(g.Inp) != len(wantInp) {
		t.Fatalf("got %d inputs, want %d: %v", len(g.Inp), len(wantInp), g.Inp)
	}
	for i, w := range wantInp {
		if g.Inp[i].Dimacs() != w {
			t.Errorf("input %d: got %d want %d", i, g.Inp[i].Dimacs(), w)
		}
	}
	// Analyze records a pass's whole root batch into Roots before gate
	// recognition runs, so all 3 original clauses land there even though
	// recognizing the gate on variable 1 later removes them from the index.
	if out.NRoots() != 3 {
		t.Fatalf("expected 3 root clauses, got %d", out.NRoots())
	}
	if len(out.Remainder) != 0 {
		t.Fatalf("expected no remainder, got %v", out.Remainder)
	}
}

func TestAnalyzeLeavesUnrelatedClausesAsRemainder(t *testing.T) {
	problem := mkProblem(t, [][]int{
		{7, 8},
		{-7, 9},
	})
	a := NewAnalyzer(problem, Options{MaxPasses: 4})
	a.Analyze()
	out := a.Formula()
	if out.NGates() != 0 {
		t.Fatalf("expected 0 gates, got %d", out.NGates())
	}
	if len(out.Remainder) != 2 {
		t.Fatalf("expected both clauses to end up in remainder, got %d", len(out.Remainder))
	}
}

func TestFPatternEquivalenceGate(t *testing.T) {
	a := &Analyzer{out: NewFormula(3)}
	o := z.Dimacs2Lit(1)
	fwd := []cnf.Clause{{z.Dimacs2Lit(-1), z.Dimacs2Lit(2)}}
	bwd := []cnf.Clause{{z.Dimacs2Lit(1), z.Dimacs2Lit(-2)}}
	if !a.fPattern(o, fwd, bwd) {
		t.Fatalf("expected equivalence pattern to match")
	}
}

func TestFPatternFullEncodingGate(t *testing.T) {
	// o <-> (a XOR b), a 2-input full encoding: k=2, 2^(k-1)=2 clauses each
	// side, covering both polarities of each input.
	a := &Analyzer{out: NewFormula(4)}
	o := z.Dimacs2Lit(1)
	fwd := []cnf.Clause{
		{z.Dimacs2Lit(-1), z.Dimacs2Lit(2), z.Dimacs2Lit(3)},
		{z.Dimacs2Lit(-1), z.Dimacs2Lit(-2), z.Dimacs2Lit(-3)},
	}
	bwd := []cnf.Clause{
		{z.Dimacs2Lit(1), z.Dimacs2Lit(-2), z.Dimacs2Lit(3)},
		{z.Dimacs2Lit(1), z.Dimacs2Lit(2), z.Dimacs2Lit(-3)},
	}
	if !a.fPattern(o, fwd, bwd) {
		t.Fatalf("expected full-encoding pattern to match")
	}
}
