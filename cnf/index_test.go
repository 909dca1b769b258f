package cnf

import (
	"testing"

	"github.com/go-air/cnftools/z"
)

// buildIndex is a small helper building a Formula + Index from dimacs-style
// ints, 0-terminated per clause.
func buildIndex(t *testing.T, rows [][]int) (*Formula, *Index) {
	t.Helper()
	f := NewFormula()
	for _, row := range rows {
		ms := make([]z.Lit, len(row))
		for i, m := range row {
			ms[i] = lit(m)
		}
		f.AddClause(ms)
	}
	return f, NewIndex(f)
}

func TestIsBlockedSetOrGate(t *testing.T) {
	// o <-> (a | b): fwd = {-o,a,b}, bwd = {o,-a},{o,-b}
	_, ix := buildIndex(t, [][]int{
		{-1, 2, 3},
		{1, -2},
		{1, -3},
	})
	if !ix.IsBlockedSet(lit(1)) {
		t.Errorf("expected literal 1 to be blocked (or-gate output)")
	}
}

func TestIsBlockedSetFailsWithoutDefiningStructure(t *testing.T) {
	// unrelated clauses mentioning 1 and -1 with nothing canceling
	_, ix := buildIndex(t, [][]int{
		{1, 4},
		{-1, 5},
	})
	if ix.IsBlockedSet(lit(1)) {
		t.Errorf("did not expect literal 1 to be blocked")
	}
}

func noneUsed(z.Lit) bool { return false }

func TestEstimateRootsReturnsNewBatchOnly(t *testing.T) {
	_, ix := buildIndex(t, [][]int{
		{1, 2},
		{-1, 3},
	})
	first := ix.EstimateRoots(noneUsed)
	if len(first) != 2 {
		t.Fatalf("expected 2 roots on first call, got %d", len(first))
	}
	second := ix.EstimateRoots(noneUsed)
	if len(second) != 0 {
		t.Fatalf("expected 0 roots on second call before any Remove, got %d", len(second))
	}
}

func TestEstimateRootsExcludesClausesUsingAnInput(t *testing.T) {
	_, ix := buildIndex(t, [][]int{
		{1, 2},
		{-1, 3},
	})
	used := func(l z.Lit) bool { return l == lit(2) }
	roots := ix.EstimateRoots(used)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root (the clause not mentioning the used literal), got %d", len(roots))
	}
	if roots[0] != 1 {
		t.Fatalf("expected clause index 1 ({-1,3}), got %d", roots[0])
	}
}

func TestRemoveDropsClausesMentioningVariable(t *testing.T) {
	_, ix := buildIndex(t, [][]int{
		{1, 2},
		{-1, 3},
		{4, 5},
	})
	ix.Remove(z.Var(1))
	if ix.Alive(0) || ix.Alive(1) {
		t.Errorf("expected clauses mentioning var 1 to be removed")
	}
	if !ix.Alive(2) {
		t.Errorf("expected unrelated clause to remain alive")
	}
	if n := ix.NOcc(lit(1)); n != 0 {
		t.Errorf("expected 0 occurrences of literal 1 after remove, got %d", n)
	}
}
