package cnf

import (
	"testing"

	"github.com/go-air/cnftools/z"
)

func lit(m int) z.Lit { return z.Dimacs2Lit(m) }

func TestNormalizeClauseSortsAndDedups(t *testing.T) {
	ms := []z.Lit{lit(3), lit(-1), lit(3), lit(2)}
	c, taut := normalizeClause(ms)
	if taut {
		t.Fatalf("unexpected tautology")
	}
	want := []int{-1, 2, 3}
	if c.Len() != len(want) {
		t.Fatalf("got %d literals, want %d", c.Len(), len(want))
	}
	for i, w := range want {
		if c.At(i).Dimacs() != w {
			t.Errorf("literal %d: got %d want %d", i, c.At(i).Dimacs(), w)
		}
	}
}

func TestNormalizeClauseDetectsTautology(t *testing.T) {
	ms := []z.Lit{lit(1), lit(-2), lit(-1)}
	_, taut := normalizeClause(ms)
	if !taut {
		t.Fatalf("expected tautology on {1,-2,-1}")
	}
}

func TestClauseContains(t *testing.T) {
	c, _ := normalizeClause([]z.Lit{lit(1), lit(-3), lit(2)})
	if !c.Contains(lit(2)) {
		t.Errorf("expected clause to contain 2")
	}
	if c.Contains(lit(3)) {
		t.Errorf("did not expect clause to contain 3 (only -3 present)")
	}
}
