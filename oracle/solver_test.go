package oracle

import (
	"testing"

	"github.com/go-air/cnftools/z"
)

func dlit(m int) z.Lit { return z.Dimacs2Lit(m) }

func addClause(s Solver, ms ...int) {
	for _, m := range ms {
		s.Add(dlit(m))
	}
	s.Add(z.LitNull)
}

func TestSolveSatisfiable(t *testing.T) {
	s := New()
	defer s.Release()
	addClause(s, 1, 2)
	addClause(s, -1, 2)
	if r := s.Solve(); r != Sat {
		t.Fatalf("expected Sat, got %d", r)
	}
}

func TestSolveUnsatisfiable(t *testing.T) {
	s := New()
	defer s.Release()
	addClause(s, 1)
	addClause(s, -1)
	if r := s.Solve(); r != Unsat {
		t.Fatalf("expected Unsat, got %d", r)
	}
}

func TestAssumeIsOneShot(t *testing.T) {
	s := New()
	defer s.Release()
	addClause(s, 1, 2)
	s.Assume(dlit(-1))
	s.Assume(dlit(-2))
	if r := s.Solve(); r != Unsat {
		t.Fatalf("expected Unsat under assumption {-1,-2}, got %d", r)
	}
	if r := s.Solve(); r != Sat {
		t.Fatalf("expected Sat once the assumption is gone, got %d", r)
	}
}

func TestEquivalenceGateConstraintIsUnsat(t *testing.T) {
	// o <-> (a & b), substituted o -> 5: clauses
	// (-5 a)(-5 b)(5 -a -b), assume 5 true: should be SAT actually since
	// a=b=true satisfies everything; use a clearly contradictory pair
	// instead to exercise the Unsat path used by fSemantic.
	s := New()
	defer s.Release()
	addClause(s, -5, 1)
	addClause(s, 5, -1)
	s.Assume(dlit(5))
	s.Assume(dlit(-1))
	if r := s.Solve(); r != Unsat {
		t.Fatalf("expected Unsat, got %d", r)
	}
}
