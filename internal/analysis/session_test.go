package analysis

import (
	"strings"
	"testing"

	"github.com/go-air/cnftools/gate"
	"github.com/go-air/cnftools/wlhash"
)

func TestOpenParsesDimacs(t *testing.T) {
	s, err := Open(strings.NewReader("p cnf 3 2\n1 2 0\n-2 3 0\n"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Formula().NClauses() != 2 {
		t.Fatalf("expected 2 clauses, got %d", s.Formula().NClauses())
	}
}

func TestIsohashAfterCloseFails(t *testing.T) {
	s, err := Open(strings.NewReader("p cnf 1 1\n1 0\n"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()
	if _, err := s.Isohash(wlhash.DefaultConfig()); err == nil {
		t.Fatalf("expected error after Close")
	}
}

func TestGatesRecognizesOrGate(t *testing.T) {
	s, err := Open(strings.NewReader("p cnf 3 3\n-1 2 3 0\n1 -2 0\n1 -3 0\n"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	stats, err := s.Gates(gate.Options{Patterns: true, MaxPasses: 4})
	if err != nil {
		t.Fatalf("Gates: %v", err)
	}
	if stats.NGates != 1 {
		t.Fatalf("expected 1 gate, got %d", stats.NGates)
	}
}
