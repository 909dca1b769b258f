package wlhash

import (
	"strings"
	"testing"
	"time"

	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/z"
)

func buildFormula(t *testing.T, rows [][]int) *cnf.Formula {
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

func digestOf(t *testing.T, rows [][]int, cfg Config) Hash {
	t.Helper()
	f := buildFormula(t, rows)
	h := NewHasher(f, cfg, time.Time{})
	return h.Run()
}

func TestWLHashIsInvariantUnderVariableRenaming(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 6
	cfg.ReturnMeasurements = false

	original := [][]int{
		{1, 2, -3},
		{-1, 3},
		{2, -3, 1},
	}
	// consistent renaming 1->3, 2->1, 3->2, preserving every literal's sign
	renamed := [][]int{
		{3, 1, -2},
		{-3, 2},
		{1, -2, 3},
	}
	a := digestOf(t, original, cfg)
	b := digestOf(t, renamed, cfg)
	if a != b {
		t.Errorf("expected renaming-invariant digests, got %d != %d", a, b)
	}
}

func TestWLHashIsInvariantUnderClauseAndLiteralReordering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 6
	cfg.ReturnMeasurements = false

	a := digestOf(t, [][]int{{1, 2}, {-1, 3}}, cfg)
	b := digestOf(t, [][]int{{3, -1}, {2, 1}}, cfg)
	if a != b {
		t.Errorf("expected reordering-invariant digests, got %d != %d", a, b)
	}
}

func TestWLHashDistinguishesNonIsomorphicFormulas(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 6
	cfg.ReturnMeasurements = false

	a := digestOf(t, [][]int{{1, 2}, {-1, 3}}, cfg)
	b := digestOf(t, [][]int{{1, 2, 3}}, cfg)
	if a == b {
		t.Errorf("expected structurally different formulas to get different digests")
	}
}

func TestDigestAppendsMeasurementsWhenEnabled(t *testing.T) {
	f := buildFormula(t, [][]int{{1, 2}})
	cfg := DefaultConfig()
	cfg.Depth = 2
	cfg.ReturnMeasurements = true
	h := NewHasher(f, cfg, time.Now())
	out := h.Digest()
	if out == "" {
		t.Fatalf("expected non-empty digest")
	}
	// hash,parse_ns,compute_ns,iterations
	if n := strings.Count(out, ","); n != 3 {
		t.Fatalf("expected 3 comma-separated measurements after the hash, got %d in %q", n, out)
	}
}
