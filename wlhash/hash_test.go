package wlhash

import "testing"

func TestCombineIsCommutative(t *testing.T) {
	for _, usePrimeRing := range []bool{false, true} {
		var a, b Hash
		combine(usePrimeRing, &a, 17)
		combine(usePrimeRing, &a, 42)
		combine(usePrimeRing, &b, 42)
		combine(usePrimeRing, &b, 17)
		if a != b {
			t.Errorf("usePrimeRing=%v: combine not commutative: %d != %d", usePrimeRing, a, b)
		}
	}
}

func TestCombineIsAssociative(t *testing.T) {
	for _, usePrimeRing := range []bool{false, true} {
		var a, b Hash
		combine(usePrimeRing, &a, 1)
		combine(usePrimeRing, &a, 2)
		combine(usePrimeRing, &a, 3)

		var tmp Hash
		combine(usePrimeRing, &tmp, 2)
		combine(usePrimeRing, &tmp, 3)
		combine(usePrimeRing, &b, 1)
		combine(usePrimeRing, &b, tmp)
		if a != b {
			t.Errorf("usePrimeRing=%v: combine not associative: %d != %d", usePrimeRing, a, b)
		}
	}
}

func TestCombineZeroOnlyFromZeroInputs(t *testing.T) {
	for _, usePrimeRing := range []bool{false, true} {
		var acc Hash
		combine(usePrimeRing, &acc, 1)
		combine(usePrimeRing, &acc, ^uint64(0))
		if acc == 0 {
			t.Errorf("usePrimeRing=%v: combine(1, maxuint64) produced 0 from nonzero inputs", usePrimeRing)
		}

		var zero Hash
		combine(usePrimeRing, &zero, 0)
		if zero != 0 {
			t.Errorf("usePrimeRing=%v: combine(0,0) should stay 0, got %d", usePrimeRing, zero)
		}
	}
}

func TestXXH3HasherIsDeterministic(t *testing.T) {
	h := xxh3Hasher{}
	lc := LitColors{P: 1, N: 2}
	if h.HashLitColors(lc) != h.HashLitColors(lc) {
		t.Errorf("expected deterministic hash for identical input")
	}
	if h.HashLitColors(lc) == h.HashLitColors(LitColors{P: 2, N: 1}) {
		t.Errorf("expected distinct hashes for distinct (P,N) pairs")
	}
}

func TestVariableHashIsPolaritySymmetric(t *testing.T) {
	h := xxh3Hasher{}
	a := LitColors{P: 5, N: 9}
	b := LitColors{P: 9, N: 5}
	if a.VariableHash(h) != b.VariableHash(h) {
		t.Errorf("VariableHash should be invariant under swapping P and N")
	}
}
