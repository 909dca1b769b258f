package wlhash

import (
	"strconv"
	"time"

	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/z"
)

// Config is the runtime configuration of a WL hashing run, ported field for
// field from ISOHash2.h's WLHRuntimeConfig.
type Config struct {
	// Depth bounds the number of half-iterations: Depth/2 full color
	// refinement iterations, with a final variable-hash (even Depth) or
	// clause-hash (odd Depth) summarization pass.
	Depth int
	// CrossReferenceLiterals folds each variable's two polarities together
	// every iteration, so refinement can tell a variable from its negation.
	CrossReferenceLiterals bool
	// RehashClauses re-hashes a clause's combined color once more before
	// folding it into its literals' colors, to avoid the clause's hash
	// colliding with a literal's own color by construction.
	RehashClauses bool
	// OptimizeFirstIteration replaces the first iteration's (expensive)
	// clause hash with the clause's size, which carries the same
	// information before any literal has an informative color yet.
	OptimizeFirstIteration bool
	// FirstProgressCheckIteration is the first iteration at which
	// CheckProgress is consulted; early iterations rarely converge; so
	// spec.md sees no benefit in paying for the check before then.
	FirstProgressCheckIteration int
	// ReturnMeasurements appends parse/compute timings to Digest's output.
	ReturnMeasurements bool
	// UsePrimeRing selects the prime-ring combine variant over
	// end-around-carry uint64 addition.
	UsePrimeRing bool
	// UseXXH3 selects github.com/cespare/xxhash/v2 over MD5 as the scalar
	// hash algorithm.
	UseXXH3 bool
}

// DefaultConfig mirrors ISOHash2.h's weisfeiler_leman_hash default
// parameters.
func DefaultConfig() Config {
	return Config{
		Depth:                       13,
		CrossReferenceLiterals:      true,
		RehashClauses:               true,
		OptimizeFirstIteration:      true,
		FirstProgressCheckIteration: 3,
		ReturnMeasurements:          true,
		UsePrimeRing:                false,
		UseXXH3:                     true,
	}
}

// Hasher runs Weisfeiler-Leman color refinement over a cnf.Formula.
// Ported from ISOHash2.h's WeisfeilerLemanHasher.
type Hasher struct {
	cfg     Config
	problem *cnf.Formula
	hasher  ScalarHasher

	colorFns  [2]*ColorFunction
	iteration int

	uniqueHashes         map[Hash]bool
	previousUniqueHashes int

	parsingStart time.Time
	startTime    time.Time
}

// NewHasher builds a Hasher over problem. parsingStart should be the time
// the CNF began parsing, used only for ReturnMeasurements reporting; pass
// the zero time.Time if that figure isn't tracked.
func NewHasher(problem *cnf.Formula, cfg Config, parsingStart time.Time) *Hasher {
	var sh ScalarHasher
	if cfg.UseXXH3 {
		sh = xxh3Hasher{}
	} else {
		sh = md5Hasher{}
	}
	if cfg.UsePrimeRing {
		sh = primeRingHasher{inner: sh}
	}
	return &Hasher{
		cfg:                  cfg,
		problem:              problem,
		hasher:               sh,
		colorFns:             [2]*ColorFunction{NewColorFunction(problem.NVars()), NewColorFunction(problem.NVars())},
		uniqueHashes:         make(map[Hash]bool),
		previousUniqueHashes: 1,
		parsingStart:         parsingStart,
		startTime:            time.Now(),
	}
}

func (h *Hasher) oldColor() *ColorFunction { return h.colorFns[h.iteration%2] }
func (h *Hasher) newColor() *ColorFunction { return h.colorFns[(h.iteration+1)%2] }

func (h *Hasher) inOptimizedIteration() bool {
	return h.iteration == 0 && h.cfg.OptimizeFirstIteration
}

// crossReference applies LitColors.CrossReference to every variable's old
// colors, unless disabled or we're in the first-iteration fast path.
func (h *Hasher) crossReference() {
	if !h.cfg.CrossReferenceLiterals || h.inOptimizedIteration() {
		return
	}
	old := h.oldColor()
	for v := 1; v <= old.NVars(); v++ {
		lc := old.LitColorsOf(z.Var(v))
		lc.CrossReference(h.hasher)
		old.SetLitColorsOf(z.Var(v), lc)
	}
}

// clauseHash folds a clause's literals' current colors into one color,
// optionally rehashing the result (cfg.RehashClauses) to decorrelate it
// from any single literal's own color.
func (h *Hasher) clauseHash(cl cnf.Clause) Hash {
	old := h.oldColor()
	var acc Hash
	for _, l := range cl {
		combine(h.cfg.UsePrimeRing, &acc, old.Get(l))
	}
	if h.cfg.RehashClauses {
		acc = h.hasher.HashUint64(acc)
	}
	return acc
}

// iterationStep runs one full color-refinement iteration: cross-reference,
// then for every clause combine its hash into each of its literals' new
// color.
func (h *Hasher) iterationStep() {
	h.crossReference()
	newc := h.newColor()
	h.problem.Clauses(func(_ int, cl cnf.Clause) bool {
		var clh Hash
		if !h.inOptimizedIteration() {
			clh = h.clauseHash(cl)
		} else if h.cfg.RehashClauses {
			clh = h.hasher.HashUint64(uint64(len(cl)))
		} else {
			clh = Hash(len(cl))
		}
		for _, l := range cl {
			v := newc.Get(l)
			combine(h.cfg.UsePrimeRing, &v, clh)
			newc.Set(l, v)
		}
		return true
	})
	h.iteration++
}

// variableHash summarizes the current color state into one hash, folding
// in either the polarity-symmetric per-variable hash (cross-referencing
// enabled) or every literal's raw color directly.
func (h *Hasher) variableHash() Hash {
	old := h.oldColor()
	var acc Hash
	if h.cfg.CrossReferenceLiterals {
		for v := 1; v <= old.NVars(); v++ {
			lc := old.LitColorsOf(z.Var(v))
			combine(h.cfg.UsePrimeRing, &acc, lc.VariableHash(h.hasher))
		}
		return acc
	}
	for l := 2; l < 2*(old.NVars()+1); l++ {
		combine(h.cfg.UsePrimeRing, &acc, old.Get(z.Lit(l)))
	}
	return acc
}

// cnfHash summarizes the current color state by folding every clause's
// hash together, after one more cross-reference pass.
func (h *Hasher) cnfHash() Hash {
	h.crossReference()
	var acc Hash
	h.problem.Clauses(func(_ int, cl cnf.Clause) bool {
		combine(h.cfg.UsePrimeRing, &acc, h.clauseHash(cl))
		return true
	})
	return acc
}

// checkProgress reports whether refinement has stopped distinguishing new
// variables: it recomputes every variable's hash, and if the number of
// distinct hashes hasn't grown since the last check, refinement has
// converged and that hash is the final digest. Returns (hash, true) on
// convergence, (0, false) to keep iterating.
func (h *Hasher) checkProgress() (Hash, bool) {
	if h.iteration < h.cfg.FirstProgressCheckIteration {
		return 0, false
	}
	old := h.oldColor()
	var vh Hash
	h.uniqueHashes = make(map[Hash]bool, h.previousUniqueHashes)
	for v := 1; v <= old.NVars(); v++ {
		lc := old.LitColorsOf(z.Var(v))
		lvh := lc.VariableHash(h.hasher)
		h.uniqueHashes[lvh] = true
		combine(h.cfg.UsePrimeRing, &vh, lvh)
	}
	if len(h.uniqueHashes) <= h.previousUniqueHashes {
		return vh, true
	}
	h.previousUniqueHashes = len(h.uniqueHashes)
	h.uniqueHashes = make(map[Hash]bool)
	return 0, false
}

// Run drives the refinement loop to completion and returns the final
// digest hash, per ISOHash2.h's run(): iterate until either depth/2
// iterations have run or check_progress reports convergence. On
// convergence the variable hash computed by checkProgress is returned as
// is; otherwise the result is variableHash (even depth) or cnfHash (odd
// depth).
func (h *Hasher) Run() Hash {
	for h.iteration < h.cfg.Depth/2 {
		if result, done := h.checkProgress(); done {
			return result
		}
		h.iterationStep()
	}
	if h.cfg.Depth%2 == 0 {
		return h.variableHash()
	}
	return h.cnfHash()
}

// Digest runs the hasher and formats its result the way the CLI reports
// it: the digest, plus (if cfg.ReturnMeasurements) a comma-separated
// parsing time, calculation time (both nanoseconds), and iteration count.
func (h *Hasher) Digest() string {
	result := h.Run()
	out := strconv.FormatUint(result, 10)
	if !h.cfg.ReturnMeasurements {
		return out
	}
	calcTime := time.Since(h.startTime).Nanoseconds()
	var parseTime int64
	if !h.parsingStart.IsZero() {
		parseTime = h.startTime.Sub(h.parsingStart).Nanoseconds()
	}
	iterCount := h.iteration
	if maxIter := h.cfg.Depth / 2; iterCount > maxIter {
		iterCount = maxIter
	}
	out += "," + strconv.FormatInt(parseTime, 10)
	out += "," + strconv.FormatInt(calcTime, 10)
	out += "," + strconv.Itoa(iterCount)
	return out
}
