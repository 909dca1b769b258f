// Package analysis wires the parsed-CNF, gate-recognition, and WL-hashing
// collaborators together into the one-session-per-formula lifecycle spec.md
// §5 describes, and is what cmd/cnftools calls into. Grounded on
// original_source/src/Main.cc's top-level driver (parse once, dispatch to
// whichever analysis the invoked tool mode needs) and gini's own
// gini.go (a thin façade over inter/s.go's lower-level pieces).
package analysis

import (
	"fmt"
	"io"
	"time"

	"github.com/go-air/cnftools/cnf"
	"github.com/go-air/cnftools/dimacs"
	"github.com/go-air/cnftools/gate"
	"github.com/go-air/cnftools/oracle"
	"github.com/go-air/cnftools/wlhash"
)

// Session owns one parsed cnf.Formula; a semantic-mode gate pass allocates
// and releases its own SAT oracle per Gates call. It is not safe for
// concurrent use (spec.md §5: single-threaded, synchronous, no shared
// mutable state across sessions).
type Session struct {
	formula *cnf.Formula
	parsed  time.Time
	closed  bool
}

// Open reads a DIMACS CNF from r into a new Session. Parse errors from
// dimacs.ReadCnf (other than recoverable malformed tokens, which it already
// skips) are wrapped with cnf.ErrInputNotReadable.
func Open(r io.Reader) (*Session, error) {
	start := time.Now()
	b := cnf.NewBuilder(nil)
	if err := dimacs.ReadCnf(r, b); err != nil {
		return nil, fmt.Errorf("%w: %s", cnf.ErrInputNotReadable, err)
	}
	return &Session{formula: b.Formula(), parsed: start}, nil
}

// Formula returns the parsed formula.
func (s *Session) Formula() *cnf.Formula { return s.formula }

// Close marks the session done. Gate analyses run in Semantic mode
// allocate and release their own oracle.Solver per call, so Close has
// nothing to free today; it exists so a caller can't keep using a Session
// past the point it considers the analysis finished (see Gates).
func (s *Session) Close() { s.closed = true }

// Isohash runs a Weisfeiler-Leman hashing pass (per cfg) over the session's
// formula and returns the textual digest spec.md §6 describes (decimal
// hash, optionally comma-suffixed with parse/compute timings and iteration
// count).
func (s *Session) Isohash(cfg wlhash.Config) (string, error) {
	if s.closed {
		return "", oracle.ErrSolverUnavailable
	}
	h := wlhash.NewHasher(s.formula, cfg, s.parsed)
	return h.Digest(), nil
}

// Gates runs gate recognition (per opts) over the session's formula and
// returns the resulting gate.Formula's summary statistics.
func (s *Session) Gates(opts gate.Options) (gate.Stats, error) {
	if s.closed {
		return gate.Stats{}, oracle.ErrSolverUnavailable
	}
	a := gate.NewAnalyzer(s.formula, opts)
	defer a.Release()
	a.Analyze()
	return a.Formula().Stats(), nil
}
