package oracle

import "errors"

// ErrSolverUnavailable is returned by a caller that tries to use a solver
// after its session has released it: gate.Analyzer's SAT oracle is
// one-per-session (spec.md §5), so asking for another semantic-mode gate
// pass after Release is a caller error, not a fresh solver request.
var ErrSolverUnavailable = errors.New("oracle: solver unavailable")
