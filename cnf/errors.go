package cnf

import "errors"

// ErrInputNotReadable is returned when a DIMACS source can't be read at all
// (as opposed to dimacs.ErrMalformed, which is a recoverable per-token
// parse error): a missing file, an unreadable gzip stream, or a closed
// pipe.
var ErrInputNotReadable = errors.New("cnf: input not readable")
