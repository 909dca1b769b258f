package main

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the CLI's progress logger: a plain, timestamp-free
// console writer whose messages are prefixed "c " the way
// original_source/src/Main.cc and GateAnalyzer.h write their `std::cerr <<
// "c ..."` GBD-style progress comments. Grounded on
// Consensys-gnark/logger's zerolog.ConsoleWriter setup; quiet suppresses it
// entirely (zerolog.Nop()), as logger.Disable does there.
func newLogger(quiet bool) zerolog.Logger {
	if quiet {
		return zerolog.Nop()
	}
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
	return zerolog.New(w).With().Logger()
}

// cLine formats msg as a GBD-style progress comment.
func cLine(msg string) string { return "c " + msg }
