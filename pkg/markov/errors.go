package markov

import "errors"

var (
	// ErrSanitize is returned by Ingest when the configured Sanitizer
	// rejects a sample. The model's table is left untouched; a caller
	// processing a batch should skip the sample and continue.
	ErrSanitize = errors.New("markov: sample could not be sanitized")

	// ErrRestore is returned by Restore when the serialized data is not
	// a valid transition table. Callers should fall back to an empty
	// model via New.
	ErrRestore = errors.New("markov: invalid serialized model")

	// ErrDeadEnd is returned by Generate when the walk reaches a token
	// with no recorded successors. A fresh Generate call is a new
	// independent walk and may succeed.
	ErrDeadEnd = errors.New("markov: generation hit a dead end")

	// ErrMaxSteps is returned by Generate when the walk exceeds its
	// step limit before reaching the end-of-chain token.
	ErrMaxSteps = errors.New("markov: generation exceeded step limit")
)
