package markov

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
)

// generateOptions is used by Generate to configure per-call behavior.
type generateOptions struct {
	maxSteps int
}

// GenerateOption is a function that configures generation parameters.
type GenerateOption func(*generateOptions)

// WithMaxSteps sets the step limit for a single walk, overriding the
// model default. A value of 0 disables the limit entirely, restoring
// the unbounded behavior of a plain Markov walk.
func WithMaxSteps(n int) GenerateOption {
	return func(o *generateOptions) {
		if n >= 0 {
			o.maxSteps = n
		}
	}
}

// Generate performs one random walk over the transition table and
// returns the resulting sentence. The walk starts at SOCToken, picks a
// successor uniformly at random from the current token's list (so a
// token recorded N times is N times more likely to be chosen), and
// stops when EOCToken is drawn. Sentinels never appear in the output.
//
// A token with no recorded successors fails the walk with ErrDeadEnd;
// in particular, a model with no ingested samples always fails this
// way. Exceeding the step limit fails with ErrMaxSteps. Both failures
// are recoverable: a fresh call is a new independent walk from
// SOCToken.
func (m *Model) Generate(opts ...GenerateOption) (string, error) {
	options := &generateOptions{
		maxSteps: m.maxSteps,
	}
	for _, opt := range opts {
		opt(options)
	}

	var words []string
	current := SOCToken
	steps := 0

	for {
		if options.maxSteps > 0 && steps >= options.maxSteps {
			m.logger.Debug("generation aborted at step limit",
				slog.Int("max_steps", options.maxSteps),
			)
			return "", fmt.Errorf("%w (%d steps)", ErrMaxSteps, steps)
		}

		next := m.table[current]
		if len(next) == 0 {
			m.logger.Debug("generation hit dead end",
				slog.String("token", current),
				slog.Int("generated_length", len(words)),
			)
			return "", fmt.Errorf("%w: no successors for %q", ErrDeadEnd, current)
		}

		choice := next[rand.Intn(len(next))]
		if choice == EOCToken {
			break
		}
		words = append(words, choice)
		current = choice
		steps++
	}

	m.logger.Debug("generation terminated by EOC",
		slog.Int("generated_length", len(words)),
	)
	return strings.Join(words, " "), nil
}
