package markov

import (
	"fmt"
	"io"
	"log/slog"
)

const (
	// SOCToken is the reserved Start-Of-Chain sentinel. It is always a
	// key in a trained table and never appears in generated output.
	SOCToken = "<SOC>"
	// EOCToken is the reserved End-Of-Chain sentinel. It only ever
	// appears as a successor value, never as a key.
	EOCToken = "<EOC>"
)

// DefaultMaxSteps is the default per-walk step limit for Generate. The
// limit is a defensive addition: a table whose every path loops without
// reaching EOCToken would otherwise walk forever. It can be raised or
// disabled per call with WithMaxSteps.
const DefaultMaxSteps = 4096

// Model holds a first-order Markov transition table built from ingested
// text samples. The zero value is not usable; construct with New or
// Restore. A Model provides no internal synchronization.
type Model struct {
	table     map[string][]string
	sanitizer Sanitizer
	maxSteps  int
	logger    *slog.Logger
}

// ModelOption configures a Model at construction time.
type ModelOption func(*Model)

// WithSanitizer sets the Sanitizer used by Ingest.
// Default: NewDefaultSanitizer().
func WithSanitizer(s Sanitizer) ModelOption {
	return func(m *Model) {
		if s != nil {
			m.sanitizer = s
		}
	}
}

// WithLogger sets the logger for the model. By default, all logs are
// discarded.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDefaultMaxSteps sets the model-wide default step limit used by
// Generate when no per-call WithMaxSteps option is given. A value of 0
// disables the limit.
func WithDefaultMaxSteps(n int) ModelOption {
	return func(m *Model) {
		if n >= 0 {
			m.maxSteps = n
		}
	}
}

// New creates an empty Model, ready for Ingest.
func New(opts ...ModelOption) *Model {
	m := &Model{
		table:     make(map[string][]string),
		sanitizer: NewDefaultSanitizer(),
		maxSteps:  DefaultMaxSteps,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ingest sanitizes one raw text sample and records every adjacent token
// pair in the transition table, framed by the SOC and EOC sentinels. A
// sample that sanitizes to zero tokens is a no-op. The table only ever
// grows: existing entries are never removed or overwritten, and on a
// sanitizer failure nothing is recorded at all.
func (m *Model) Ingest(sample string) error {
	tokens, err := m.sanitizer.Sanitize(sample)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSanitize, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	seq := make([]string, 0, len(tokens)+2)
	seq = append(seq, SOCToken)
	seq = append(seq, tokens...)
	seq = append(seq, EOCToken)

	for i := 0; i < len(seq)-1; i++ {
		cur := seq[i]
		if cur == EOCToken {
			// A custom sanitizer may pass the literal sentinel through.
			// EOCToken must never become a key.
			continue
		}
		m.table[cur] = append(m.table[cur], seq[i+1])
	}

	m.logger.Debug("sample ingested",
		slog.Int("tokens", len(tokens)),
		slog.Int("table_size", len(m.table)),
	)
	return nil
}

// Successors returns a copy of the successor list recorded for token.
// An absent key returns nil without mutating the table; keys are only
// ever created on the Ingest path.
func (m *Model) Successors(token string) []string {
	next := m.table[token]
	if len(next) == 0 {
		return nil
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}
