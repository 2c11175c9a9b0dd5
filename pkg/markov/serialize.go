package markov

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// ExportedModel is the serializable representation of a model's
// transition table, used for JSON-based export and restore.
type ExportedModel struct {
	Version int                 `json:"version"`
	Table   map[string][]string `json:"table"`
}

const exportVersion = 1

// Export serializes the full transition table as JSON and writes it to
// the provided io.Writer. Restore reconstructs an observably identical
// table from the output: same key set, same successor lists in the same
// order. The blob is opaque to callers; naming and caching it is the
// storage layer's business.
func (m *Model) Export(w io.Writer) error {
	exported := ExportedModel{
		Version: exportVersion,
		Table:   m.table,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exported); err != nil {
		return fmt.Errorf("could not encode model: %w", err)
	}

	m.logger.Info("model exported",
		slog.Int("tokens_exported", len(m.table)),
	)
	return nil
}

// Restore deserializes a model previously written by Export. Invalid
// input fails with an error wrapping ErrRestore, including a table that
// uses EOCToken as a key; callers should fall back to New. Options are
// applied to the restored model the same way New applies them.
func Restore(r io.Reader, opts ...ModelOption) (*Model, error) {
	var imported ExportedModel
	if err := json.NewDecoder(r).Decode(&imported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRestore, err)
	}
	if imported.Version > exportVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrRestore, imported.Version)
	}

	m := New(opts...)
	for token, next := range imported.Table {
		if token == EOCToken {
			return nil, fmt.Errorf("%w: %q appears as a key", ErrRestore, EOCToken)
		}
		entry := make([]string, len(next))
		copy(entry, next)
		m.table[token] = entry
	}

	m.logger.Info("model restored",
		slog.Int("tokens_restored", len(m.table)),
	)
	return m, nil
}
