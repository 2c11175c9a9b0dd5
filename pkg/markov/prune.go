package markov

import "log/slog"

// Prune removes successor entries that are repeated fewer than minCount
// times within their list. This is useful for shrinking a model by
// dropping rare, and often noisy, transitions. Keys left with no
// successors are deleted, except the start sentinel. It returns the
// number of transitions removed.
//
// Pruning can orphan tokens or create dead ends; a subsequent Generate
// that walks into one fails with ErrDeadEnd as usual.
func (m *Model) Prune(minCount int) int {
	if minCount <= 1 {
		return 0
	}

	var removed int
	for token, next := range m.table {
		counts := make(map[string]int, len(next))
		for _, succ := range next {
			counts[succ]++
		}

		kept := make([]string, 0, len(next))
		for _, succ := range next {
			if counts[succ] >= minCount {
				kept = append(kept, succ)
			}
		}
		removed += len(next) - len(kept)

		if len(kept) == 0 && token != SOCToken {
			delete(m.table, token)
		} else {
			m.table[token] = kept
		}
	}

	m.logger.Info("model pruned",
		slog.Int("min_count", minCount),
		slog.Int("transitions_removed", removed),
	)
	return removed
}
