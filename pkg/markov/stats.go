package markov

// ModelStats holds aggregated statistics for a single model.
type ModelStats struct {
	Tokens      int // The number of keys in the table, including the start sentinel.
	Transitions int // The total number of recorded successor entries.
	Starters    int // The number of successors recorded for the start sentinel.
}

// Stats returns a snapshot of the model's table counts.
func (m *Model) Stats() ModelStats {
	var transitions int
	for _, next := range m.table {
		transitions += len(next)
	}
	return ModelStats{
		Tokens:      len(m.table),
		Transitions: transitions,
		Starters:    len(m.table[SOCToken]),
	}
}
