package pipeline

// Rename is one computed (old, new) base-name pair.
type Rename struct {
	Old string
	New string
}

// RunStats tracks aggregate counters across a batch run, plus every pair
// computed so far in listing order. The pairs are identical whether or not
// the run is a dry run.
type RunStats struct {
	Total     int
	Current   int
	Renamed   int
	Unchanged int
	Failed    int
	Renames   []Rename
}

// Changed returns only the pairs whose name actually changes.
func (s *RunStats) Changed() []Rename {
	var out []Rename
	for _, r := range s.Renames {
		if r.Old != r.New {
			out = append(out, r)
		}
	}
	return out
}
