package flow

// Concern identifies one debounced action.
type Concern int

const (
	ConcernLookup Concern = iota
	ConcernAmount
	concernCount
)

// Debouncer keeps at most one pending action per concern. Each Schedule
// returns a new generation; only the latest generation fires.
type Debouncer struct {
	gens [concernCount]uint64
}

// Schedule supersedes any pending action for c and returns the generation
// the caller must present when its timer fires.
func (d *Debouncer) Schedule(c Concern) uint64 {
	d.gens[c]++
	return d.gens[c]
}

// Cancel drops the pending action for c.
func (d *Debouncer) Cancel(c Concern) {
	d.gens[c]++
}

// Fire reports whether gen is still the pending action for c. A generation
// fires at most once.
func (d *Debouncer) Fire(c Concern, gen uint64) bool {
	if d.gens[c] != gen {
		return false
	}
	d.gens[c]++
	return true
}
