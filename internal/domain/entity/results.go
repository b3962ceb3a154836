package entity

// GroupedResults accumulates matched entries keyed by group name while
// preserving the configured group order and the scan order of entries
// within each group.
//
// The set of groups is fixed at construction time: one empty bucket is
// created per configured group before any scanning starts, so a group with
// zero channels or zero matches still appears in the results. Appending to
// a group that was not configured is rejected.
type GroupedResults struct {
	order   []string
	buckets map[string][]MatchedEntry
}

// NewGroupedResults creates results with one empty bucket per group, in the
// given order. Duplicate group names collapse into a single bucket.
func NewGroupedResults(groups []string) *GroupedResults {
	r := &GroupedResults{
		buckets: make(map[string][]MatchedEntry, len(groups)),
	}
	for _, g := range groups {
		if _, ok := r.buckets[g]; ok {
			continue
		}
		r.order = append(r.order, g)
		r.buckets[g] = nil
	}
	return r
}

// Append adds entries to the named group's bucket in order.
// Returns ErrUnknownGroup if the group was not configured.
func (r *GroupedResults) Append(group string, entries ...MatchedEntry) error {
	if _, ok := r.buckets[group]; !ok {
		return ErrUnknownGroup
	}
	r.buckets[group] = append(r.buckets[group], entries...)
	return nil
}

// Groups returns the group names in configured order.
func (r *GroupedResults) Groups() []string {
	return r.order
}

// Entries returns the accumulated entries for a group in scan order.
// A configured group without matches yields an empty (nil) slice.
func (r *GroupedResults) Entries(group string) []MatchedEntry {
	return r.buckets[group]
}

// Len returns the total number of accumulated entries across all groups.
func (r *GroupedResults) Len() int {
	n := 0
	for _, entries := range r.buckets {
		n += len(entries)
	}
	return n
}
