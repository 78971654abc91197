// Package analyze implements the race-relevance pipeline: access-set
// construction, per-transition relevance classification, description
// annotation and stack sanitization over a recorded trace.
package analyze

import "github.com/racelens/racelens/internal/event"

// ThreadSet is a deduplicated set of thread ids.
type ThreadSet map[int]struct{}

// AccessSets records, per address, which threads wrote and which read.
// Built once from the full unfiltered trace so that later trace trimming
// cannot change classification.
type AccessSets struct {
	Writers map[string]ThreadSet
	Readers map[string]ThreadSet
}

// BuildAccessSets folds all transition events into per-address reader and
// writer thread sets. Annotations are ignored. Event order is irrelevant.
func BuildAccessSets(events []*event.Event) *AccessSets {
	sets := &AccessSets{
		Writers: make(map[string]ThreadSet),
		Readers: make(map[string]ThreadSet),
	}
	for _, ev := range events {
		if !ev.IsTransition() {
			continue
		}
		if ev.DoesWrite {
			sets.add(sets.Writers, ev.Address, ev.Thread)
		} else {
			sets.add(sets.Readers, ev.Address, ev.Thread)
		}
	}
	return sets
}

func (s *AccessSets) add(m map[string]ThreadSet, address string, thread int) {
	set, ok := m[address]
	if !ok {
		set = make(ThreadSet)
		m[address] = set
	}
	set[thread] = struct{}{}
}
