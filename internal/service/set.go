package service

import "sort"

// IDSet is an explicit set over user/course identifiers. The fan-out and
// assignment-diff code build their invariants on it instead of deduplicating
// slices by hand.
type IDSet map[uint]struct{}

func NewIDSet(ids ...uint) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id uint) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id uint) {
	delete(s, id)
}

func (s IDSet) Contains(id uint) bool {
	_, ok := s[id]
	return ok
}

// Values returns the members in ascending order for deterministic writes.
func (s IDSet) Values() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DiffIDs computes toAdd = new − old and toRemove = old − new.
func DiffIDs(old, new []uint) (toAdd, toRemove []uint) {
	oldSet := NewIDSet(old...)
	newSet := NewIDSet(new...)

	addSet := NewIDSet()
	for id := range newSet {
		if !oldSet.Contains(id) {
			addSet.Add(id)
		}
	}
	removeSet := NewIDSet()
	for id := range oldSet {
		if !newSet.Contains(id) {
			removeSet.Add(id)
		}
	}
	return addSet.Values(), removeSet.Values()
}
