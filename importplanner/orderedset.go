package importplanner

import "sort"

// ordinalSet accumulates GlobalOrdinals with insert-time dedup and yields
// them back in ascending order, the same sort.Interface-driven idiom the
// teacher uses for ad hoc ordered ID collections (model_problems/Euler2D's
// EdgeKeySlice sorts a []EdgeKey directly rather than reaching for a
// container/list or a generic set type). Ascending order here is not
// cosmetic: it is what makes a rank's local node/element indexing a
// deterministic function of the redistributed ID set, per spec.md §4.4's
// ordering requirement.
type ordinalSet struct {
	seen map[int]bool
	ids  []int
}

func newOrdinalSet() *ordinalSet {
	return &ordinalSet{seen: make(map[int]bool)}
}

// add inserts id if it has not already been seen. Returns whether it was
// newly added.
func (s *ordinalSet) add(id int) bool {
	if s.seen[id] {
		return false
	}
	s.seen[id] = true
	s.ids = append(s.ids, id)
	return true
}

// sorted returns every id added so far in ascending order. The receiver's
// internal slice is sorted in place and returned directly, not copied.
func (s *ordinalSet) sorted() []int {
	sort.Ints(s.ids)
	return s.ids
}
