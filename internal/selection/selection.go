// Package selection tracks which CVs are picked for a match request.
package selection

import "sort"

// Set is an unordered set of document ids. The match request invariant is
// enforced with Restrict: ids must stay a subset of CVs the client currently
// knows about.
type Set struct {
	ids map[int]bool
}

func New() *Set {
	return &Set{ids: make(map[int]bool)}
}

func (s *Set) Toggle(id int) {
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

func (s *Set) Has(id int) bool {
	return s.ids[id]
}

func (s *Set) Count() int {
	return len(s.ids)
}

func (s *Set) Clear() {
	s.ids = make(map[int]bool)
}

// ToggleAll flips between the empty set and exactly the provided visible set.
// Anything selected means "deselect all"; otherwise every visible id is
// selected. CVs excluded by the active filter are never picked up.
func (s *Set) ToggleAll(visible []int) {
	if len(s.ids) > 0 {
		s.Clear()
		return
	}
	for _, id := range visible {
		s.ids[id] = true
	}
}

// IDs returns the selected ids sorted ascending for stable request payloads.
func (s *Set) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Restrict drops ids that are no longer known to the client, typically after
// a re-fetch changed the document list underneath the selection.
func (s *Set) Restrict(known []int) {
	allowed := make(map[int]bool, len(known))
	for _, id := range known {
		allowed[id] = true
	}
	for id := range s.ids {
		if !allowed[id] {
			delete(s.ids, id)
		}
	}
}
