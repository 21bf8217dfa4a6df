package set

import (
	"iter"
)

// Set is a set of comparable values that remembers the order of insertion.
// The zero value is an empty set ready to use.
//
// Removed values leave a tombstone behind which is compacted away once
// at least half of the slots are dead, so Remove is amortized O(1).
type Set[T comparable] struct {
	index   map[T]int
	entries []entry[T]
	dead    int
}

type entry[T comparable] struct {
	value T
	alive bool
}

// Insert adds the value to the end of the set. It returns false if
// the value was already present, in which case its position does not change.
func (s *Set[T]) Insert(value T) bool {
	if s.index == nil {
		s.index = make(map[T]int)
	}

	// check if the value exists
	if _, exists := s.index[value]; exists {
		return false
	}

	s.index[value] = len(s.entries)
	s.entries = append(s.entries, entry[T]{value: value, alive: true})
	return true
}

// Remove removes the value, keeping the order of the remaining values.
// It returns false if the value was not part of the set.
func (s *Set[T]) Remove(value T) bool {
	idx, exists := s.index[value]
	if !exists {
		return false
	}

	delete(s.index, value)

	var zero T
	s.entries[idx] = entry[T]{value: zero}
	s.dead += 1

	if s.dead*2 >= len(s.entries) {
		s.compact()
	}

	return true
}

func (s *Set[T]) compact() {
	live := s.entries[:0]

	for _, e := range s.entries {
		if e.alive {
			s.index[e.value] = len(live)
			live = append(live, e)
		}
	}

	clear(s.entries[len(live):])

	s.entries = live
	s.dead = 0
}

func (s *Set[T]) Has(value T) bool {
	_, exists := s.index[value]
	return exists
}

// Values iterates the values in insertion order. The set must not be modified
// while iterating.
func (s *Set[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range s.entries {
			if e.alive && !yield(e.value) {
				return
			}
		}
	}
}

// Slice returns a copy of the values in insertion order.
func (s *Set[T]) Slice() []T {
	values := make([]T, 0, s.Len())
	for value := range s.Values() {
		values = append(values, value)
	}

	return values
}

func (s *Set[T]) Len() int {
	return len(s.entries) - s.dead
}

// Drain removes all values from the set and returns them in insertion order.
func (s *Set[T]) Drain() []T {
	values := s.Slice()
	s.Clear()
	return values
}

func (s *Set[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.dead = 0
	clear(s.index)
}
