package workout

import (
	"fmt"
	"sort"
	"sync"
)

// Store is the authoritative ordered collection of workouts. Canonical order
// is insertion order; sorting produces a display order and never reorders
// the store itself. The store is the only writer of its sequence, readers
// get copies.
type Store struct {
	mu    sync.RWMutex
	seq   []*Workout
	index map[string]*Workout
}

func NewStore() *Store {
	return &Store{
		index: make(map[string]*Workout),
	}
}

// Insert appends the workout to canonical order. Identifiers are unique
// within the store at any instant.
func (s *Store) Insert(w *Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[w.ID]; ok {
		return fmt.Errorf("%w: id %s", ErrWorkoutExists, w.ID)
	}
	s.seq = append(s.seq, w)
	s.index[w.ID] = w
	return nil
}

// RemoveByID removes the matching workout and reports whether a removal
// occurred. An absent id is a no-op, not an error.
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, w := range s.seq {
		if w.ID == id {
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			break
		}
	}
	return true
}

// RemoveAll empties canonical order and returns how many workouts were held.
func (s *Store) RemoveAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.seq)
	s.seq = nil
	s.index = make(map[string]*Workout)
	return n
}

// GetByID returns the workout with the given id.
func (s *Store) GetByID(id string) (*Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", ErrWorkoutNotFound, id)
	}
	return w, nil
}

// All returns canonical order.
func (s *Store) All() []*Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Workout, len(s.seq))
	copy(out, s.seq)
	return out
}

// SortedByDistanceAscending returns a display order sorted by distance.
// The sort is stable: workouts with equal distance keep their canonical
// relative order.
func (s *Store) SortedByDistanceAscending() []*Workout {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Len reports the number of stored workouts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seq)
}

// Hydrate replaces canonical order wholesale from persisted records. It is
// used once at startup and trusts prior persistence: numeric rules are not
// re-checked, but records of the wrong shape reject the whole batch.
func (s *Store) Hydrate(seq []*Workout) error {
	index := make(map[string]*Workout, len(seq))
	for _, w := range seq {
		if w == nil || !w.Plausible() {
			return ErrCorruptData
		}
		if _, ok := index[w.ID]; ok {
			return fmt.Errorf("%w: duplicate id %s", ErrCorruptData, w.ID)
		}
		index[w.ID] = w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = append([]*Workout(nil), seq...)
	s.index = index
	return nil
}
