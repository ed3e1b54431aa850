package presenter

import (
	"log/slog"
	"sync"

	"maptrack/internal/domain/workout"
)

// MarkerHandle is whatever the map surface returns for a placed marker.
// The synchronizer only stores it and hands it back for removal.
type MarkerHandle any

type MapWidget interface {
	PlaceMarker(coords workout.Coordinates, label, variantKey string) (MarkerHandle, error)
	RemoveMarker(handle MarkerHandle)
	CenterOn(coords workout.Coordinates, zoomLevel int)
}

type ListView interface {
	RenderItem(w *workout.Workout)
	RemoveItem(id string)
	Clear()
}

// Synchronizer reconciles the two external representations, rendered list
// and marker set, with the store after every mutation. Each operation runs
// under one lock so no reader observes a list without its marker or the
// other way round.
//
// The list never waits for the map: while the map surface is not ready,
// marker placements are queued and replayed on MapReady, list rendering
// proceeds immediately.
type Synchronizer struct {
	logger *slog.Logger
	list   ListView
	maps   MapWidget

	mu       sync.Mutex
	markers  map[string]MarkerHandle
	pending  []*workout.Workout
	mapReady bool
}

func New(logger *slog.Logger, list ListView, maps MapWidget) *Synchronizer {
	return &Synchronizer{
		logger:  logger,
		list:    list,
		maps:    maps,
		markers: make(map[string]MarkerHandle),
	}
}

// OnInsert appends one rendered list item and one marker for the workout.
func (s *Synchronizer) OnInsert(w *workout.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.RenderItem(w)
	s.placeMarker(w)
}

// OnRemove drops the rendered item and the marker keyed by id.
func (s *Synchronizer) OnRemove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.RemoveItem(id)

	if handle, ok := s.markers[id]; ok {
		s.maps.RemoveMarker(handle)
		delete(s.markers, id)
	}
	for i, w := range s.pending {
		if w.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
}

// OnRemoveAll clears every rendered item and disposes every marker.
func (s *Synchronizer) OnRemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.Clear()
	for id, handle := range s.markers {
		s.maps.RemoveMarker(handle)
		delete(s.markers, id)
	}
	s.pending = nil
}

// OnSort rebuilds the rendered list in the given display order. Markers are
// untouched: sorting changes what the list shows, not what the map shows.
func (s *Synchronizer) OnSort(ordered []*workout.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.Clear()
	for _, w := range ordered {
		s.list.RenderItem(w)
	}
}

// OnHydrate renders the restored history. Markers wait for the map.
func (s *Synchronizer) OnHydrate(ordered []*workout.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.Clear()
	for _, w := range ordered {
		s.list.RenderItem(w)
		s.placeMarker(w)
	}
}

// MapReady marks the map surface usable and replays queued placements.
func (s *Synchronizer) MapReady() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mapReady = true
	pending := s.pending
	s.pending = nil
	for _, w := range pending {
		s.placeMarker(w)
	}
}

// FocusOn centers the map on the workout's coordinates.
func (s *Synchronizer) FocusOn(w *workout.Workout, zoomLevel int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mapReady {
		return
	}
	s.maps.CenterOn(w.Coords, zoomLevel)
}

// MarkerCount reports how many markers are currently placed.
func (s *Synchronizer) MarkerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markers)
}

func (s *Synchronizer) placeMarker(w *workout.Workout) {
	if !s.mapReady {
		s.pending = append(s.pending, w)
		return
	}

	handle, err := s.maps.PlaceMarker(w.Coords, markerLabel(w), w.Type)
	if err != nil {
		// A marker that failed to place is skipped, the list stays.
		s.logger.Warn("failed to place marker", "workout_id", w.ID, "err", err)
		return
	}
	s.markers[w.ID] = handle
}

func markerLabel(w *workout.Workout) string {
	if w.Type == workout.TypeRunning {
		return "🏃‍♂️ " + w.Description
	}
	return "🚴‍♀️ " + w.Description
}
