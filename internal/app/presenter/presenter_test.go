package presenter

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"maptrack/internal/domain/workout"
)

type stubList struct {
	rendered []string
	clears   int
}

func (l *stubList) RenderItem(w *workout.Workout) {
	l.rendered = append(l.rendered, w.ID)
}

func (l *stubList) RemoveItem(id string) {
	for i, r := range l.rendered {
		if r == id {
			l.rendered = append(l.rendered[:i], l.rendered[i+1:]...)
			return
		}
	}
}

func (l *stubList) Clear() {
	l.clears++
	l.rendered = nil
}

type stubMap struct {
	placed   []string
	removed  []MarkerHandle
	centered []workout.Coordinates
	placeErr error
	next     int
}

func (m *stubMap) PlaceMarker(_ workout.Coordinates, label, _ string) (MarkerHandle, error) {
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	m.placed = append(m.placed, label)
	m.next++
	return m.next, nil
}

func (m *stubMap) RemoveMarker(handle MarkerHandle) {
	m.removed = append(m.removed, handle)
}

func (m *stubMap) CenterOn(coords workout.Coordinates, _ int) {
	m.centered = append(m.centered, coords)
}

func newTestSync() (*Synchronizer, *stubList, *stubMap) {
	list := &stubList{}
	maps := &stubMap{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, list, maps), list, maps
}

func running(id string) *workout.Workout {
	return workout.Restore(
		id, workout.TypeRunning,
		time.Date(2023, time.May, 3, 7, 0, 0, 0, time.UTC),
		workout.Coordinates{Lat: 51.5, Lng: -0.1},
		5, 30, "Running on May 3", 150, 0, 6, 0,
	)
}

func TestInsertRendersItemAndMarker(t *testing.T) {
	s, list, maps := newTestSync()
	s.MapReady()

	s.OnInsert(running("a"))

	require.Equal(t, []string{"a"}, list.rendered)
	require.Equal(t, []string{"🏃‍♂️ Running on May 3"}, maps.placed)
	require.Equal(t, 1, s.MarkerCount())
}

func TestInsertThenRemoveLeavesNothing(t *testing.T) {
	s, list, maps := newTestSync()
	s.MapReady()

	s.OnInsert(running("a"))
	s.OnRemove("a")

	require.Empty(t, list.rendered)
	require.Len(t, maps.removed, 1)
	require.Equal(t, 0, s.MarkerCount())
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	s, list, maps := newTestSync()
	s.MapReady()
	s.OnInsert(running("a"))

	s.OnRemove("missing")

	require.Equal(t, []string{"a"}, list.rendered)
	require.Empty(t, maps.removed)
}

func TestRemoveAllClearsListAndMarkers(t *testing.T) {
	s, list, maps := newTestSync()
	s.MapReady()
	s.OnInsert(running("a"))
	s.OnInsert(running("b"))

	s.OnRemoveAll()

	require.Empty(t, list.rendered)
	require.Len(t, maps.removed, 2)
	require.Equal(t, 0, s.MarkerCount())
}

func TestSortRebuildsListOnlyMarkersUntouched(t *testing.T) {
	s, list, maps := newTestSync()
	s.MapReady()
	s.OnInsert(running("a"))
	s.OnInsert(running("b"))

	s.OnSort([]*workout.Workout{running("b"), running("a")})

	require.Equal(t, []string{"b", "a"}, list.rendered)
	require.Equal(t, 1, list.clears)
	require.Empty(t, maps.removed)
	require.Equal(t, 2, s.MarkerCount())
}

func TestMarkersDeferredUntilMapReady(t *testing.T) {
	s, list, maps := newTestSync()

	s.OnInsert(running("a"))
	s.OnInsert(running("b"))

	// List rendering does not depend on map readiness.
	require.Equal(t, []string{"a", "b"}, list.rendered)
	require.Empty(t, maps.placed)

	s.MapReady()

	require.Len(t, maps.placed, 2)
	require.Equal(t, 2, s.MarkerCount())
}

func TestRemoveDropsPendingPlacement(t *testing.T) {
	s, _, maps := newTestSync()

	s.OnInsert(running("a"))
	s.OnRemove("a")
	s.MapReady()

	require.Empty(t, maps.placed)
	require.Equal(t, 0, s.MarkerCount())
}

func TestFailedPlacementSkipsMarkerButKeepsListItem(t *testing.T) {
	s, list, maps := newTestSync()
	s.MapReady()
	maps.placeErr = errors.New("bridge down")

	s.OnInsert(running("a"))

	require.Equal(t, []string{"a"}, list.rendered)
	require.Equal(t, 0, s.MarkerCount())
}

func TestFocusOnCentersMapWhenReady(t *testing.T) {
	s, _, maps := newTestSync()
	w := running("a")

	s.FocusOn(w, 13)
	require.Empty(t, maps.centered)

	s.MapReady()
	s.FocusOn(w, 13)
	require.Equal(t, []workout.Coordinates{w.Coords}, maps.centered)
}
