package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"maptrack/internal/domain"
	"maptrack/internal/domain/workout"
)

var testCoords = workout.Coordinates{Lat: 51.5, Lng: -0.1}

type stubPersister struct {
	saved   [][]*workout.Workout
	saveErr error
	loaded  []*workout.Workout
	loadErr error
}

func (p *stubPersister) Save(_ context.Context, ws []*workout.Workout) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = append(p.saved, ws)
	return nil
}

func (p *stubPersister) Load(context.Context) ([]*workout.Workout, error) {
	return p.loaded, p.loadErr
}

type stubViews struct {
	inserted  []string
	removed   []string
	clears    int
	sorted    [][]*workout.Workout
	hydrated  []string
	focused   []string
	zoomLevel int
}

func (v *stubViews) OnInsert(w *workout.Workout) { v.inserted = append(v.inserted, w.ID) }
func (v *stubViews) OnRemove(id string)          { v.removed = append(v.removed, id) }
func (v *stubViews) OnRemoveAll()                { v.clears++ }
func (v *stubViews) OnSort(ordered []*workout.Workout) {
	v.sorted = append(v.sorted, ordered)
}
func (v *stubViews) OnHydrate(ordered []*workout.Workout) {
	for _, w := range ordered {
		v.hydrated = append(v.hydrated, w.ID)
	}
}
func (v *stubViews) FocusOn(w *workout.Workout, zoomLevel int) {
	v.focused = append(v.focused, w.ID)
	v.zoomLevel = zoomLevel
}

type stubBus struct {
	events []domain.Event
}

func (b *stubBus) PublishEvents(events ...domain.Event) {
	b.events = append(b.events, events...)
}

func newTestService() (*Service, *stubPersister, *stubViews, *stubBus) {
	persister := &stubPersister{}
	views := &stubViews{}
	bus := &stubBus{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(logger, workout.NewFactory(), workout.NewStore(), persister, views, bus, 13)
	return svc, persister, views, bus
}

func TestLogRunningWorkout(t *testing.T) {
	svc, persister, views, bus := newTestService()

	w, err := svc.Log(context.Background(), workout.TypeRunning, testCoords, "5", "30", "150")
	require.NoError(t, err)

	require.Equal(t, 6.0, w.PaceMinPerKm)
	require.Contains(t, w.Description, w.CreatedAt.Month().String())

	require.Equal(t, []string{w.ID}, views.inserted)
	require.Len(t, persister.saved, 1)
	require.Len(t, persister.saved[0], 1)
	require.Len(t, bus.events, 1)
	require.Equal(t, workout.EventLogged, bus.events[0].Type())
}

func TestLogCyclingWorkout(t *testing.T) {
	svc, _, _, _ := newTestService()

	w, err := svc.Log(context.Background(), workout.TypeCycling, testCoords, "20", "60", "400")
	require.NoError(t, err)
	require.Equal(t, 20.0, w.SpeedKmPerH)
}

func TestLogInvalidInputLeavesEverythingUntouched(t *testing.T) {
	svc, persister, views, bus := newTestService()

	_, err := svc.Log(context.Background(), workout.TypeRunning, testCoords, "-5", "30", "150")
	require.ErrorIs(t, err, workout.ErrValidation)

	require.Empty(t, svc.Workouts())
	require.Empty(t, views.inserted)
	require.Empty(t, persister.saved)
	require.Empty(t, bus.events)
}

func TestLogThenRemoveRoundTrip(t *testing.T) {
	svc, persister, views, _ := newTestService()
	ctx := context.Background()

	w, err := svc.Log(ctx, workout.TypeRunning, testCoords, "5", "30", "150")
	require.NoError(t, err)

	require.True(t, svc.Remove(ctx, w.ID))
	require.False(t, svc.Remove(ctx, w.ID))

	require.Empty(t, svc.Workouts())
	require.Equal(t, []string{w.ID}, views.removed)
	// Second save persisted the empty list.
	require.Len(t, persister.saved, 2)
	require.Empty(t, persister.saved[1])
}

func TestClearEmptiesStoreViewsAndPersistsEmptyList(t *testing.T) {
	svc, persister, views, bus := newTestService()
	ctx := context.Background()

	_, err := svc.Log(ctx, workout.TypeRunning, testCoords, "5", "30", "150")
	require.NoError(t, err)
	_, err = svc.Log(ctx, workout.TypeCycling, testCoords, "20", "60", "400")
	require.NoError(t, err)

	svc.Clear(ctx)

	require.Empty(t, svc.Workouts())
	require.Equal(t, 1, views.clears)
	require.Empty(t, persister.saved[len(persister.saved)-1])
	require.Equal(t, workout.EventCleared, bus.events[len(bus.events)-1].Type())
}

func TestSortedByDistanceRerendersListOnly(t *testing.T) {
	svc, _, views, _ := newTestService()
	ctx := context.Background()

	far, err := svc.Log(ctx, workout.TypeRunning, testCoords, "10", "60", "150")
	require.NoError(t, err)
	near, err := svc.Log(ctx, workout.TypeRunning, testCoords, "2", "10", "150")
	require.NoError(t, err)

	sorted := svc.SortedByDistance()
	require.Equal(t, []string{near.ID, far.ID}, []string{sorted[0].ID, sorted[1].ID})

	// Canonical order stays put.
	all := svc.Workouts()
	require.Equal(t, far.ID, all[0].ID)
	require.Len(t, views.sorted, 1)
}

func TestFocusCentersOnStoredWorkout(t *testing.T) {
	svc, _, views, _ := newTestService()

	w, err := svc.Log(context.Background(), workout.TypeRunning, testCoords, "5", "30", "150")
	require.NoError(t, err)

	require.NoError(t, svc.Focus(w.ID))
	require.Equal(t, []string{w.ID}, views.focused)
	require.Equal(t, 13, views.zoomLevel)

	require.ErrorIs(t, svc.Focus("missing"), workout.ErrWorkoutNotFound)
}

func TestSaveFailureIsLoggedNotFatal(t *testing.T) {
	svc, persister, views, _ := newTestService()
	persister.saveErr = errors.New("quota exceeded")

	w, err := svc.Log(context.Background(), workout.TypeRunning, testCoords, "5", "30", "150")
	require.NoError(t, err)

	// In-memory store and views stay correct on a failed save.
	require.Len(t, svc.Workouts(), 1)
	require.Equal(t, []string{w.ID}, views.inserted)
}

func TestHydrateRestoresHistory(t *testing.T) {
	svc, persister, views, bus := newTestService()

	f := workout.NewFactory()
	a, err := f.Create(workout.TypeRunning, testCoords, "5", "30", "150")
	require.NoError(t, err)
	b, err := f.Create(workout.TypeCycling, testCoords, "20", "60", "400")
	require.NoError(t, err)
	persister.loaded = []*workout.Workout{a, b}

	svc.Hydrate(context.Background())

	require.Len(t, svc.Workouts(), 2)
	require.Equal(t, []string{a.ID, b.ID}, views.hydrated)
	require.Equal(t, workout.EventHydrated, bus.events[0].Type())
}

func TestHydrateCorruptDataStartsEmpty(t *testing.T) {
	svc, persister, views, _ := newTestService()
	persister.loadErr = workout.ErrCorruptData

	svc.Hydrate(context.Background())

	require.Empty(t, svc.Workouts())
	require.Empty(t, views.hydrated)
}
