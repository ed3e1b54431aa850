package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"maptrack/internal/domain/workout"
)

// Service owns the workout lifecycle: construction through the factory,
// mutation of the store, persistence after every mutation and view
// reconciliation through the synchronizer.
type Service struct {
	logger    *slog.Logger
	factory   *workout.Factory
	store     *workout.Store
	persister Persister
	views     Synchronizer
	bus       MessageBus
	zoomLevel int
}

func New(
	logger *slog.Logger,
	factory *workout.Factory,
	store *workout.Store,
	persister Persister,
	views Synchronizer,
	bus MessageBus,
	zoomLevel int,
) *Service {
	return &Service{
		logger:    logger,
		factory:   factory,
		store:     store,
		persister: persister,
		views:     views,
		bus:       bus,
		zoomLevel: zoomLevel,
	}
}

// Log validates the raw form input, appends the new workout to the store,
// reconciles the views and persists the updated list.
func (s *Service) Log(ctx context.Context, typ string, coords workout.Coordinates, rawDistance, rawDuration, rawVariant string) (*workout.Workout, error) {
	w, err := s.factory.Create(typ, coords, rawDistance, rawDuration, rawVariant)
	if err != nil {
		return nil, err
	}

	if err := s.store.Insert(w); err != nil {
		return nil, err
	}

	s.views.OnInsert(w)
	s.persist(ctx)
	s.bus.PublishEvents(workout.LoggedEvent{At: time.Now().UTC(), Workout: w})

	return w, nil
}

// Remove deletes one workout by id and reports whether anything was removed.
func (s *Service) Remove(ctx context.Context, id string) bool {
	if !s.store.RemoveByID(id) {
		return false
	}

	s.views.OnRemove(id)
	s.persist(ctx)
	s.bus.PublishEvents(workout.RemovedEvent{At: time.Now().UTC(), WorkoutID: id})

	return true
}

// Clear removes every workout and persists the now-empty list.
func (s *Service) Clear(ctx context.Context) {
	removed := s.store.RemoveAll()

	s.views.OnRemoveAll()
	s.persist(ctx)
	s.bus.PublishEvents(workout.ClearedEvent{At: time.Now().UTC(), Removed: removed})
}

// Workouts returns canonical order.
func (s *Service) Workouts() []*workout.Workout {
	return s.store.All()
}

// Get returns one workout by id.
func (s *Service) Get(id string) (*workout.Workout, error) {
	return s.store.GetByID(id)
}

// SortedByDistance re-renders the list in distance order and returns that
// display order. The store's canonical order is unaffected.
func (s *Service) SortedByDistance() []*workout.Workout {
	sorted := s.store.SortedByDistanceAscending()
	s.views.OnSort(sorted)
	return sorted
}

// Focus centers the map on the workout's location.
func (s *Service) Focus(id string) error {
	w, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	s.views.FocusOn(w, s.zoomLevel)
	return nil
}

// Hydrate loads the persisted history into the store at startup. Corrupt
// persisted data is logged and treated as no prior data; the app starts
// with an empty list instead of crashing.
func (s *Service) Hydrate(ctx context.Context) {
	restored, err := s.persister.Load(ctx)
	if err != nil {
		if errors.Is(err, workout.ErrCorruptData) {
			s.logger.Error("persisted workouts are corrupted, starting empty", "err", err)
			return
		}
		s.logger.Error("failed to load persisted workouts, starting empty", "err", err)
		return
	}
	if len(restored) == 0 {
		return
	}

	if err := s.store.Hydrate(restored); err != nil {
		s.logger.Error("persisted workouts are corrupted, starting empty", "err", err)
		return
	}

	s.views.OnHydrate(s.store.All())
	s.bus.PublishEvents(workout.HydratedEvent{At: time.Now().UTC(), Restored: len(restored)})
}

// persist writes the current list. A failed save leaves the in-memory state
// and views correct; the next reload just misses the latest change. That is
// an accepted degraded mode, logged and otherwise swallowed.
func (s *Service) persist(ctx context.Context) {
	if err := s.persister.Save(ctx, s.store.All()); err != nil {
		s.logger.Error("failed to persist workouts", "err", err)
	}
}
