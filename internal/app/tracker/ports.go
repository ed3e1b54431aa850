package tracker

import (
	"context"

	"maptrack/internal/domain"
	"maptrack/internal/domain/workout"
)

// Persister saves and loads the store's contents as a unit.
type Persister interface {
	Save(ctx context.Context, workouts []*workout.Workout) error
	Load(ctx context.Context) ([]*workout.Workout, error)
}

// Synchronizer reconciles the externally visible representations after
// every store mutation.
type Synchronizer interface {
	OnInsert(w *workout.Workout)
	OnRemove(id string)
	OnRemoveAll()
	OnSort(ordered []*workout.Workout)
	OnHydrate(ordered []*workout.Workout)
	FocusOn(w *workout.Workout, zoomLevel int)
}

type MessageBus interface {
	PublishEvents(events ...domain.Event)
}
