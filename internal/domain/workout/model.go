package workout

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrWorkoutExists   = errors.New("workout already exists")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrValidation      = errors.New("inputs have to be filled and positive numbers")
	ErrCorruptData     = errors.New("stored workouts are corrupted")
)

const (
	TypeRunning = "running"
	TypeCycling = "cycling"
)

const (
	EventLogged   = "workout.logged"
	EventRemoved  = "workout.removed"
	EventCleared  = "workouts.cleared"
	EventHydrated = "workouts.hydrated"
)

type Coordinates struct {
	Lat float64
	Lng float64
}

func (c Coordinates) Valid() bool {
	return finite(c.Lat, c.Lng) &&
		c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// Workout is a single logged activity. Fields are never mutated after
// construction; "editing" a workout does not exist, only removal.
type Workout struct {
	ID          string
	Type        string
	CreatedAt   time.Time
	Coords      Coordinates
	DistanceKm  float64
	DurationMin float64
	Description string

	// Variant payload: cadence for running, elevation gain for cycling.
	CadenceSpm     float64
	ElevationGainM float64

	// Derived metric, computed once at construction: pace for running,
	// speed for cycling.
	PaceMinPerKm float64
	SpeedKmPerH  float64
}

func newRunning(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, cadenceSpm float64) *Workout {
	return &Workout{
		ID:           id,
		Type:         TypeRunning,
		CreatedAt:    createdAt,
		Coords:       coords,
		DistanceKm:   distanceKm,
		DurationMin:  durationMin,
		Description:  describe(TypeRunning, createdAt),
		CadenceSpm:   cadenceSpm,
		PaceMinPerKm: durationMin / distanceKm,
	}
}

func newCycling(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, elevationGainM float64) *Workout {
	return &Workout{
		ID:             id,
		Type:           TypeCycling,
		CreatedAt:      createdAt,
		Coords:         coords,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		Description:    describe(TypeCycling, createdAt),
		ElevationGainM: elevationGainM,
		SpeedKmPerH:    distanceKm / (durationMin / 60),
	}
}

// Restore rebuilds a workout from previously persisted fields. The stored
// description and derived metric are trusted as-is so that a record reloaded
// on a later date keeps the wording and numbers of its creation day.
func Restore(
	id, typ string,
	createdAt time.Time,
	coords Coordinates,
	distanceKm, durationMin float64,
	description string,
	cadenceSpm, elevationGainM float64,
	paceMinPerKm, speedKmPerH float64,
) *Workout {
	return &Workout{
		ID:             id,
		Type:           typ,
		CreatedAt:      createdAt,
		Coords:         coords,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		Description:    description,
		CadenceSpm:     cadenceSpm,
		ElevationGainM: elevationGainM,
		PaceMinPerKm:   paceMinPerKm,
		SpeedKmPerH:    speedKmPerH,
	}
}

// Plausible reports whether a restored record looks like something this
// application could have persisted. Hydration does not re-validate numeric
// rules, it only rejects records of the wrong shape.
func (w *Workout) Plausible() bool {
	if w.ID == "" {
		return false
	}
	if w.Type != TypeRunning && w.Type != TypeCycling {
		return false
	}
	return finite(w.Coords.Lat, w.Coords.Lng, w.DistanceKm, w.DurationMin)
}

func describe(typ string, at time.Time) string {
	return fmt.Sprintf("%s%s on %s %d",
		string(typ[0]-'a'+'A'), typ[1:],
		at.Month().String(), at.Day(),
	)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type LoggedEvent struct {
	At      time.Time
	Workout *Workout
}

func (e LoggedEvent) Type() string {
	return EventLogged
}

func (e LoggedEvent) PublishedAt() time.Time {
	return e.At
}

type RemovedEvent struct {
	At        time.Time
	WorkoutID string
}

func (e RemovedEvent) Type() string {
	return EventRemoved
}

func (e RemovedEvent) PublishedAt() time.Time {
	return e.At
}

type ClearedEvent struct {
	At      time.Time
	Removed int
}

func (e ClearedEvent) Type() string {
	return EventCleared
}

func (e ClearedEvent) PublishedAt() time.Time {
	return e.At
}

type HydratedEvent struct {
	At       time.Time
	Restored int
}

func (e HydratedEvent) Type() string {
	return EventHydrated
}

func (e HydratedEvent) PublishedAt() time.Time {
	return e.At
}
