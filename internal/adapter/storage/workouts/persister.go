package workoutstorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"maptrack/internal/adapter/storage"
	"maptrack/internal/domain/workout"
)

// Key is the single logical record the whole workout list lives under.
const Key = "workouts"

// Record is the persisted wire shape of one workout.
type Record struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	Coordinates    [2]float64 `json:"coordinates"`
	DistanceKm     float64    `json:"distanceKm"`
	DurationMin    float64    `json:"durationMin"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	CadenceSpm     float64    `json:"cadenceSpm,omitempty"`
	ElevationGainM float64    `json:"elevationGainM,omitempty"`
	PaceMinPerKm   float64    `json:"paceMinPerKm,omitempty"`
	SpeedKmPerH    float64    `json:"speedKmPerH,omitempty"`
}

// Storage serializes the store's contents as a unit through the KV backend.
type Storage struct {
	kv storage.KV
}

func New(kv storage.KV) *Storage {
	return &Storage{kv: kv}
}

func (s *Storage) Save(ctx context.Context, workouts []*workout.Workout) error {
	records := lo.Map(workouts, func(w *workout.Workout, _ int) Record {
		return toRecord(w)
	})

	data, err := json.Marshal(records)
	if err != nil {
		return storage.WriteError(err)
	}
	return s.kv.Set(ctx, Key, data)
}

// Load reads the persisted list back. An absent key is an empty history,
// not an error; content that is present but unparseable is corrupt data.
func (s *Storage) Load(ctx context.Context) ([]*workout.Workout, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", workout.ErrCorruptData, err)
	}

	return lo.Map(records, func(r Record, _ int) *workout.Workout {
		return fromRecord(r)
	}), nil
}

func toRecord(w *workout.Workout) Record {
	return Record{
		ID:             w.ID,
		CreatedAt:      w.CreatedAt,
		Coordinates:    [2]float64{w.Coords.Lat, w.Coords.Lng},
		DistanceKm:     w.DistanceKm,
		DurationMin:    w.DurationMin,
		Description:    w.Description,
		Type:           w.Type,
		CadenceSpm:     w.CadenceSpm,
		ElevationGainM: w.ElevationGainM,
		PaceMinPerKm:   w.PaceMinPerKm,
		SpeedKmPerH:    w.SpeedKmPerH,
	}
}

func fromRecord(r Record) *workout.Workout {
	return workout.Restore(
		r.ID, r.Type,
		r.CreatedAt,
		workout.Coordinates{Lat: r.Coordinates[0], Lng: r.Coordinates[1]},
		r.DistanceKm, r.DurationMin,
		r.Description,
		r.CadenceSpm, r.ElevationGainM,
		r.PaceMinPerKm, r.SpeedKmPerH,
	)
}
