package workout

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Factory validates raw form input and constructs the matching workout
// variant. Construction is pure: a failed validation leaves no trace.
type Factory struct {
	validate *validator.Validate
	now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewFactory() *Factory {
	return &Factory{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

type runningInput struct {
	Lat         float64 `validate:"gte=-90,lte=90"`
	Lng         float64 `validate:"gte=-180,lte=180"`
	DistanceKm  float64 `validate:"gt=0"`
	DurationMin float64 `validate:"gt=0"`
	CadenceSpm  float64 `validate:"gt=0"`
}

type cyclingInput struct {
	Lat            float64 `validate:"gte=-90,lte=90"`
	Lng            float64 `validate:"gte=-180,lte=180"`
	DistanceKm     float64 `validate:"gt=0"`
	DurationMin    float64 `validate:"gt=0"`
	ElevationGainM float64 `validate:"gte=0"`
}

// Create parses the raw numeric fields and returns a fully initialized
// workout of the requested variant. The variant field is cadence (steps/min)
// for running and elevation gain (meters) for cycling; elevation may be zero,
// a perfectly flat ride is a valid ride.
func (f *Factory) Create(typ string, coords Coordinates, rawDistance, rawDuration, rawVariant string) (*Workout, error) {
	if typ != TypeRunning && typ != TypeCycling {
		return nil, fmt.Errorf("unknown workout type %q: %w", typ, ErrValidation)
	}

	distance, err1 := parseNumber(rawDistance)
	duration, err2 := parseNumber(rawDuration)
	variant, err3 := parseNumber(rawVariant)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, ErrValidation
	}

	if !finite(coords.Lat, coords.Lng, distance, duration, variant) {
		return nil, ErrValidation
	}

	var in any
	switch typ {
	case TypeRunning:
		in = runningInput{
			Lat:         coords.Lat,
			Lng:         coords.Lng,
			DistanceKm:  distance,
			DurationMin: duration,
			CadenceSpm:  variant,
		}
	case TypeCycling:
		in = cyclingInput{
			Lat:            coords.Lat,
			Lng:            coords.Lng,
			DistanceKm:     distance,
			DurationMin:    duration,
			ElevationGainM: variant,
		}
	}
	if err := f.validate.Struct(in); err != nil {
		return nil, ErrValidation
	}

	createdAt := f.now().UTC()
	id := f.nextID(createdAt)

	if typ == TypeRunning {
		return newRunning(id, createdAt, coords, distance, duration, variant), nil
	}
	return newCycling(id, createdAt, coords, distance, duration, variant), nil
}

// nextID derives the identifier from the creation timestamp, keeping the
// last ten digits of the millisecond clock. Two creations inside the same
// millisecond get consecutive values instead of colliding.
func (f *Factory) nextID(at time.Time) string {
	ms := at.UnixMilli()

	f.mu.Lock()
	if ms <= f.lastID {
		ms = f.lastID + 1
	}
	f.lastID = ms
	f.mu.Unlock()

	s := strconv.FormatInt(ms, 10)
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}

func parseNumber(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
