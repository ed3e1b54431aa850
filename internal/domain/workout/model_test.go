package workout

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRestoreTrustsPersistedFields(t *testing.T) {
	createdAt := time.Date(2022, time.December, 25, 10, 0, 0, 0, time.UTC)

	// The description says December even if the record is restored in July:
	// derived fields are read back, never recomputed.
	w := Restore(
		"167196240000", TypeRunning,
		createdAt, testCoords,
		5, 30,
		"Running on December 25",
		150, 0,
		6, 0,
	)

	require.Equal(t, "Running on December 25", w.Description)
	require.Equal(t, 6.0, w.PaceMinPerKm)
	require.Equal(t, createdAt, w.CreatedAt)
	require.True(t, w.Plausible())
}

func TestPlausible(t *testing.T) {
	good := testWorkout("a", 5)
	require.True(t, good.Plausible())

	noID := testWorkout("", 5)
	require.False(t, noID.Plausible())

	badType := testWorkout("a", 5)
	badType.Type = "swimming"
	require.False(t, badType.Plausible())

	badDistance := testWorkout("a", 5)
	badDistance.DistanceKm = math.NaN()
	require.False(t, badDistance.Plausible())
}

func TestCoordinatesValid(t *testing.T) {
	require.True(t, Coordinates{Lat: 51.5, Lng: -0.1}.Valid())
	require.True(t, Coordinates{Lat: -90, Lng: 180}.Valid())
	require.False(t, Coordinates{Lat: 90.5, Lng: 0}.Valid())
	require.False(t, Coordinates{Lat: 0, Lng: 180.5}.Valid())
	require.False(t, Coordinates{Lat: math.NaN(), Lng: 0}.Valid())
}
