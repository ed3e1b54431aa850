package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maptrack",
		Subsystem: "workouts",
		Name:      "logged_total",
		Help:      "Workouts logged since startup, by type.",
	}, []string{"type"})
	workoutsRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "maptrack",
		Subsystem: "workouts",
		Name:      "removed_total",
		Help:      "Single workouts removed since startup.",
	})
	workoutsCleared = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "maptrack",
		Subsystem: "workouts",
		Name:      "cleared_total",
		Help:      "Clear-all operations since startup.",
	})
	staleWeatherDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "maptrack",
		Subsystem: "weather",
		Name:      "stale_responses_discarded_total",
		Help:      "Weather responses discarded because a newer request superseded them.",
	})
)

func init() {
	prometheus.MustRegister(workoutsLogged, workoutsRemoved, workoutsCleared, staleWeatherDiscarded)
}

// RecordWorkoutLogged counts a logged workout by variant.
func RecordWorkoutLogged(typ string) {
	workoutsLogged.WithLabelValues(typ).Inc()
}

// RecordWorkoutRemoved counts one removed workout.
func RecordWorkoutRemoved() {
	workoutsRemoved.Inc()
}

// RecordWorkoutsCleared counts one clear-all.
func RecordWorkoutsCleared() {
	workoutsCleared.Inc()
}

// RecordStaleWeatherDiscarded counts a discarded stale weather response.
func RecordStaleWeatherDiscarded() {
	staleWeatherDiscarded.Inc()
}
