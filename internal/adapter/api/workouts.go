package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"maptrack/internal/domain/workout"
)

func (s *Server) MountWorkouts() {
	s.handler.POST("/workouts", s.CreateWorkout)
	s.handler.GET("/workouts", s.ListWorkouts)
	s.handler.GET("/workouts/:workout_id", s.GetWorkout)
	s.handler.DELETE("/workouts/:workout_id", s.RemoveWorkout)
	s.handler.DELETE("/workouts", s.ClearWorkouts)
	s.handler.POST("/workouts/:workout_id/focus", s.FocusWorkout)
}

// CreateWorkoutRequest carries the raw form fields plus the map click
// coordinates captured when the form was opened.
type CreateWorkoutRequest struct {
	Type      string  `json:"type" validate:"required"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Distance  string  `json:"distance"`
	Duration  string  `json:"duration"`
	Cadence   string  `json:"cadence"`
	Elevation string  `json:"elevation"`
}

type WorkoutModel struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	CreatedAt      time.Time  `json:"createdAt"`
	Coordinates    [2]float64 `json:"coordinates"`
	DistanceKm     float64    `json:"distanceKm"`
	DurationMin    float64    `json:"durationMin"`
	Description    string     `json:"description"`
	CadenceSpm     float64    `json:"cadenceSpm,omitempty"`
	ElevationGainM float64    `json:"elevationGainM,omitempty"`
	PaceMinPerKm   float64    `json:"paceMinPerKm,omitempty"`
	SpeedKmPerH    float64    `json:"speedKmPerH,omitempty"`
}

func (s *Server) CreateWorkout(c echo.Context) error {
	var req CreateWorkoutRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	rawVariant := req.Cadence
	if req.Type == workout.TypeCycling {
		rawVariant = req.Elevation
	}

	coords := workout.Coordinates{Lat: req.Lat, Lng: req.Lng}
	w, err := s.tracker.Log(c.Request().Context(), req.Type, coords, req.Distance, req.Duration, rawVariant)
	if err != nil {
		if errors.Is(err, workout.ErrValidation) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, toModel(w))
}

type ListWorkoutsRequest struct {
	Sort string `query:"sort" validate:"omitempty,oneof=distance"`
}

type ListWorkoutsResponse struct {
	Workouts []WorkoutModel `json:"workouts"`
}

func (s *Server) ListWorkouts(c echo.Context) error {
	var req ListWorkoutsRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	var ws []*workout.Workout
	if req.Sort == "distance" {
		ws = s.tracker.SortedByDistance()
	} else {
		ws = s.tracker.Workouts()
	}

	return c.JSON(http.StatusOK, ListWorkoutsResponse{
		Workouts: lo.Map(ws, func(w *workout.Workout, _ int) WorkoutModel {
			return toModel(w)
		}),
	})
}

func (s *Server) GetWorkout(c echo.Context) error {
	w, err := s.tracker.Get(c.Param("workout_id"))
	if err != nil {
		if errors.Is(err, workout.ErrWorkoutNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, toModel(w))
}

func (s *Server) RemoveWorkout(c echo.Context) error {
	if !s.tracker.Remove(c.Request().Context(), c.Param("workout_id")) {
		return JsonError(c, http.StatusNotFound, workout.ErrWorkoutNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ClearWorkouts(c echo.Context) error {
	s.tracker.Clear(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) FocusWorkout(c echo.Context) error {
	if err := s.tracker.Focus(c.Param("workout_id")); err != nil {
		if errors.Is(err, workout.ErrWorkoutNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toModel(w *workout.Workout) WorkoutModel {
	return WorkoutModel{
		ID:             w.ID,
		Type:           w.Type,
		CreatedAt:      w.CreatedAt,
		Coordinates:    [2]float64{w.Coords.Lat, w.Coords.Lng},
		DistanceKm:     w.DistanceKm,
		DurationMin:    w.DurationMin,
		Description:    w.Description,
		CadenceSpm:     w.CadenceSpm,
		ElevationGainM: w.ElevationGainM,
		PaceMinPerKm:   w.PaceMinPerKm,
		SpeedKmPerH:    w.SpeedKmPerH,
	}
}
