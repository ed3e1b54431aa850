package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maptrack/internal/domain/workout"
)

func (s *Server) MountMap() {
	s.handler.GET("/map/events", s.StreamMapEvents)
	s.handler.POST("/map/click", s.MapClick)
}

// StreamMapEvents is the marker command stream the map page listens to.
// Attaching replays the live marker set, then commands follow as they
// happen.
func (s *Server) StreamMapEvents(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for payload := range s.bridge.Subscribe(ctx) {
		if _, err := res.Write(payload); err != nil {
			return nil
		}
		res.Flush()
	}
	return nil
}

type MapClickRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// MapClick mirrors the map click of the UI: the clicked coordinate becomes
// the current location of interest and its temperature is fetched in the
// background.
func (s *Server) MapClick(c echo.Context) error {
	var req MapClickRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	s.weather.Refresh(workout.Coordinates{Lat: req.Lat, Lng: req.Lng})
	return c.NoContent(http.StatusAccepted)
}
