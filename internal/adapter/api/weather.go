package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) MountWeather() {
	s.handler.GET("/weather", s.CurrentWeather)
}

type WeatherResponse struct {
	TemperatureC float64   `json:"temperatureC"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// CurrentWeather returns the latest ambient temperature. Before the first
// successful fetch there is simply nothing to show.
func (s *Server) CurrentWeather(c echo.Context) error {
	reading, ok := s.weather.Current()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, WeatherResponse{
		TemperatureC: reading.TemperatureC,
		Lat:          reading.Coords.Lat,
		Lng:          reading.Coords.Lng,
		FetchedAt:    reading.FetchedAt,
	})
}
