package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) MountPosition() {
	s.handler.GET("/position", s.CurrentPosition)
}

type PositionResponse struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Degraded bool    `json:"degraded"`
	Message  string  `json:"message,omitempty"`
}

// CurrentPosition reports the startup position fix. A failed fix is not an
// error response: the UI shows the informational message and carries on
// without centering the map.
func (s *Server) CurrentPosition(c echo.Context) error {
	return c.JSON(http.StatusOK, PositionResponse{
		Lat:      s.position.Coords.Lat,
		Lng:      s.position.Coords.Lng,
		Degraded: s.position.Degraded,
		Message:  s.position.Message,
	})
}
