package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const instructionsMessage = `<p class="workouts__message">Click on the map to log your first workout</p>`

func (s *Server) MountViews() {
	s.handler.GET("/view/workouts", s.RenderWorkoutList)
}

// RenderWorkoutList serves the rendered sidebar list in its current display
// order. While the list is empty the how-to-use hint takes its place.
func (s *Server) RenderWorkoutList(c echo.Context) error {
	if s.list.Empty() {
		return c.HTML(http.StatusOK, instructionsMessage)
	}
	return c.HTML(http.StatusOK, s.list.HTML())
}
