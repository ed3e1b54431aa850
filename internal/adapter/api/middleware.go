package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
)

// DeviceInfo annotates request logs with the parsed client device. The app
// is single-user, but that user jumps between phone and laptop; knowing
// which device hit the API makes the logs legible.
func DeviceInfo(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ua := useragent.Parse(c.Request().UserAgent())
			logger.Debug("request device",
				"browser", ua.Name,
				"os", ua.OS,
				"mobile", ua.Mobile,
			)
			return next(c)
		}
	}
}
