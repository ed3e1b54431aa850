package api

import (
	"log/slog"
	"net"
	"strconv"

	"maptrack/internal/adapter/mapbridge"
	"maptrack/internal/adapter/view"
	trackerservice "maptrack/internal/app/tracker"
	weatherservice "maptrack/internal/app/weather"
	"maptrack/internal/domain/workout"
)

type Option func(*Server)

func Addr(host string, port int) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

func Logger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func TrackerService(service *trackerservice.Service) Option {
	return func(s *Server) {
		s.tracker = service
	}
}

func WeatherService(service *weatherservice.Service) Option {
	return func(s *Server) {
		s.weather = service
	}
}

func ListView(list *view.List) Option {
	return func(s *Server) {
		s.list = list
	}
}

func MapBridge(bridge *mapbridge.Bridge) Option {
	return func(s *Server) {
		s.bridge = bridge
	}
}

// PositionInfo is the startup position fix exposed to the UI. A failed fix
// leaves the app usable, the UI just shows an informational message instead
// of centering the map.
type PositionInfo struct {
	Coords   workout.Coordinates
	Degraded bool
	Message  string
}

func Position(info PositionInfo) Option {
	return func(s *Server) {
		s.position = info
	}
}
