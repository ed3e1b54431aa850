package weatherservice

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"maptrack/internal/domain/workout"
)

// Provider fetches the ambient temperature for a coordinate.
type Provider interface {
	FetchTemperature(ctx context.Context, coords workout.Coordinates) (float64, error)
}

// Reading is the most recent temperature the user cares about.
type Reading struct {
	TemperatureC float64
	Coords       workout.Coordinates
	FetchedAt    time.Time
}

// Service keeps the current ambient temperature for the coordinate the user
// last interacted with. Fetches run in the background; every refresh bumps a
// request epoch and a response whose epoch is no longer current is discarded,
// so a slow fetch can never overwrite the temperature of a newer location.
type Service struct {
	logger   *slog.Logger
	provider Provider
	timeout  time.Duration

	// OnStaleDiscard, when set, is called for every discarded response.
	OnStaleDiscard func()

	epoch atomic.Uint64

	mu      sync.Mutex
	current *Reading
}

func New(logger *slog.Logger, provider Provider, timeout time.Duration) *Service {
	return &Service{
		logger:   logger,
		provider: provider,
		timeout:  timeout,
	}
}

// Refresh makes coords the current location of interest and fetches its
// temperature in the background. A provider failure is non-fatal: the app
// stays usable without a temperature display.
func (s *Service) Refresh(coords workout.Coordinates) {
	epoch := s.epoch.Add(1)
	go s.fetch(epoch, coords)
}

// Current returns the latest reading, if any fetch has succeeded yet.
func (s *Service) Current() (Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Reading{}, false
	}
	return *s.current, true
}

func (s *Service) fetch(epoch uint64, coords workout.Coordinates) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	temp, err := s.provider.FetchTemperature(ctx, coords)
	if err != nil {
		s.logger.Warn("failed to fetch temperature", "lat", coords.Lat, "lng", coords.Lng, "err", err)
		return
	}

	s.apply(epoch, Reading{
		TemperatureC: temp,
		Coords:       coords,
		FetchedAt:    time.Now().UTC(),
	})
}

func (s *Service) apply(epoch uint64, r Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch.Load() {
		s.logger.Debug("discarding stale temperature response", "lat", r.Coords.Lat, "lng", r.Coords.Lng)
		if s.OnStaleDiscard != nil {
			s.OnStaleDiscard()
		}
		return
	}
	s.current = &r
}
