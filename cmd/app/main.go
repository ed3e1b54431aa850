package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leporo/sqlf"

	"maptrack/internal/adapter/api"
	"maptrack/internal/adapter/geoip"
	"maptrack/internal/adapter/mapbridge"
	"maptrack/internal/adapter/storage"
	"maptrack/internal/adapter/storage/kvfile"
	"maptrack/internal/adapter/storage/kvpg"
	workoutstorage "maptrack/internal/adapter/storage/workouts"
	"maptrack/internal/adapter/view"
	"maptrack/internal/adapter/weather"
	"maptrack/internal/app/messagebus"
	"maptrack/internal/app/presenter"
	trackerservice "maptrack/internal/app/tracker"
	weatherservice "maptrack/internal/app/weather"
	"maptrack/internal/config"
	"maptrack/internal/domain"
	"maptrack/internal/domain/workout"
	"maptrack/internal/observability"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger := initLogger(cfg)

	kv := openStorage(cfg)
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.Timeout)
	weatherSvc := weatherservice.New(logger, weatherClient, cfg.Weather.Timeout)
	weatherSvc.OnStaleDiscard = observability.RecordStaleWeatherDiscarded

	bus := messagebus.New(logger)
	bus.Register(workout.EventLogged, func(event domain.Event) error {
		logged, ok := event.(workout.LoggedEvent)
		if !ok {
			return nil
		}
		observability.RecordWorkoutLogged(logged.Workout.Type)
		weatherSvc.Refresh(logged.Workout.Coords)
		return nil
	})
	bus.Register(workout.EventRemoved, func(domain.Event) error {
		observability.RecordWorkoutRemoved()
		return nil
	})
	bus.Register(workout.EventCleared, func(domain.Event) error {
		observability.RecordWorkoutsCleared()
		return nil
	})

	list := view.NewList()
	bridge := mapbridge.New(logger)
	views := presenter.New(logger, list, bridge)
	bridge.OnAttach = views.MapReady

	tracker := trackerservice.New(
		logger,
		workout.NewFactory(),
		workout.NewStore(),
		workoutstorage.New(kv),
		views,
		bus,
		cfg.Map.ZoomLevel,
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	tracker.Hydrate(startupCtx)
	position := locatePosition(startupCtx, cfg, logger)
	if !position.Degraded {
		weatherSvc.Refresh(position.Coords)
	}

	server := api.NewServer(
		api.Addr(cfg.Server.Host, cfg.Server.Port),
		api.Logger(logger),
		api.TrackerService(tracker),
		api.WeatherService(weatherSvc),
		api.ListView(list),
		api.MapBridge(bridge),
		api.Position(position),
	)

	ctx := context.Background()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error)

	go func() {
		defer close(errCh)
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server was not shutdown gracefully", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server closed with unexpected error", "error", err)
			}
		}
	}
	logger.Info("server shutdown")
}

func openStorage(cfg *config.Config) storage.KV {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		sqlf.SetDialect(sqlf.PostgreSQL)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		kv, err := kvpg.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			panic("failed to connect database: " + err.Error())
		}
		return kv
	default:
		kv, err := kvfile.Open(cfg.Storage.Path)
		if err != nil {
			panic("failed to open storage file: " + err.Error())
		}
		return kv
	}
}

// locatePosition resolves the starting map position. A failed lookup is not
// fatal, the app starts on the configured fallback coordinates instead.
func locatePosition(ctx context.Context, cfg *config.Config, logger *slog.Logger) api.PositionInfo {
	locator := geoip.New(cfg.Geo.Timeout)

	coords, err := locator.CurrentPosition(ctx)
	if err != nil {
		logger.Warn("position lookup failed, using fallback", "error", err)
		return api.PositionInfo{
			Coords:   workout.Coordinates{Lat: cfg.Geo.FallbackLat, Lng: cfg.Geo.FallbackLng},
			Degraded: true,
			Message:  geoip.ErrPosition.Error(),
		}
	}

	return api.PositionInfo{Coords: coords}
}

func initLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.App.Env {
	case config.Development:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		})
	case config.Production:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelInfo,
		})
	default:
		panic("invalid env")
	}

	return slog.New(handler)
}
