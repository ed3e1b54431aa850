package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"time"
)

var (
	ErrConfigNotLoaded = errors.New("config not loaded")
)

type Environment string

const (
	Production  Environment = "prod"
	Development Environment = "dev"
)

func (e *Environment) SetValue(s string) error {
	*e = Environment(s)
	if *e != Production && *e != Development {
		return configNotLoadedErr(`only "prod" and "dev" environments are allowed`)
	}
	return nil
}

type StorageBackend string

const (
	BackendFile     StorageBackend = "file"
	BackendPostgres StorageBackend = "postgres"
)

func (b *StorageBackend) SetValue(s string) error {
	*b = StorageBackend(s)
	if *b != BackendFile && *b != BackendPostgres {
		return configNotLoadedErr(`only "file" and "postgres" storage backends are allowed`)
	}
	return nil
}

type Config struct {
	App struct {
		Env Environment `yaml:"env" env:"ENV" env-default:"dev"`
	} `yaml:"app" env-prefix:"APP_"`

	Server struct {
		Host string `yaml:"host" env:"HOST" env-default:"localhost"`
		Port int    `yaml:"port" env:"PORT" env-default:"8080"`
	} `yaml:"server" env-prefix:"SERVER_"`

	Storage struct {
		Backend StorageBackend `yaml:"backend" env:"BACKEND" env-default:"file"`
		Path    string         `yaml:"path" env:"PATH" env-default:"workouts.json"`
		DSN     string         `yaml:"dsn" env:"DSN"`
	} `yaml:"storage" env-prefix:"STORAGE_"`

	Map struct {
		ZoomLevel int `yaml:"zoom_level" env:"ZOOM_LEVEL" env-default:"13"`
	} `yaml:"map" env-prefix:"MAP_"`

	Weather struct {
		APIKey  string        `yaml:"api_key" env:"API_KEY"`
		Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"10s"`
	} `yaml:"weather" env-prefix:"WEATHER_"`

	Geo struct {
		Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"10s"`
		FallbackLat float64       `yaml:"fallback_lat" env:"FALLBACK_LAT" env-default:"51.5074"`
		FallbackLng float64       `yaml:"fallback_lng" env:"FALLBACK_LNG" env-default:"-0.1278"`
	} `yaml:"geo" env-prefix:"GEO_"`
}

func Load(filePath string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(filePath, cfg); err != nil {
		return nil, configNotLoadedErr("config not loaded: %w", err)
	}

	return cfg, nil
}

func MustLoad(filePath string) *Config {
	cfg, err := Load(filePath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func configNotLoadedErr(format string, args ...any) error {
	return errors.Join(fmt.Errorf(format, args...), ErrConfigNotLoaded)
}
