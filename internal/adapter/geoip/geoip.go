package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"maptrack/internal/domain/workout"
)

var ErrPosition = errors.New("could not get your position")

const defaultLookupURL = "http://ip-api.com/json/"

// Locator resolves the device's approximate position from its public IP.
// A headless server has no geolocation API to ask, an IP lookup is the
// closest equivalent of the browser's position fix.
type Locator struct {
	httpClient *http.Client
	lookupURL  string
}

func New(timeout time.Duration) *Locator {
	return &Locator{
		httpClient: &http.Client{Timeout: timeout},
		lookupURL:  defaultLookupURL,
	}
}

func (l *Locator) WithLookupURL(lookupURL string) *Locator {
	l.lookupURL = lookupURL
	return l
}

type response struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l *Locator) CurrentPosition(ctx context.Context) (workout.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.lookupURL, nil)
	if err != nil {
		return workout.Coordinates{}, errors.Join(ErrPosition, err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return workout.Coordinates{}, errors.Join(ErrPosition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return workout.Coordinates{}, fmt.Errorf("%w: status %d", ErrPosition, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return workout.Coordinates{}, errors.Join(ErrPosition, err)
	}
	if body.Status != "success" {
		return workout.Coordinates{}, fmt.Errorf("%w: %s", ErrPosition, body.Message)
	}

	coords := workout.Coordinates{Lat: body.Lat, Lng: body.Lon}
	if !coords.Valid() {
		return workout.Coordinates{}, fmt.Errorf("%w: implausible coordinates", ErrPosition)
	}
	return coords, nil
}
