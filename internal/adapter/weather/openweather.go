package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"maptrack/internal/domain/workout"
)

var ErrWeather = errors.New("weather data request failed")

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches the current temperature from OpenWeatherMap.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

// WithBaseURL points the client at a different endpoint.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type response struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

func (c *Client) FetchTemperature(ctx context.Context, coords workout.Coordinates) (float64, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lng, 'f', -1, 64))
	query.Set("units", "metric")
	query.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, errors.Join(ErrWeather, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Join(ErrWeather, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrWeather, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, errors.Join(ErrWeather, err)
	}
	return body.Main.Temp, nil
}
