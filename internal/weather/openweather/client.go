// Package openweather is the HTTP client for the OpenWeather current
// weather API, normalizing its responses into the canonical metric shape.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client implements the weather.Provider interface for OpenWeather. Each
// fetch is a single provider call, guarded by a circuit breaker; there are
// no retries at this layer.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client. An empty baseURL selects the public API.
func NewClient(client *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// An unresolvable city name is a client-side outcome, not a
		// provider outage; it must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, weather.ErrCityNotFound)
		},
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// FetchByCoordinates queries current conditions at the given coordinates.
func (c *Client) FetchByCoordinates(ctx context.Context, lat, lon float64) (weather.Reading, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	payload, err := c.current(ctx, values)
	if err != nil {
		return weather.Reading{}, err
	}
	return payload.reading(), nil
}

// FetchByName queries current conditions by city name, returning the
// provider-resolved identity alongside the reading. A provider not-found
// status maps to weather.ErrCityNotFound.
func (c *Client) FetchByName(ctx context.Context, city string) (weather.ResolvedCity, error) {
	values := url.Values{}
	values.Set("q", city)

	payload, err := c.current(ctx, values)
	if err != nil {
		return weather.ResolvedCity{}, err
	}

	return weather.ResolvedCity{
		Name:    payload.Name,
		Country: payload.Sys.Country,
		Lat:     payload.Coord.Lat,
		Lon:     payload.Coord.Lon,
		Reading: payload.reading(),
	}, nil
}

// currentPayload mirrors the provider's nested response shape. Optional
// objects (rain, snow, clouds) decode to nil when absent.
type currentPayload struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  *int    `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   *int    `json:"deg"`
	} `json:"wind"`
	Clouds *struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneH *float64 `json:"1h"`
	} `json:"rain"`
	Snow *struct {
		OneH *float64 `json:"1h"`
	} `json:"snow"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

func (p *currentPayload) reading() weather.Reading {
	r := weather.Reading{
		Temperature: p.Main.Temp,
		FeelsLike:   p.Main.FeelsLike,
		Pressure:    p.Main.Pressure,
		Humidity:    p.Main.Humidity,
		WindSpeed:   p.Wind.Speed,
		WindDegree:  p.Wind.Deg,
	}

	if p.Clouds != nil {
		clouds := p.Clouds.All
		r.Clouds = &clouds
	}
	if len(p.Weather) > 0 {
		r.WeatherMain = p.Weather[0].Main
		r.WeatherDescription = p.Weather[0].Description
		r.Icon = p.Weather[0].Icon
	}
	// A present-but-zero 1h volume reads the same as no precipitation.
	if p.Rain != nil && p.Rain.OneH != nil && *p.Rain.OneH != 0 {
		r.Rain1h = p.Rain.OneH
	}
	if p.Snow != nil && p.Snow.OneH != nil && *p.Snow.OneH != 0 {
		r.Snow1h = p.Snow.OneH
	}
	return r
}

// current performs one guarded call against the /weather endpoint.
func (c *Client) current(ctx context.Context, values url.Values) (*currentPayload, error) {
	if c.apiKey == "" {
		return nil, &weather.ProviderError{Op: "current", Err: errors.New("api key is not configured")}
	}

	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &weather.ProviderError{Op: "current", Err: err}
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, weather.ErrCityNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
		}

		var payload currentPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return &payload, nil
	})
	if err != nil {
		if errors.Is(err, weather.ErrCityNotFound) {
			return nil, err
		}
		return nil, &weather.ProviderError{Op: "current", Err: err}
	}

	payload, ok := result.(*currentPayload)
	if !ok {
		return nil, &weather.ProviderError{Op: "current", Err: errors.New("unexpected result type from circuit breaker")}
	}
	return payload, nil
}
