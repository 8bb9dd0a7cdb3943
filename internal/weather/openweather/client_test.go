package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

const rigaResponse = `{
	"coord": {"lat": 56.9496, "lon": 24.1052},
	"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
	"main": {"temp": 4.5, "feels_like": 1.2, "pressure": 1012, "humidity": 60},
	"wind": {"speed": 3.4, "deg": 180},
	"clouds": {"all": 40},
	"rain": {"1h": 0.5},
	"sys": {"country": "LV"},
	"name": "Riga"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, "test-key")
}

func TestFetchByNameNormalizesResponse(t *testing.T) {
	var query url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(rigaResponse))
	})

	resolved, err := client.FetchByName(context.Background(), "Riga")
	if err != nil {
		t.Fatalf("FetchByName: %v", err)
	}

	if query.Get("q") != "Riga" || query.Get("appid") != "test-key" || query.Get("units") != "metric" {
		t.Errorf("unexpected query parameters: %v", query)
	}

	if resolved.Name != "Riga" || resolved.Country != "LV" {
		t.Errorf("resolved identity: got %q/%q", resolved.Name, resolved.Country)
	}
	if resolved.Lat != 56.9496 || resolved.Lon != 24.1052 {
		t.Errorf("resolved coordinates: got %v/%v", resolved.Lat, resolved.Lon)
	}

	r := resolved.Reading
	if r.Temperature != 4.5 || r.FeelsLike != 1.2 || r.Humidity != 60 || r.WindSpeed != 3.4 {
		t.Errorf("unexpected reading: %+v", r)
	}
	if r.Pressure == nil || *r.Pressure != 1012 {
		t.Errorf("pressure: got %v, want 1012", r.Pressure)
	}
	if r.WindDegree == nil || *r.WindDegree != 180 {
		t.Errorf("wind_degree: got %v, want 180", r.WindDegree)
	}
	if r.Clouds == nil || *r.Clouds != 40 {
		t.Errorf("clouds: got %v, want 40", r.Clouds)
	}
	if r.WeatherMain != "Clouds" || r.WeatherDescription != "scattered clouds" || r.Icon != "03d" {
		t.Errorf("condition fields: %+v", r)
	}
	if r.Rain1h == nil || *r.Rain1h != 0.5 {
		t.Errorf("rain_1h: got %v, want 0.5", r.Rain1h)
	}
	if r.Snow1h != nil {
		t.Errorf("snow_1h should be nil when the provider omits it, got %v", *r.Snow1h)
	}
}

func TestFetchByCoordinatesOmittedPrecipitation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"main": {"temp": 20, "feels_like": 19, "pressure": 1015, "humidity": 40},
			"wind": {"speed": 1.1}
		}`))
	})

	r, err := client.FetchByCoordinates(context.Background(), 56.9496, 24.1052)
	if err != nil {
		t.Fatalf("FetchByCoordinates: %v", err)
	}
	if r.Rain1h != nil || r.Snow1h != nil {
		t.Errorf("omitted precipitation objects should decode to nil, got %+v", r)
	}
	if r.WindDegree != nil || r.Clouds != nil {
		t.Errorf("omitted wind.deg and clouds should decode to nil, got %+v", r)
	}
}

func TestFetchByCoordinatesZeroPrecipitationIsNull(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
			"main": {"temp": 8, "feels_like": 6, "pressure": 1008, "humidity": 90},
			"wind": {"speed": 5.2},
			"rain": {"1h": 0},
			"snow": {"1h": 0}
		}`))
	})

	r, err := client.FetchByCoordinates(context.Background(), 56.9496, 24.1052)
	if err != nil {
		t.Fatalf("FetchByCoordinates: %v", err)
	}
	if r.Rain1h != nil {
		t.Errorf("rain_1h of 0 should normalize to nil, got %v", *r.Rain1h)
	}
	if r.Snow1h != nil {
		t.Errorf("snow_1h of 0 should normalize to nil, got %v", *r.Snow1h)
	}
}

func TestFetchByNameNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	})

	_, err := client.FetchByName(context.Background(), "Nonexistent-XYZ")
	if !errors.Is(err, weather.ErrCityNotFound) {
		t.Fatalf("got %v, want ErrCityNotFound", err)
	}
}

func TestFetchByNameServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchByName(context.Background(), "Riga")
	var provErr *weather.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("got %v, want a ProviderError", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient(http.DefaultClient, "http://localhost:0", "")

	_, err := client.FetchByCoordinates(context.Background(), 1, 2)
	var provErr *weather.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("got %v, want a ProviderError", err)
	}
}
