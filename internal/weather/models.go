package weather

import (
	"time"
)

// Units selects the measurement system for read responses. Stored data is
// always metric; conversion happens only when a record is returned.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsStandard Units = "standard"
)

// ParseUnits maps a query-string value to a Units. Unrecognized values fall
// back to metric rather than erroring.
func ParseUnits(s string) Units {
	switch Units(s) {
	case UnitsImperial:
		return UnitsImperial
	case UnitsStandard:
		return UnitsStandard
	default:
		return UnitsMetric
	}
}

// City is a tracked location. Rows are created on add-city and only ever
// removed, never updated.
type City struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewCity carries the provider-resolved attributes used to insert a City.
type NewCity struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// Snapshot is the single current weather record for a city, in canonical
// metric units (°C, hPa, m/s, mm). Pointer fields are NULL-able columns:
// the provider omits them for some locations.
type Snapshot struct {
	Temperature        float64   `json:"temperature"`
	FeelsLike          float64   `json:"feels_like"`
	Pressure           *int      `json:"pressure"`
	Humidity           int       `json:"humidity"`
	WindSpeed          float64   `json:"wind_speed"`
	WindDegree         *int      `json:"wind_degree"`
	Clouds             *int      `json:"clouds"`
	WeatherMain        string    `json:"weather_main"`
	WeatherDescription string    `json:"weather_description"`
	Icon               string    `json:"icon"`
	Rain1h             *float64  `json:"rain_1h"`
	Snow1h             *float64  `json:"snow_1h"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CityWithWeather is the flat city-left-join-snapshot row returned to
// clients. All weather fields are pointers so a city with no snapshot yet
// serializes them as explicit nulls instead of omitting them.
type CityWithWeather struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Country            string     `json:"country"`
	Lat                float64    `json:"lat"`
	Lon                float64    `json:"lon"`
	Temperature        *float64   `json:"temperature"`
	FeelsLike          *float64   `json:"feels_like"`
	Pressure           *int       `json:"pressure"`
	Humidity           *int       `json:"humidity"`
	WindSpeed          *float64   `json:"wind_speed"`
	WindDegree         *int       `json:"wind_degree"`
	Clouds             *int       `json:"clouds"`
	WeatherMain        *string    `json:"weather_main"`
	WeatherDescription *string    `json:"weather_description"`
	Icon               *string    `json:"icon"`
	Rain1h             *float64   `json:"rain_1h"`
	Snow1h             *float64   `json:"snow_1h"`
	UpdatedAt          *time.Time `json:"updated_at"`
}
