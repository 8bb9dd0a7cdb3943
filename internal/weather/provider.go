package weather

import (
	"context"
	"time"
)

// Reading is a provider response normalized into canonical metric units.
type Reading struct {
	Temperature        float64
	FeelsLike          float64
	Pressure           *int
	Humidity           int
	WindSpeed          float64
	WindDegree         *int
	Clouds             *int
	WeatherMain        string
	WeatherDescription string
	Icon               string
	Rain1h             *float64
	Snow1h             *float64
}

// Snapshot converts a reading into a storable snapshot stamped with the
// fetch time.
func (r Reading) Snapshot(at time.Time) Snapshot {
	return Snapshot{
		Temperature:        r.Temperature,
		FeelsLike:          r.FeelsLike,
		Pressure:           r.Pressure,
		Humidity:           r.Humidity,
		WindSpeed:          r.WindSpeed,
		WindDegree:         r.WindDegree,
		Clouds:             r.Clouds,
		WeatherMain:        r.WeatherMain,
		WeatherDescription: r.WeatherDescription,
		Icon:               r.Icon,
		Rain1h:             r.Rain1h,
		Snow1h:             r.Snow1h,
		UpdatedAt:          at,
	}
}

// ResolvedCity is a by-name provider response: the reading plus the
// identity the provider resolved the name to, used to seed a new city row.
type ResolvedCity struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
	Reading Reading
}

// Provider abstracts the external weather API. A single call per
// invocation; retries, if any, are the caller's responsibility.
type Provider interface {
	FetchByCoordinates(ctx context.Context, lat, lon float64) (Reading, error)
	FetchByName(ctx context.Context, city string) (ResolvedCity, error)
}

// Store is the contract the persistence layer must satisfy. Written values
// are always canonical metric; unit conversion never reaches the store.
type Store interface {
	// ListCities returns all cities left-joined with their snapshot,
	// ordered by city id ascending.
	ListCities(ctx context.Context) ([]CityWithWeather, error)

	// GetCity returns one city with its snapshot fields (nil when absent).
	// Returns ErrNotFound when no city with that id exists.
	GetCity(ctx context.Context, id int64) (CityWithWeather, error)

	// CityCoordinates returns the stored coordinates for a city, or
	// ErrNotFound.
	CityCoordinates(ctx context.Context, id int64) (lat, lon float64, err error)

	// CityIDs returns all city ids ordered ascending.
	CityIDs(ctx context.Context) ([]int64, error)

	// CreateCity inserts a city and, when snap is non-nil, its initial
	// snapshot atomically. Returns ErrCityExists when the name is taken.
	CreateCity(ctx context.Context, city NewCity, snap *Snapshot) (int64, error)

	// UpsertSnapshot inserts or replaces the snapshot keyed by city id.
	UpsertSnapshot(ctx context.Context, cityID int64, snap Snapshot) error

	// DeleteCity removes a city and, by cascade, its snapshot. Returns
	// ErrNotFound when no row was deleted.
	DeleteCity(ctx context.Context, id int64) error
}
