package store

import (
	"context"
	"sync"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory implementation of
// weather.Store. It enforces the same constraints as the Postgres store
// (unique city name, one snapshot per city, cascade on delete) so service
// and handler tests can run without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64

	// ordered by insertion, which matches ascending id
	cities []*cityRecord
}

type cityRecord struct {
	city weather.City
	snap *weather.Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListCities returns all cities joined with their snapshot, id ascending.
func (s *MemoryStore) ListCities(ctx context.Context) ([]weather.CityWithWeather, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.CityWithWeather, 0, len(s.cities))
	for _, rec := range s.cities {
		out = append(out, rec.joined())
	}
	return out, nil
}

// GetCity returns one city, or weather.ErrNotFound.
func (s *MemoryStore) GetCity(ctx context.Context, id int64) (weather.CityWithWeather, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.find(id)
	if rec == nil {
		return weather.CityWithWeather{}, weather.ErrNotFound
	}
	return rec.joined(), nil
}

// CityCoordinates returns the stored coordinates for a city.
func (s *MemoryStore) CityCoordinates(ctx context.Context, id int64) (float64, float64, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.find(id)
	if rec == nil {
		return 0, 0, weather.ErrNotFound
	}
	return rec.city.Lat, rec.city.Lon, nil
}

// CityIDs returns all city ids ascending.
func (s *MemoryStore) CityIDs(ctx context.Context) ([]int64, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.cities))
	for _, rec := range s.cities {
		ids = append(ids, rec.city.ID)
	}
	return ids, nil
}

// CreateCity inserts a city and optional initial snapshot, enforcing name
// uniqueness.
func (s *MemoryStore) CreateCity(ctx context.Context, city weather.NewCity, snap *weather.Snapshot) (int64, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.cities {
		if rec.city.Name == city.Name {
			return 0, weather.ErrCityExists
		}
	}

	s.nextID++
	rec := &cityRecord{
		city: weather.City{
			ID:      s.nextID,
			Name:    city.Name,
			Country: city.Country,
			Lat:     city.Lat,
			Lon:     city.Lon,
		},
	}
	if snap != nil {
		cp := *snap
		rec.snap = &cp
	}
	s.cities = append(s.cities, rec)
	return rec.city.ID, nil
}

// UpsertSnapshot replaces the snapshot for a city.
func (s *MemoryStore) UpsertSnapshot(ctx context.Context, cityID int64, snap weather.Snapshot) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.find(cityID)
	if rec == nil {
		return weather.ErrNotFound
	}
	cp := snap
	rec.snap = &cp
	return nil
}

// DeleteCity removes a city and its snapshot.
func (s *MemoryStore) DeleteCity(ctx context.Context, id int64) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.cities {
		if rec.city.ID == id {
			s.cities = append(s.cities[:i], s.cities[i+1:]...)
			return nil
		}
	}
	return weather.ErrNotFound
}

// find must be called with the mutex held.
func (s *MemoryStore) find(id int64) *cityRecord {
	for _, rec := range s.cities {
		if rec.city.ID == id {
			return rec
		}
	}
	return nil
}

func (r *cityRecord) joined() weather.CityWithWeather {
	row := weather.CityWithWeather{
		ID:      r.city.ID,
		Name:    r.city.Name,
		Country: r.city.Country,
		Lat:     r.city.Lat,
		Lon:     r.city.Lon,
	}
	if r.snap == nil {
		return row
	}

	snap := *r.snap
	row.Temperature = &snap.Temperature
	row.FeelsLike = &snap.FeelsLike
	row.Pressure = snap.Pressure
	row.Humidity = &snap.Humidity
	row.WindSpeed = &snap.WindSpeed
	row.WindDegree = snap.WindDegree
	row.Clouds = snap.Clouds
	row.WeatherMain = &snap.WeatherMain
	row.WeatherDescription = &snap.WeatherDescription
	row.Icon = &snap.Icon
	row.Rain1h = snap.Rain1h
	row.Snow1h = snap.Snow1h
	row.UpdatedAt = &snap.UpdatedAt
	return row
}
