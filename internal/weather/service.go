package weather

import (
	"context"
	"log"
	"time"
)

// Service reconciles persisted city snapshots against the external weather
// provider and serves the dashboard's read and write use cases.
type Service struct {
	store    Store
	provider Provider
}

// NewService creates a new Service.
func NewService(store Store, provider Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// ListCities returns all cities with their snapshot, converted to the
// requested units, ordered by city id ascending.
func (s *Service) ListCities(ctx context.Context, units Units) ([]CityWithWeather, error) {
	rows, err := s.store.ListCities(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CityWithWeather, 0, len(rows))
	for _, row := range rows {
		out = append(out, ConvertUnits(row, units))
	}
	return out, nil
}

// GetCity returns one city converted to the requested units. A city with no
// snapshot yet is still returned, with nil weather fields.
func (s *Service) GetCity(ctx context.Context, id int64, units Units) (CityWithWeather, error) {
	row, err := s.store.GetCity(ctx, id)
	if err != nil {
		return CityWithWeather{}, err
	}
	return ConvertUnits(row, units), nil
}

// RefreshCity fetches current conditions for one city and upserts its
// snapshot, returning the freshly read metric record.
func (s *Service) RefreshCity(ctx context.Context, id int64) (CityWithWeather, error) {
	lat, lon, err := s.store.CityCoordinates(ctx, id)
	if err != nil {
		return CityWithWeather{}, err
	}

	reading, err := s.provider.FetchByCoordinates(ctx, lat, lon)
	if err != nil {
		return CityWithWeather{}, err
	}

	if err := s.store.UpsertSnapshot(ctx, id, reading.Snapshot(time.Now().UTC())); err != nil {
		return CityWithWeather{}, err
	}

	return s.store.GetCity(ctx, id)
}

// RefreshResult records the outcome of one city's refresh during a bulk
// pass.
type RefreshResult struct {
	CityID int64
	Err    error
}

// RefreshAll refreshes every tracked city one at a time, in id order.
// Sequential on purpose: it bounds load on the provider and keeps the pass
// deterministic. A failing city is logged and recorded, and the remaining
// cities still run; only a failure to list the ids aborts the pass.
func (s *Service) RefreshAll(ctx context.Context) ([]RefreshResult, error) {
	ids, err := s.store.CityIDs(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("weather: refreshing %d cities", len(ids))

	results := make([]RefreshResult, 0, len(ids))
	for _, id := range ids {
		_, err := s.RefreshCity(ctx, id)
		if err != nil {
			log.Printf("weather: refresh failed for city %d: %v", id, err)
		}
		results = append(results, RefreshResult{CityID: id, Err: err})
	}
	return results, nil
}

// AddCity resolves a name through the provider and inserts the city and its
// first snapshot in one atomic step. Returns ErrCityNotFound when the
// provider cannot resolve the name and ErrCityExists when the resolved name
// is already tracked. Duplicates are detected by the store's uniqueness
// constraint, not a pre-check, so concurrent adds cannot race.
func (s *Service) AddCity(ctx context.Context, name string) (CityWithWeather, error) {
	resolved, err := s.provider.FetchByName(ctx, name)
	if err != nil {
		return CityWithWeather{}, err
	}

	snap := resolved.Reading.Snapshot(time.Now().UTC())
	id, err := s.store.CreateCity(ctx, NewCity{
		Name:    resolved.Name,
		Country: resolved.Country,
		Lat:     resolved.Lat,
		Lon:     resolved.Lon,
	}, &snap)
	if err != nil {
		return CityWithWeather{}, err
	}

	return s.store.GetCity(ctx, id)
}

// DeleteCity removes a city and its snapshot. Returns ErrNotFound when the
// id is unknown.
func (s *Service) DeleteCity(ctx context.Context, id int64) error {
	return s.store.DeleteCity(ctx, id)
}
