package store

import (
	"context"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		country VARCHAR(100),
		lat DECIMAL(10, 7),
		lon DECIMAL(10, 7),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS weather_data (
		id SERIAL PRIMARY KEY,
		city_id INTEGER REFERENCES cities(id) ON DELETE CASCADE,
		temperature DECIMAL(5, 2),
		feels_like DECIMAL(5, 2),
		pressure INTEGER,
		humidity INTEGER,
		wind_speed DECIMAL(5, 2),
		wind_degree INTEGER,
		clouds INTEGER,
		weather_main VARCHAR(50),
		weather_description VARCHAR(100),
		icon VARCHAR(10),
		rain_1h DECIMAL(5, 2),
		snow_1h DECIMAL(5, 2),
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(city_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_city_id ON weather_data(city_id)`,
}

// DefaultCities is the seed list for a fresh database.
var DefaultCities = []weather.NewCity{
	{Name: "Riga", Country: "LV", Lat: 56.9496, Lon: 24.1052},
	{Name: "Vilnius", Country: "LT", Lat: 54.6872, Lon: 25.2797},
	{Name: "Tallinn", Country: "EE", Lat: 59.437, Lon: 24.7536},
	{Name: "London", Country: "GB", Lat: 51.5074, Lon: -0.1278},
	{Name: "Tokyo", Country: "JP", Lat: 35.6762, Lon: 139.6503},
	{Name: "Delhi", Country: "IN", Lat: 28.7041, Lon: 77.1025},
	{Name: "Shanghai", Country: "CN", Lat: 31.2304, Lon: 121.4737},
	{Name: "New York", Country: "US", Lat: 40.7128, Lon: -74.006},
	{Name: "Paris", Country: "FR", Lat: 48.8566, Lon: 2.3522},
	{Name: "Jakarta", Country: "ID", Lat: -6.2088, Lon: 106.8456},
}

// InitSchema creates the tables and index when they do not exist yet.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedDefaultCities inserts the default city list, skipping names that are
// already present.
func (s *PostgresStore) SeedDefaultCities(ctx context.Context) error {
	for _, city := range DefaultCities {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO cities (name, country, lat, lon) VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING",
			city.Name, city.Country, city.Lat, city.Lon,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
