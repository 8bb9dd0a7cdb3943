// Package store provides persistence for cities and their current weather
// snapshot: a Postgres implementation for production and an in-memory one
// for tests.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

const selectCityWithWeather = `
SELECT
	c.id,
	c.name,
	c.country,
	c.lat,
	c.lon,
	w.temperature,
	w.feels_like,
	w.pressure,
	w.humidity,
	w.wind_speed,
	w.wind_degree,
	w.clouds,
	w.weather_main,
	w.weather_description,
	w.icon,
	w.rain_1h,
	w.snow_1h,
	w.updated_at
FROM cities c
LEFT JOIN weather_data w ON c.id = w.city_id`

const upsertSnapshot = `
INSERT INTO weather_data (
	city_id,
	temperature,
	feels_like,
	pressure,
	humidity,
	wind_speed,
	wind_degree,
	clouds,
	weather_main,
	weather_description,
	icon,
	rain_1h,
	snow_1h,
	updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
)
ON CONFLICT (city_id)
DO UPDATE SET
	temperature = EXCLUDED.temperature,
	feels_like = EXCLUDED.feels_like,
	pressure = EXCLUDED.pressure,
	humidity = EXCLUDED.humidity,
	wind_speed = EXCLUDED.wind_speed,
	wind_degree = EXCLUDED.wind_degree,
	clouds = EXCLUDED.clouds,
	weather_main = EXCLUDED.weather_main,
	weather_description = EXCLUDED.weather_description,
	icon = EXCLUDED.icon,
	rain_1h = EXCLUDED.rain_1h,
	snow_1h = EXCLUDED.snow_1h,
	updated_at = EXCLUDED.updated_at`

// PostgresStore is the Postgres implementation of weather.Store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a store around an open connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListCities returns all cities left-joined with their snapshot, ordered by
// id ascending.
func (s *PostgresStore) ListCities(ctx context.Context) ([]weather.CityWithWeather, error) {
	rows, err := s.db.QueryContext(ctx, selectCityWithWeather+"\nORDER BY c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []weather.CityWithWeather
	for rows.Next() {
		row, err := scanCityWithWeather(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetCity returns one city with its snapshot fields, or weather.ErrNotFound.
func (s *PostgresStore) GetCity(ctx context.Context, id int64) (weather.CityWithWeather, error) {
	row, err := scanCityWithWeather(s.db.QueryRowContext(ctx, selectCityWithWeather+"\nWHERE c.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return weather.CityWithWeather{}, weather.ErrNotFound
		}
		return weather.CityWithWeather{}, err
	}
	return row, nil
}

// CityCoordinates returns the stored coordinates for a city.
func (s *PostgresStore) CityCoordinates(ctx context.Context, id int64) (float64, float64, error) {
	var lat, lon float64
	err := s.db.QueryRowContext(ctx, "SELECT lat, lon FROM cities WHERE id = $1", id).Scan(&lat, &lon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, weather.ErrNotFound
		}
		return 0, 0, err
	}
	return lat, lon, nil
}

// CityIDs returns all tracked city ids ordered ascending.
func (s *PostgresStore) CityIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM cities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateCity inserts a city and its initial snapshot in one transaction, so
// a snapshot-insert failure rolls back the city row. The name uniqueness
// constraint, not a pre-check, detects duplicates.
func (s *PostgresStore) CreateCity(ctx context.Context, city weather.NewCity, snap *weather.Snapshot) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO cities (name, country, lat, lon) VALUES ($1, $2, $3, $4) RETURNING id",
		city.Name, city.Country, city.Lat, city.Lon,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, weather.ErrCityExists
		}
		return 0, err
	}

	if snap != nil {
		if _, err := tx.ExecContext(ctx, upsertSnapshot, snapshotArgs(id, *snap)...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertSnapshot inserts or replaces the snapshot keyed by city id in one
// statement, so concurrent refreshes of the same city cannot interleave.
func (s *PostgresStore) UpsertSnapshot(ctx context.Context, cityID int64, snap weather.Snapshot) error {
	_, err := s.db.ExecContext(ctx, upsertSnapshot, snapshotArgs(cityID, snap)...)
	return err
}

// DeleteCity removes a city; the snapshot goes with it via ON DELETE CASCADE.
func (s *PostgresStore) DeleteCity(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cities WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return weather.ErrNotFound
	}
	return nil
}

func snapshotArgs(cityID int64, snap weather.Snapshot) []any {
	return []any{
		cityID,
		snap.Temperature,
		snap.FeelsLike,
		snap.Pressure,
		snap.Humidity,
		snap.WindSpeed,
		snap.WindDegree,
		snap.Clouds,
		snap.WeatherMain,
		snap.WeatherDescription,
		snap.Icon,
		snap.Rain1h,
		snap.Snow1h,
		snap.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCityWithWeather(s rowScanner) (weather.CityWithWeather, error) {
	var (
		row         weather.CityWithWeather
		country     sql.NullString
		temp        sql.NullFloat64
		feels       sql.NullFloat64
		pressure    sql.NullInt64
		humidity    sql.NullInt64
		windSpeed   sql.NullFloat64
		windDegree  sql.NullInt64
		clouds      sql.NullInt64
		main        sql.NullString
		description sql.NullString
		icon        sql.NullString
		rain        sql.NullFloat64
		snow        sql.NullFloat64
		updated     sql.NullTime
	)

	err := s.Scan(
		&row.ID,
		&row.Name,
		&country,
		&row.Lat,
		&row.Lon,
		&temp,
		&feels,
		&pressure,
		&humidity,
		&windSpeed,
		&windDegree,
		&clouds,
		&main,
		&description,
		&icon,
		&rain,
		&snow,
		&updated,
	)
	if err != nil {
		return weather.CityWithWeather{}, err
	}

	row.Country = country.String
	row.Temperature = nullableFloat(temp)
	row.FeelsLike = nullableFloat(feels)
	row.Pressure = nullableInt(pressure)
	row.Humidity = nullableInt(humidity)
	row.WindSpeed = nullableFloat(windSpeed)
	row.WindDegree = nullableInt(windDegree)
	row.Clouds = nullableInt(clouds)
	row.WeatherMain = nullableString(main)
	row.WeatherDescription = nullableString(description)
	row.Icon = nullableString(icon)
	row.Rain1h = nullableFloat(rain)
	row.Snow1h = nullableFloat(snow)
	row.UpdatedAt = nullableTime(updated)
	return row, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
