package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no city with the requested id exists.
	ErrNotFound = errors.New("city not found")

	// ErrCityNotFound is returned when the weather provider cannot resolve
	// a city name.
	ErrCityNotFound = errors.New("provider could not resolve city name")

	// ErrCityExists is returned when adding a city whose name is already
	// tracked.
	ErrCityExists = errors.New("city already exists")
)

// ProviderError wraps a network or HTTP failure talking to the weather
// provider. Callers branch on the type; the underlying error is kept for
// logs only and never surfaced to API clients.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
