package weather

import "math"

// ConvertUnits derives the requested unit system from a stored metric row.
// It returns a converted copy; stored data is never mutated. Nil fields
// pass through unconverted.
//
// The imperial temperature rounds the scaled Celsius value to two decimals
// before adding the 32 offset, matching the behaviour dashboard clients
// already rely on.
func ConvertUnits(row CityWithWeather, units Units) CityWithWeather {
	switch units {
	case UnitsImperial:
		row.Temperature = convertField(row.Temperature, celsiusToFahrenheit)
		row.FeelsLike = convertField(row.FeelsLike, celsiusToFahrenheit)
		row.WindSpeed = convertField(row.WindSpeed, metersPerSecondToMPH)
	case UnitsStandard:
		row.Temperature = convertField(row.Temperature, celsiusToKelvin)
		row.FeelsLike = convertField(row.FeelsLike, celsiusToKelvin)
	}
	return row
}

func celsiusToFahrenheit(c float64) float64 {
	return round2(c*9.0/5.0) + 32
}

func celsiusToKelvin(c float64) float64 {
	return c + 273.15
}

func metersPerSecondToMPH(ms float64) float64 {
	return round2(ms * 2.237)
}

// convertField applies f to a nullable value, allocating a fresh pointer so
// the source row is left untouched.
func convertField(v *float64, f func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	out := f(*v)
	return &out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
