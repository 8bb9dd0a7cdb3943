package weather

import (
	"reflect"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func sampleRow() CityWithWeather {
	updated := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return CityWithWeather{
		ID:                 1,
		Name:               "Riga",
		Country:            "LV",
		Lat:                56.9496,
		Lon:                24.1052,
		Temperature:        floatPtr(0),
		FeelsLike:          floatPtr(-5),
		Pressure:           intPtr(1012),
		Humidity:           intPtr(60),
		WindSpeed:          floatPtr(10),
		WindDegree:         intPtr(180),
		Clouds:             intPtr(40),
		WeatherMain:        strPtr("Clouds"),
		WeatherDescription: strPtr("scattered clouds"),
		Icon:               strPtr("03d"),
		Rain1h:             floatPtr(0.5),
		Snow1h:             nil,
		UpdatedAt:          &updated,
	}
}

func TestConvertUnitsMetricIsIdentity(t *testing.T) {
	row := sampleRow()
	got := ConvertUnits(row, UnitsMetric)
	if !reflect.DeepEqual(got, row) {
		t.Fatalf("metric conversion changed the row: got %+v, want %+v", got, row)
	}
}

func TestConvertUnitsImperial(t *testing.T) {
	got := ConvertUnits(sampleRow(), UnitsImperial)

	if *got.Temperature != 32 {
		t.Errorf("temperature: got %v, want 32", *got.Temperature)
	}
	// -5°C scales to -9, then the offset is added.
	if *got.FeelsLike != 23 {
		t.Errorf("feels_like: got %v, want 23", *got.FeelsLike)
	}
	if *got.WindSpeed != 22.37 {
		t.Errorf("wind_speed: got %v, want 22.37", *got.WindSpeed)
	}
	if *got.Pressure != 1012 {
		t.Errorf("pressure should not convert: got %v", *got.Pressure)
	}
	if *got.Humidity != 60 {
		t.Errorf("humidity should not convert: got %v", *got.Humidity)
	}
}

func TestConvertUnitsImperialRounding(t *testing.T) {
	row := sampleRow()
	row.Temperature = floatPtr(21.7)
	row.WindSpeed = floatPtr(3.456)

	got := ConvertUnits(row, UnitsImperial)

	// 21.7 * 9/5 = 39.06, rounded before the offset.
	if *got.Temperature != 71.06 {
		t.Errorf("temperature: got %v, want 71.06", *got.Temperature)
	}
	// 3.456 * 2.237 = 7.731...
	if *got.WindSpeed != 7.73 {
		t.Errorf("wind_speed: got %v, want 7.73", *got.WindSpeed)
	}
}

func TestConvertUnitsStandard(t *testing.T) {
	row := sampleRow()
	row.FeelsLike = floatPtr(20)

	got := ConvertUnits(row, UnitsStandard)

	if *got.Temperature != 273.15 {
		t.Errorf("temperature: got %v, want 273.15", *got.Temperature)
	}
	if *got.FeelsLike != 293.15 {
		t.Errorf("feels_like: got %v, want 293.15", *got.FeelsLike)
	}
	if *got.WindSpeed != 10 {
		t.Errorf("wind_speed should stay m/s: got %v", *got.WindSpeed)
	}
}

func TestConvertUnitsNilFieldsPassThrough(t *testing.T) {
	row := CityWithWeather{ID: 2, Name: "Vilnius", Country: "LT"}

	for _, units := range []Units{UnitsMetric, UnitsImperial, UnitsStandard} {
		got := ConvertUnits(row, units)
		if got.Temperature != nil || got.FeelsLike != nil || got.WindSpeed != nil {
			t.Errorf("%s: nil fields should stay nil, got %+v", units, got)
		}
	}
}

func TestConvertUnitsDoesNotMutateSource(t *testing.T) {
	row := sampleRow()
	ConvertUnits(row, UnitsImperial)

	if *row.Temperature != 0 {
		t.Errorf("source temperature mutated: got %v", *row.Temperature)
	}
	if *row.WindSpeed != 10 {
		t.Errorf("source wind_speed mutated: got %v", *row.WindSpeed)
	}
}

func TestParseUnits(t *testing.T) {
	cases := map[string]Units{
		"metric":   UnitsMetric,
		"imperial": UnitsImperial,
		"standard": UnitsStandard,
		"":         UnitsMetric,
		"kelvin":   UnitsMetric,
	}
	for in, want := range cases {
		if got := ParseUnits(in); got != want {
			t.Errorf("ParseUnits(%q): got %q, want %q", in, got, want)
		}
	}
}
