package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

func TestMemoryStoreIDsStayOrderedAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"Riga", "Vilnius", "Tallinn"} {
		if _, err := s.CreateCity(ctx, weather.NewCity{Name: name}, nil); err != nil {
			t.Fatalf("CreateCity %s: %v", name, err)
		}
	}

	if err := s.DeleteCity(ctx, 2); err != nil {
		t.Fatalf("DeleteCity: %v", err)
	}

	ids, err := s.CityIDs(ctx)
	if err != nil {
		t.Fatalf("CityIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("expected ids [1 3], got %v", ids)
	}

	// A later insert must not reuse the deleted id.
	id, err := s.CreateCity(ctx, weather.NewCity{Name: "London"}, nil)
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if id != 4 {
		t.Fatalf("expected id 4, got %d", id)
	}
}

func TestMemoryStoreCityCoordinates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.CreateCity(ctx, weather.NewCity{Name: "Riga", Lat: 56.9496, Lon: 24.1052}, nil)
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}

	lat, lon, err := s.CityCoordinates(ctx, id)
	if err != nil {
		t.Fatalf("CityCoordinates: %v", err)
	}
	if lat != 56.9496 || lon != 24.1052 {
		t.Fatalf("got %v/%v", lat, lon)
	}

	if _, _, err := s.CityCoordinates(ctx, 99); !errors.Is(err, weather.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpsertSnapshotUnknownCity(t *testing.T) {
	s := NewMemoryStore()

	snap := weather.Snapshot{Temperature: 1, UpdatedAt: time.Now().UTC()}
	if err := s.UpsertSnapshot(context.Background(), 7, snap); !errors.Is(err, weather.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
