package scheduler_test

import (
	"testing"

	"github.com/jkalnins/weather-dashboard/internal/scheduler"
	"github.com/jkalnins/weather-dashboard/internal/store"
	"github.com/jkalnins/weather-dashboard/internal/weather"
)

func TestStartRejectsInvalidSchedule(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(), nil)

	s := scheduler.New("not a cron expression", svc)
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Fatal("expected an error for an invalid cron expression")
	}
}

func TestStartAcceptsEvenHourSchedule(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(), nil)

	s := scheduler.New("0 */2 * * *", svc)
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}
