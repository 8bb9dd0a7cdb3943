package scheduler

import (
	"testing"
	"time"

	"github.com/jkalnins/weather-dashboard/internal/store"
	"github.com/jkalnins/weather-dashboard/internal/weather"
)

func TestScheduleRunsInServerLocalTime(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(), nil)

	s := New("0 */2 * * *", svc)
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	jobs := s.scheduler.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	next := jobs[0].NextRun()
	if next.Location() != time.Local {
		t.Errorf("next run should be in server-local time, got %v", next.Location())
	}
	if next.Hour()%2 != 0 || next.Minute() != 0 {
		t.Errorf("next run should be at an even hour, got %v", next)
	}
}
