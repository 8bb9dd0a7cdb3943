// Package scheduler triggers the periodic full weather refresh.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

// refreshTimeout bounds a full sequential pass over all cities.
const refreshTimeout = 10 * time.Minute

// Scheduler runs a full refresh pass on a fixed cron cadence.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	schedule  string
}

// New creates a Scheduler. schedule is a cron expression, e.g.
// "0 */2 * * *" for every even hour, evaluated in server-local time.
func New(schedule string, service *weather.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		service:   service,
		schedule:  schedule,
	}
}

// RunInitial performs one refresh pass synchronously, typically at process
// start before the server begins listening. Failure is logged, not fatal.
func (s *Scheduler) RunInitial() {
	log.Println("scheduler: running initial weather refresh")
	s.refresh()
}

// Start schedules the recurring job and starts the underlying scheduler.
// SingletonMode skips a tick if the previous pass is somehow still running.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Cron(s.schedule).SingletonMode().Do(func() {
		log.Println("scheduler: running scheduled weather refresh")
		s.refresh()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: weather refresh scheduled (%s)", s.schedule)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	results, err := s.service.RefreshAll(ctx)
	if err != nil {
		log.Printf("scheduler: weather refresh failed: %v", err)
		return
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Printf("scheduler: weather refresh completed: %d cities, %d failed", len(results), failed)
}
