package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler owns at most one periodic trigger for automated video
// generation. It is constructed once by the process entry point and passed
// by reference to anything that needs to query or restart it.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	schedule string
	enabled  func() bool
	run      func() error
}

// New builds a scheduler for the given cron expression. enabled is
// consulted live on every tick; run starts one generation.
func New(schedule string, enabled func() bool, run func() error) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		enabled:  enabled,
		run:      run,
	}
}

// Start begins ticking on the configured schedule, cancelling and
// replacing any previous timer.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.Tick); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cron.Start()

	log.Printf("[scheduler] started with schedule: %s", s.schedule)
	return nil
}

// Tick runs one scheduled check: a no-op unless automation is enabled.
// Run errors are logged and swallowed so a failing run never cancels the
// schedule.
func (s *Scheduler) Tick() {
	if !s.enabled() {
		return
	}

	log.Println("[scheduler] running scheduled video generation...")
	if err := s.run(); err != nil {
		log.Printf("[scheduler] scheduled run error: %v", err)
	}
}

// Stop halts the timer. The scheduler can be restarted with Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
		log.Println("[scheduler] stopped")
	}
}

// Schedule reports the configured cron expression.
func (s *Scheduler) Schedule() string {
	return s.schedule
}
