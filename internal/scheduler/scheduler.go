package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/danijuhaeni22/idx-signal-web/internal/dashboard"
)

// Scheduler refreshes the serve-mode caches on a cron, matching the
// backend's own cache TTL so pages stay warm without user action.
type Scheduler struct {
	Cron      *cron.Cron
	Dashboard *dashboard.Dashboard
	Ctx       context.Context
}

// NewScheduler creates a scheduler bound to ctx.
func NewScheduler(ctx context.Context, d *dashboard.Dashboard) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Dashboard: d,
		Ctx:       ctx,
	}
}

// Register adds the radar refresh job.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshRadar); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] refresh scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}

func (s *Scheduler) refreshRadar() {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Minute)
	defer cancel()

	log.Println("[INFO] refreshing radar cache")
	if _, err := s.Dashboard.RefreshRadar(ctx); err != nil {
		log.Printf("[ERROR] radar refresh: %v", err)
	}
}
