package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"sheerent-backend/internal/jobs"
	"sheerent-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler running the given jobs on the provided
// cron specs.
func NewScheduler(jobRunner *jobs.JobRunner, overdueRemindersSpec string) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if _, err := c.AddFunc(overdueRemindersSpec, jobRunner.SendOverdueReminders); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins executing registered jobs in background goroutines.
func (s *Scheduler) Start() {
	logger.Info("scheduler started")
	s.cron.Start()
}

// Stop waits for running jobs and halts the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}
