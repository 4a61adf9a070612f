// Package jobs holds the background work triggered by the scheduler.
package jobs

import (
	"context"
	"time"

	"sheerent-backend/internal/logger"
	"sheerent-backend/internal/repository"
	"sheerent-backend/internal/service"
)

type JobRunner struct {
	rentalRepo repository.RentalRepository
	userRepo   repository.UserRepository
	emailSvc   service.EmailService
}

func NewJobRunner(
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	emailSvc service.EmailService,
) *JobRunner {
	return &JobRunner{
		rentalRepo: rentalRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
	}
}

// SendOverdueReminders emails every borrower holding an active rental past
// its agreed end time. Rentals stay active; only the return flow settles
// them.
func (j *JobRunner) SendOverdueReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	overdue, err := j.rentalRepo.ListOverdueActive(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("overdue rental scan failed", "error", err)
		return
	}
	if len(overdue) == 0 {
		logger.Debug("no overdue rentals")
		return
	}
	logger.Info("sending overdue reminders", "count", len(overdue))

	for _, rental := range overdue {
		borrower, err := j.userRepo.GetByID(ctx, rental.BorrowerID)
		if err != nil {
			logger.Warn("could not load borrower for reminder", "rental_id", rental.ID, "error", err)
			continue
		}
		itemName := ""
		if rental.Item != nil {
			itemName = rental.Item.Name
		}
		if err := j.emailSvc.SendOverdueReminder(ctx, borrower.Email, borrower.Name, itemName, rental.EndTime); err != nil {
			logger.Warn("overdue reminder not sent", "rental_id", rental.ID, "error", err)
		}
	}
}
