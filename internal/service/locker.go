package service

import (
	"context"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/repository"
)

// lockerService allocates identifiers from a fixed, configured universe.
// Held lockers are derived from live item rows; the write-time unique
// constraint does the actual exclusion.
type lockerService struct {
	itemRepo repository.ItemRepository
	universe []string
}

func NewLockerService(itemRepo repository.ItemRepository, universe []string) LockerService {
	return &lockerService{
		itemRepo: itemRepo,
		universe: universe,
	}
}

func (s *lockerService) Assign(ctx context.Context, itemID int32, lockerID string) error {
	if !contains(s.universe, lockerID) {
		return apperr.Validation("unknown locker id")
	}
	return s.itemRepo.AssignLocker(ctx, itemID, lockerID)
}

func (s *lockerService) Release(ctx context.Context, itemID int32) error {
	return s.itemRepo.ReleaseLocker(ctx, itemID)
}

func (s *lockerService) ListAvailable(ctx context.Context) ([]string, error) {
	held, err := s.itemRepo.HeldLockers(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(held))
	for _, id := range held {
		taken[id] = true
	}

	available := make([]string, 0, len(s.universe))
	for _, id := range s.universe {
		if !taken[id] {
			available = append(available, id)
		}
	}
	return available, nil
}
