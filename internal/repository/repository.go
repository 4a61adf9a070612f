package repository

import (
	"context"
	"time"

	"sheerent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ChargePoints atomically increments the user's balance and returns
	// the new balance.
	ChargePoints(ctx context.Context, userID, amount int32) (int32, error)
}

type ItemRepository interface {
	// Create inserts the item, including any requested locker assignment.
	// A locker already held by a live item fails the whole insert.
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	// Delete soft-deletes the item, which releases its locker.
	Delete(ctx context.Context, id int32) error
	ListByStatus(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Item, error)
	Stats(ctx context.Context) (*domain.ItemStats, error)
	AddImage(ctx context.Context, image *domain.ItemImage) error

	// AssignLocker sets the item's locker; uniqueness is enforced at
	// write time. ReleaseLocker clears it.
	AssignLocker(ctx context.Context, itemID int32, lockerID string) error
	ReleaseLocker(ctx context.Context, itemID int32) error
	// HeldLockers returns the locker ids currently held by live items.
	HeldLockers(ctx context.Context) ([]string, error)
}

type RentalRepository interface {
	// CreateActive performs the whole rental-creation settlement in one
	// transaction: it re-verifies that the item is registered, not owned
	// by the borrower, and has no active rental, debits the borrower's
	// points, flips the item to rented, and inserts the rental row.
	CreateActive(ctx context.Context, rental *domain.Rental) error

	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	List(ctx context.Context, isReturned *bool) ([]domain.Rental, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Rental, error)
	// ListOverdueActive returns active rentals whose end time has passed.
	ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Rental, error)

	// SettleReturn marks the rental returned and flips the item back to
	// registered in one transaction. The update is guarded on
	// is_returned so a second settlement attempt fails instead of
	// applying twice.
	SettleReturn(ctx context.Context, rentalID int32, damageReported bool, deductedAmount int32) (*domain.Rental, error)

	// Extend pushes the end time forward while the rental is active.
	Extend(ctx context.Context, rentalID int32, by time.Duration) (*domain.Rental, error)

	StatsByBorrower(ctx context.Context, borrowerID int32) (*domain.RentalStats, error)
}
