package service

import (
	"context"
	"io"
	"time"

	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/pricing"
)

type UserService interface {
	Register(ctx context.Context, name, email, phone, password string) (*domain.User, error)
	// Login verifies credentials and returns the user. Session issuance is
	// out of scope.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, userID int32) (*domain.User, error)
	ChargePoints(ctx context.Context, userID, amount int32) (int32, error)
	ListItems(ctx context.Context, userID int32) ([]domain.Item, error)
	ListRentals(ctx context.Context, userID int32) ([]domain.Rental, error)
}

type ItemService interface {
	Register(ctx context.Context, item *domain.Item, images []io.Reader) (*domain.Item, error)
	Get(ctx context.Context, itemID int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, itemID int32) error
	ListAvailable(ctx context.Context) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Item, error)
	Stats(ctx context.Context) (*domain.ItemStats, error)
}

type LockerService interface {
	Assign(ctx context.Context, itemID int32, lockerID string) error
	Release(ctx context.Context, itemID int32) error
	ListAvailable(ctx context.Context) ([]string, error)
}

type RentalService interface {
	Create(ctx context.Context, itemID, borrowerID int32, endTime time.Time) (*domain.Rental, error)
	// Return settles the rental: it stores the after image, runs detection
	// on the before and after image sets, adjudicates damage, and applies
	// the deduction.
	Return(ctx context.Context, rentalID, borrowerID, itemID int32, afterImage io.Reader) (*domain.Rental, *domain.DamageReport, error)
	Extend(ctx context.Context, rentalID int32) (*domain.Rental, error)
	Quote(ctx context.Context, itemID int32, endTime time.Time) (*pricing.Breakdown, error)
	List(ctx context.Context, isReturned *bool) ([]domain.Rental, error)
	Get(ctx context.Context, rentalID int32) (*domain.Rental, error)
	StatsByUser(ctx context.Context, userID int32) (*domain.RentalStats, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, name, itemName string, endTime time.Time) error
	SendDamageNotice(ctx context.Context, email, name, itemName string, deducted int32, increases map[string]int) error
}
