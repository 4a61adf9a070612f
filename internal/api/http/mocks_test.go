package http_test

import (
	"context"
	"io"
	"time"

	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/pricing"

	"github.com/stretchr/testify/mock"
)

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, phone, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Get(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChargePoints(ctx context.Context, userID, amount int32) (int32, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockUserService) ListItems(ctx context.Context, userID int32) ([]domain.Item, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockUserService) ListRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Register(ctx context.Context, item *domain.Item, images []io.Reader) (*domain.Item, error) {
	args := m.Called(ctx, item, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) Get(ctx context.Context, itemID int32) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) Delete(ctx context.Context, itemID int32) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
func (m *MockItemService) ListAvailable(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemService) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemService) Stats(ctx context.Context) (*domain.ItemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemStats), args.Error(1)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Create(ctx context.Context, itemID, borrowerID int32, endTime time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, itemID, borrowerID, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Return(ctx context.Context, rentalID, borrowerID, itemID int32, afterImage io.Reader) (*domain.Rental, *domain.DamageReport, error) {
	args := m.Called(ctx, rentalID, borrowerID, itemID, afterImage)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(*domain.DamageReport), args.Error(2)
}
func (m *MockRentalService) Extend(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Quote(ctx context.Context, itemID int32, endTime time.Time) (*pricing.Breakdown, error) {
	args := m.Called(ctx, itemID, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Breakdown), args.Error(1)
}
func (m *MockRentalService) List(ctx context.Context, isReturned *bool) ([]domain.Rental, error) {
	args := m.Called(ctx, isReturned)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) Get(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) StatsByUser(ctx context.Context, userID int32) (*domain.RentalStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalStats), args.Error(1)
}

// MockLockerService
type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) Assign(ctx context.Context, itemID int32, lockerID string) error {
	args := m.Called(ctx, itemID, lockerID)
	return args.Error(0)
}
func (m *MockLockerService) Release(ctx context.Context, itemID int32) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
func (m *MockLockerService) ListAvailable(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockLockerDevice
type MockLockerDevice struct {
	mock.Mock
}

func (m *MockLockerDevice) Open(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockLockerDevice) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockLockerDevice) Capture(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
