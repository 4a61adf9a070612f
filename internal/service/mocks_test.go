package service_test

import (
	"context"
	"io"
	"time"

	"sheerent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ChargePoints(ctx context.Context, userID, amount int32) (int32, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int32), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) ListByStatus(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) Stats(ctx context.Context) (*domain.ItemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemStats), args.Error(1)
}
func (m *MockItemRepo) AddImage(ctx context.Context, image *domain.ItemImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}
func (m *MockItemRepo) AssignLocker(ctx context.Context, itemID int32, lockerID string) error {
	args := m.Called(ctx, itemID, lockerID)
	return args.Error(0)
}
func (m *MockItemRepo) ReleaseLocker(ctx context.Context, itemID int32) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
func (m *MockItemRepo) HeldLockers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateActive(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, isReturned *bool) ([]domain.Rental, error) {
	args := m.Called(ctx, isReturned)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) SettleReturn(ctx context.Context, rentalID int32, damageReported bool, deductedAmount int32) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, damageReported, deductedAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Extend(ctx context.Context, rentalID int32, by time.Duration) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) StatsByBorrower(ctx context.Context, borrowerID int32) (*domain.RentalStats, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalStats), args.Error(1)
}

// MockDetector
type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Detect(ctx context.Context, source string) (domain.DefectInventory, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.DefectInventory), args.Error(1)
}

// MockImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) SaveItemImage(itemID int32, position int, r io.Reader) (string, string, error) {
	args := m.Called(itemID, position, r)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockImageStore) SaveAfterImage(rentalID int32, r io.Reader) (string, error) {
	args := m.Called(rentalID, r)
	return args.String(0), args.Error(1)
}
func (m *MockImageStore) ItemImageDir(itemID int32) string {
	args := m.Called(itemID)
	return args.String(0)
}
func (m *MockImageStore) AfterImageDir(rentalID int32) string {
	args := m.Called(rentalID)
	return args.String(0)
}
func (m *MockImageStore) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}
func (m *MockImageStore) Open(path string) (io.ReadCloser, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, name, itemName string, endTime time.Time) error {
	args := m.Called(ctx, email, name, itemName, endTime)
	return args.Error(0)
}
func (m *MockEmailService) SendDamageNotice(ctx context.Context, email, name, itemName string, deducted int32, increases map[string]int) error {
	args := m.Called(ctx, email, name, itemName, deducted, increases)
	return args.Error(0)
}
