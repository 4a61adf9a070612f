package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/repository"
)

type userService struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	rentalRepo repository.RentalRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	rentalRepo repository.RentalRepository,
) UserService {
	return &userService{
		userRepo:   userRepo,
		itemRepo:   itemRepo,
		rentalRepo: rentalRepo,
	}
}

func (s *userService) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Validation("invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Validation("invalid email or password")
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) ChargePoints(ctx context.Context, userID, amount int32) (int32, error) {
	return s.userRepo.ChargePoints(ctx, userID, amount)
}

func (s *userService) ListItems(ctx context.Context, userID int32) ([]domain.Item, error) {
	return s.itemRepo.ListByOwner(ctx, userID)
}

func (s *userService) ListRentals(ctx context.Context, userID int32) ([]domain.Rental, error) {
	return s.rentalRepo.ListByBorrower(ctx, userID)
}
