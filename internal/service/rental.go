package service

import (
	"context"
	"io"
	"time"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/damage"
	"sheerent-backend/internal/detect"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/logger"
	"sheerent-backend/internal/pricing"
	"sheerent-backend/internal/repository"
	"sheerent-backend/internal/storage"
)

// extensionIncrement is how far one extension pushes the end time.
// Extensions are not re-billed.
const extensionIncrement = 24 * time.Hour

type rentalService struct {
	rentalRepo repository.RentalRepository
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
	pricer     *pricing.Engine
	detector   detect.Detector
	images     storage.ImageStore
	emailSvc   EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	pricer *pricing.Engine,
	detector detect.Detector,
	images storage.ImageStore,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		pricer:     pricer,
		detector:   detector,
		images:     images,
		emailSvc:   emailSvc,
	}
}

// Create prices the window and settles the rental. The preconditions
// checked here are re-verified inside the repository transaction; this
// pass exists to fail fast and to fetch the price inputs.
func (s *rentalService) Create(ctx context.Context, itemID, borrowerID int32, endTime time.Time) (*domain.Rental, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.ItemStatusRegistered {
		return nil, apperr.Conflict("item is not rentable")
	}
	if item.OwnerID == borrowerID {
		return nil, apperr.Conflict("owners cannot rent their own item")
	}

	start := time.Now().UTC()
	quote, err := s.pricer.Quote(item, start, endTime)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ItemID:        itemID,
		BorrowerID:    borrowerID,
		StartTime:     start,
		EndTime:       endTime,
		UsageFee:      quote.UsageFee,
		ServiceFee:    quote.ServiceFee,
		DepositAmount: quote.InsuranceFee,
		TotalCharge:   quote.Total,
	}
	if err := s.rentalRepo.CreateActive(ctx, rental); err != nil {
		return nil, err
	}

	logger.Info("rental created",
		"rental_id", rental.ID, "item_id", itemID, "borrower_id", borrowerID,
		"total_charge", rental.TotalCharge, "deposit", rental.DepositAmount)
	rental.Item = item
	return rental, nil
}

// Return is staged so the slow detection calls never hold a database
// transaction open: validate and resolve the before image first, run
// detection outside any transaction, then settle in a second short
// transaction that re-checks "not already returned". A detection failure
// or cancellation leaves the rental active.
func (s *rentalService) Return(ctx context.Context, rentalID, borrowerID, itemID int32, afterImage io.Reader) (*domain.Rental, *domain.DamageReport, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental.BorrowerID != borrowerID {
		return nil, nil, apperr.Conflict("only the borrower can return this rental")
	}
	if rental.IsReturned {
		return nil, nil, apperr.Conflict("rental is already returned")
	}
	if rental.ItemID != itemID {
		return nil, nil, apperr.Validation("item does not match this rental")
	}

	item, err := s.itemRepo.GetByID(ctx, rental.ItemID)
	if err != nil {
		return nil, nil, err
	}
	before := item.BeforeImage()
	if before == nil || !s.images.Exists(before.FilePath) {
		return nil, nil, apperr.NotFound("item has no readable before image")
	}

	if _, err := s.images.SaveAfterImage(rentalID, afterImage); err != nil {
		return nil, nil, apperr.Validation(err.Error())
	}

	beforeInventory, err := s.detector.Detect(ctx, s.images.ItemImageDir(item.ID))
	if err != nil {
		return nil, nil, err
	}
	afterInventory, err := s.detector.Detect(ctx, s.images.AfterImageDir(rentalID))
	if err != nil {
		return nil, nil, err
	}

	report := damage.Compare(beforeInventory, afterInventory)
	var deducted int32
	if report.Detected {
		deducted = rental.DepositAmount
	}

	settled, err := s.rentalRepo.SettleReturn(ctx, rentalID, report.Detected, deducted)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("rental returned",
		"rental_id", rentalID, "item_id", item.ID,
		"damage_reported", report.Detected, "deducted_amount", deducted)

	if report.Detected {
		s.notifyDamage(ctx, settled, item, report.Increases)
	}
	return settled, &report, nil
}

// notifyDamage is best-effort; a failed email never fails the settlement.
func (s *rentalService) notifyDamage(ctx context.Context, rental *domain.Rental, item *domain.Item, increases map[string]int) {
	borrower, err := s.userRepo.GetByID(ctx, rental.BorrowerID)
	if err != nil {
		logger.Warn("could not load borrower for damage notice", "rental_id", rental.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendDamageNotice(ctx, borrower.Email, borrower.Name, item.Name, rental.DeductedAmount, increases); err != nil {
		logger.Warn("damage notice not sent", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) Extend(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.rentalRepo.Extend(ctx, rentalID, extensionIncrement)
}

func (s *rentalService) Quote(ctx context.Context, itemID int32, endTime time.Time) (*pricing.Breakdown, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.pricer.Quote(item, time.Now().UTC(), endTime)
}

func (s *rentalService) List(ctx context.Context, isReturned *bool) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx, isReturned)
}

func (s *rentalService) Get(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) StatsByUser(ctx context.Context, userID int32) (*domain.RentalStats, error) {
	return s.rentalRepo.StatsByBorrower(ctx, userID)
}
