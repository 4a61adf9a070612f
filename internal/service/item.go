package service

import (
	"context"
	"io"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
	"sheerent-backend/internal/logger"
	"sheerent-backend/internal/repository"
	"sheerent-backend/internal/storage"
)

type itemService struct {
	itemRepo       repository.ItemRepository
	userRepo       repository.UserRepository
	images         storage.ImageStore
	lockerUniverse []string
}

func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	images storage.ImageStore,
	lockerUniverse []string,
) ItemService {
	return &itemService{
		itemRepo:       itemRepo,
		userRepo:       userRepo,
		images:         images,
		lockerUniverse: lockerUniverse,
	}
}

// Register creates the item and stores its photos. The first stored image
// becomes the before-reference used at return time. A requested locker is
// part of the insert, so a taken locker fails registration atomically.
func (s *itemService) Register(ctx context.Context, item *domain.Item, images []io.Reader) (*domain.Item, error) {
	if item.Name == "" {
		return nil, apperr.Validation("item name is required")
	}
	if item.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	if item.PriceUnit == "" {
		item.PriceUnit = domain.PriceUnitPerDay
	}
	if item.PriceUnit != domain.PriceUnitPerDay && item.PriceUnit != domain.PriceUnitPerHour {
		return nil, apperr.Validation("price unit must be per_day or per_hour")
	}
	if item.LockerID != nil && !contains(s.lockerUniverse, *item.LockerID) {
		return nil, apperr.Validation("unknown locker id")
	}

	if _, err := s.userRepo.GetByID(ctx, item.OwnerID); err != nil {
		return nil, err
	}

	item.Status = domain.ItemStatusRegistered
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	for idx, r := range images {
		filePath, thumbPath, err := s.images.SaveItemImage(item.ID, idx, r)
		if err != nil {
			s.discard(ctx, item.ID)
			return nil, apperr.Validation(err.Error())
		}
		img := &domain.ItemImage{
			ItemID:        item.ID,
			FilePath:      filePath,
			ThumbnailPath: thumbPath,
			Position:      int32(idx),
		}
		if err := s.itemRepo.AddImage(ctx, img); err != nil {
			s.discard(ctx, item.ID)
			return nil, err
		}
		item.Images = append(item.Images, *img)
	}

	logger.Info("item registered", "item_id", item.ID, "owner_id", item.OwnerID, "images", len(images))
	return item, nil
}

// discard removes a just-created item whose images could not be stored.
// An item must not survive registration without its photos.
func (s *itemService) discard(ctx context.Context, itemID int32) {
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		logger.Warn("discarding incomplete item failed", "item_id", itemID, "error", err)
	}
}

func (s *itemService) Get(ctx context.Context, itemID int32) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, itemID)
}

func (s *itemService) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, item.ID)
}

func (s *itemService) Delete(ctx context.Context, itemID int32) error {
	return s.itemRepo.Delete(ctx, itemID)
}

func (s *itemService) ListAvailable(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.ListByStatus(ctx, domain.ItemStatusRegistered)
}

func (s *itemService) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Item, error) {
	return s.itemRepo.ListByOwner(ctx, ownerID)
}

func (s *itemService) Stats(ctx context.Context) (*domain.ItemStats, error) {
	return s.itemRepo.Stats(ctx)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
