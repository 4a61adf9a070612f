package domain

import "time"

type ItemStatus string

const (
	ItemStatusRegistered ItemStatus = "registered"
	ItemStatusRented     ItemStatus = "rented"
	ItemStatusReturned   ItemStatus = "returned"
)

type PriceUnit string

const (
	PriceUnitPerDay  PriceUnit = "per_day"
	PriceUnitPerHour PriceUnit = "per_hour"
)

type Item struct {
	ID          int32       `json:"id"`
	OwnerID     int32       `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	// Price is in the smallest currency unit, interpreted per PriceUnit.
	Price     int32       `json:"price"`
	PriceUnit PriceUnit   `json:"price_unit"`
	LockerID  *string     `json:"locker_id,omitempty"`
	Status    ItemStatus  `json:"status"`
	Images    []ItemImage `json:"images,omitempty"`
	CreatedOn string      `json:"created_on"`
	UpdatedOn string      `json:"updated_on"`
	DeletedOn *string     `json:"deleted_on,omitempty"`
}

type ItemImage struct {
	ID            int32     `json:"id"`
	ItemID        int32     `json:"item_id"`
	FilePath      string    `json:"file_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Position      int32     `json:"position"`
	CreatedOn     time.Time `json:"created_on"`
}

// BeforeImage returns the canonical before-reference image, which is the
// image at position 0. Returns nil when the item has no stored images.
func (i *Item) BeforeImage() *ItemImage {
	for idx := range i.Images {
		if i.Images[idx].Position == 0 {
			return &i.Images[idx]
		}
	}
	return nil
}

type ItemStats struct {
	Total      int32 `json:"total_items"`
	Registered int32 `json:"registered_items"`
	Rented     int32 `json:"rented_items"`
	Returned   int32 `json:"returned_items"`
}
