package domain

import "time"

type Rental struct {
	ID         int32     `json:"id"`
	ItemID     int32     `json:"item_id"`
	BorrowerID int32     `json:"borrower_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	IsReturned bool      `json:"is_returned"`
	// Fee snapshot fields, captured from the pricing quote at creation.
	// DepositAmount holds the refundable insurance fee.
	UsageFee       int32 `json:"usage_fee"`
	ServiceFee     int32 `json:"service_fee"`
	DepositAmount  int32 `json:"deposit_amount"`
	TotalCharge    int32 `json:"total_charge"`
	DeductedAmount int32 `json:"deducted_amount"`
	DamageReported bool  `json:"damage_reported"`
	Item           *Item `json:"item,omitempty"` // populated on detail and list reads
	CreatedOn      string `json:"created_on"`
	UpdatedOn      string `json:"updated_on"`
}

type RentalStats struct {
	UserID      int32 `json:"user_id"`
	Total       int32 `json:"total_rentals"`
	Returned    int32 `json:"returned"`
	NotReturned int32 `json:"not_returned"`
}
