// Package pricing computes the charge for a rental window.
//
// All monetary values are integers in the smallest currency unit.
// Intermediate values are kept as decimals and rounded half away from zero
// only when a fee is fixed, so the insurance and service percentages are
// taken from the exact usage amount rather than an already-rounded one.
package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"sheerent-backend/internal/apperr"
	"sheerent-backend/internal/domain"
)

const hoursPerDay = 24

// Breakdown is the priced result for one rental window. InsuranceFee
// doubles as the refundable deposit held against damage.
type Breakdown struct {
	Hours        int32 `json:"hours"`
	UsageFee     int32 `json:"usage_fee"`
	InsuranceFee int32 `json:"insurance_fee"`
	ServiceFee   int32 `json:"service_fee"`
	Total        int32 `json:"total"`
}

type Engine struct {
	insuranceRate decimal.Decimal
	serviceRate   decimal.Decimal
}

func NewEngine(insuranceRate, serviceRate float64) *Engine {
	return &Engine{
		insuranceRate: decimal.NewFromFloat(insuranceRate),
		serviceRate:   decimal.NewFromFloat(serviceRate),
	}
}

// Quote prices the window [start, end) for the given item. Billable hours
// are the window duration rounded up to whole hours, minimum one hour.
// A per-day price is converted to an hourly rate by dividing by 24.
func (e *Engine) Quote(item *domain.Item, start, end time.Time) (*Breakdown, error) {
	if !end.After(start) {
		return nil, apperr.Validation("end time must be after start time")
	}

	hours := int64(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}

	rate := decimal.NewFromInt32(item.Price)
	if item.PriceUnit == domain.PriceUnitPerDay {
		rate = rate.Div(decimal.NewFromInt(hoursPerDay))
	}

	usage := rate.Mul(decimal.NewFromInt(hours))
	usageFee := usage.Round(0)
	insuranceFee := usage.Mul(e.insuranceRate).Round(0)
	serviceFee := usage.Mul(e.serviceRate).Round(0)

	return &Breakdown{
		Hours:        int32(hours),
		UsageFee:     int32(usageFee.IntPart()),
		InsuranceFee: int32(insuranceFee.IntPart()),
		ServiceFee:   int32(serviceFee.IntPart()),
		Total:        int32(usageFee.Add(insuranceFee).Add(serviceFee).IntPart()),
	}, nil
}
