// Package service holds the business rules that sit between the HTTP
// handlers and the stores: price calculation, check-in eligibility, the
// reservations lookup used by the check-in service, and event publishing.
package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseRatePerHour is the flat hourly rate every quote starts from.  The
// space's own price_per_hour is not used.
const BaseRatePerHour = 25.0

// Plan names accepted in price requests.
const (
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

var planDiscounts = map[string]float64{
	PlanBasic:      0.0,
	PlanPremium:    0.1,
	PlanEnterprise: 0.2,
}

// PriceRequest is the input of Calculate.  SpaceID is accepted for the
// contract but does not influence the price.
type PriceRequest struct {
	SpaceID uint64
	Start   time.Time
	End     time.Time
	Plan    string
}

// PriceQuote is the price breakdown returned to clients.
type PriceQuote struct {
	BasePrice float64 `json:"base_price"`
	Hours     float64 `json:"hours"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// Discount returns the discount fraction for plan.  Unknown plans get no
// discount rather than an error.
func Discount(plan string) float64 {
	return planDiscounts[plan]
}

// Calculate prices a booking.  Hours are fractional and unbounded: an end
// before the start yields negative hours and a negative total.  The total
// is rounded to cents, halves away from zero.
func Calculate(req PriceRequest) PriceQuote {
	hours := req.End.Sub(req.Start).Seconds() / 3600
	discount := Discount(req.Plan)

	total := decimal.NewFromFloat(BaseRatePerHour).
		Mul(decimal.NewFromFloat(hours)).
		Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount))).
		Round(2)
	totalF, _ := total.Float64()

	return PriceQuote{
		BasePrice: BaseRatePerHour,
		Hours:     hours,
		Discount:  discount,
		Total:     totalF,
	}
}
