// Package pricing computes effective monthly and total commitment prices
// for catalog services. It is pure: no I/O, no clock, fully deterministic
// for a given (base price, duration) pair.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidDuration is returned when a duration outside the enumerated
// commitment schedule is used.
var ErrInvalidDuration = errors.New("invalid commitment duration")

// discountSchedule maps each commitment duration to its discount rate.
// The steps are not linear (10/15/20), so this is an explicit table
// rather than a formula.
var discountSchedule = map[CommitmentDuration]decimal.Decimal{
	DurationNone:     decimal.Zero,
	Duration12Months: decimal.New(10, -2), // 0.10
	Duration24Months: decimal.New(15, -2), // 0.15
	Duration36Months: decimal.New(20, -2), // 0.20
}

// Discount returns the discount rate for the given commitment duration.
// Any duration outside the schedule is an error, never a silent default.
func Discount(duration CommitmentDuration) (decimal.Decimal, error) {
	rate, ok := discountSchedule[duration]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d months", ErrInvalidDuration, duration)
	}
	return rate, nil
}

// DiscountedMonthlyPrice returns basePrice * (1 - discount(duration)),
// rounded to two decimal places.
func DiscountedMonthlyPrice(basePrice decimal.Decimal, duration CommitmentDuration) (decimal.Decimal, error) {
	rate, err := Discount(duration)
	if err != nil {
		return decimal.Zero, err
	}
	return basePrice.Mul(decimal.NewFromInt(1).Sub(rate)).Round(2), nil
}

// TotalCommitmentPrice returns the total amount due over the whole
// commitment: discounted monthly price times billable months. A duration
// of zero is billed as one month equivalent.
func TotalCommitmentPrice(basePrice decimal.Decimal, duration CommitmentDuration) (decimal.Decimal, error) {
	monthly, err := DiscountedMonthlyPrice(basePrice, duration)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(decimal.NewFromInt(int64(duration.BillableMonths()))), nil
}
