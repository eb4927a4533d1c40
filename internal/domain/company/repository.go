package company

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for company persistence operations.
type Repository interface {
	// Create persists a new company
	Create(ctx context.Context, c *Company) error

	// Update persists changes to an existing company
	Update(ctx context.Context, c *Company) error

	// GetByID retrieves a company by numeric ID
	GetByID(ctx context.Context, id uint) (*Company, error)

	// GetBySID retrieves a company by its public prefixed ID
	GetBySID(ctx context.Context, sid string) (*Company, error)

	// AddMonthlyRevenue applies a delta to the revenue counter with a
	// single SQL-side increment, so concurrent writers cannot lose
	// updates. Must be called inside the transaction that mutates the
	// entitlement producing the delta.
	AddMonthlyRevenue(ctx context.Context, companyID uint, delta decimal.Decimal) error

	// SetMonthlyRevenue overwrites the counter. Used by revenue
	// reconciliation repair only.
	SetMonthlyRevenue(ctx context.Context, companyID uint, value decimal.Decimal) error
}
