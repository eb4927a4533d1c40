// Package company holds the company aggregate: the tenant that owns
// users, orders and entitlements, and carries the monthly revenue
// counter.
package company

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	"github.com/cloudesk-io/cloudesk/internal/shared/id"
)

// Company represents the company aggregate root. monthlyRevenue is a
// materialized cache of the sum of active entitlement revenue; every
// write path that changes an entitlement's contribution must update the
// counter in the same transaction.
type Company struct {
	id             uint
	sid            string
	name           string
	vatNumber      string
	address        string
	paymentMethod  string
	currency       string
	monthlyRevenue decimal.Decimal
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCompany creates a new company.
func NewCompany(name, vatNumber, address, paymentMethod, currency string) (*Company, error) {
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	sid, err := id.NewCompanyID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Company{
		sid:            sid,
		name:           name,
		vatNumber:      vatNumber,
		address:        address,
		paymentMethod:  paymentMethod,
		currency:       currency,
		monthlyRevenue: decimal.Zero,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructCompany reconstructs a company from persistence.
func ReconstructCompany(
	dbID uint,
	sid string,
	name, vatNumber, address, paymentMethod, currency string,
	monthlyRevenue decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) (*Company, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("company ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}

	return &Company{
		id:             dbID,
		sid:            sid,
		name:           name,
		vatNumber:      vatNumber,
		address:        address,
		paymentMethod:  paymentMethod,
		currency:       currency,
		monthlyRevenue: monthlyRevenue,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (c *Company) ID() uint                        { return c.id }
func (c *Company) SID() string                     { return c.sid }
func (c *Company) Name() string                    { return c.name }
func (c *Company) VATNumber() string               { return c.vatNumber }
func (c *Company) Address() string                 { return c.address }
func (c *Company) PaymentMethod() string           { return c.paymentMethod }
func (c *Company) Currency() string                { return c.currency }
func (c *Company) MonthlyRevenue() decimal.Decimal { return c.monthlyRevenue }
func (c *Company) Version() int                    { return c.version }
func (c *Company) CreatedAt() time.Time            { return c.createdAt }
func (c *Company) UpdatedAt() time.Time            { return c.updatedAt }

// SetID sets the company ID (only for persistence layer use).
func (c *Company) SetID(dbID uint) error {
	if c.id != 0 {
		return fmt.Errorf("company ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("company ID cannot be zero")
	}
	c.id = dbID
	return nil
}

// UpdateBillingDetails edits the company's billing contact data. Orders
// snapshot these fields at creation, so historical orders are never
// affected.
func (c *Company) UpdateBillingDetails(vatNumber, address, paymentMethod string) {
	c.vatNumber = vatNumber
	c.address = address
	c.paymentMethod = paymentMethod
	c.updatedAt = biztime.NowUTC()
	c.version++
}

// ApplyRevenueDelta moves the monthly revenue counter. A result below
// zero means a writer bypassed the counter and is reported as drift.
func (c *Company) ApplyRevenueDelta(delta decimal.Decimal) error {
	next := c.monthlyRevenue.Add(delta)
	if next.IsNegative() {
		return ErrRevenueDrift
	}
	c.monthlyRevenue = next
	c.updatedAt = biztime.NowUTC()
	c.version++
	return nil
}
