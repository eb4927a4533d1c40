// Package catalog holds the read-only service catalog: the priced
// offerings a company can order for its users.
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	"github.com/cloudesk-io/cloudesk/internal/shared/id"
)

// ServiceOffering represents a catalog entry. Entries are immutable
// reference data for the ordering core: prices frozen into orders and
// entitlements never change retroactively when the catalog changes.
type ServiceOffering struct {
	id          uint
	sid         string
	name        string
	description string
	basePrice   decimal.Decimal
	category    Category
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewServiceOffering creates a new catalog entry.
func NewServiceOffering(name, description string, basePrice decimal.Decimal, category Category) (*ServiceOffering, error) {
	if name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if basePrice.IsNegative() || basePrice.IsZero() {
		return nil, fmt.Errorf("base price must be greater than zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	sid, err := id.NewServiceID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &ServiceOffering{
		sid:         sid,
		name:        name,
		description: description,
		basePrice:   basePrice,
		category:    category,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructServiceOffering reconstructs a catalog entry from persistence.
func ReconstructServiceOffering(
	dbID uint,
	sid string,
	name, description string,
	basePrice decimal.Decimal,
	category Category,
	active bool,
	createdAt, updatedAt time.Time,
) (*ServiceOffering, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("service ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	return &ServiceOffering{
		id:          dbID,
		sid:         sid,
		name:        name,
		description: description,
		basePrice:   basePrice,
		category:    category,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (s *ServiceOffering) ID() uint                   { return s.id }
func (s *ServiceOffering) SID() string                { return s.sid }
func (s *ServiceOffering) Name() string               { return s.name }
func (s *ServiceOffering) Description() string        { return s.description }
func (s *ServiceOffering) BasePrice() decimal.Decimal { return s.basePrice }
func (s *ServiceOffering) Category() Category         { return s.category }
func (s *ServiceOffering) Active() bool               { return s.active }
func (s *ServiceOffering) CreatedAt() time.Time       { return s.createdAt }
func (s *ServiceOffering) UpdatedAt() time.Time       { return s.updatedAt }

// SetID sets the service ID (only for persistence layer use).
func (s *ServiceOffering) SetID(dbID uint) error {
	if s.id != 0 {
		return fmt.Errorf("service ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("service ID cannot be zero")
	}
	s.id = dbID
	return nil
}

// Deactivate removes the offering from sale. Existing orders and
// entitlements keep their frozen prices.
func (s *ServiceOffering) Deactivate() {
	if !s.active {
		return
	}
	s.active = false
	s.updatedAt = biztime.NowUTC()
}

// Activate puts the offering back on sale.
func (s *ServiceOffering) Activate() {
	if s.active {
		return
	}
	s.active = true
	s.updatedAt = biztime.NowUTC()
}
