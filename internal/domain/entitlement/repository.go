package entitlement

import "context"

// Repository defines the interface for entitlement persistence
// operations. Writers that change a record's revenue contribution must
// run inside the same transaction as the company counter update.
type Repository interface {
	// Create persists a new entitlement
	Create(ctx context.Context, e *ServiceEntitlement) error

	// Update persists changes to an existing entitlement
	Update(ctx context.Context, e *ServiceEntitlement) error

	// Delete removes an entitlement by ID (cancellation)
	Delete(ctx context.Context, id uint) error

	// GetByID retrieves an entitlement by numeric ID
	GetByID(ctx context.Context, id uint) (*ServiceEntitlement, error)

	// GetBySID retrieves an entitlement by its public prefixed ID
	GetBySID(ctx context.Context, sid string) (*ServiceEntitlement, error)

	// ListByCompany retrieves all entitlements of a company
	ListByCompany(ctx context.Context, companyID uint) ([]*ServiceEntitlement, error)

	// ListActiveByCompany retrieves the company's billable entitlements
	ListActiveByCompany(ctx context.Context, companyID uint) ([]*ServiceEntitlement, error)

	// ListPending retrieves entitlements awaiting manual validation,
	// oldest first
	ListPending(ctx context.Context) ([]*ServiceEntitlement, error)

	// ListByUser retrieves entitlements covering the given user
	ListByUser(ctx context.Context, userID uint) ([]*ServiceEntitlement, error)
}
