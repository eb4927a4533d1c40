package order

import "context"

// Repository defines the interface for order persistence operations.
// Orders are historical records: there is no delete.
type Repository interface {
	// Create persists a new order
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order by numeric ID
	GetByID(ctx context.Context, id uint) (*Order, error)

	// GetBySID retrieves an order by its public prefixed ID
	GetBySID(ctx context.Context, sid string) (*Order, error)

	// ListByCompany retrieves all orders of a company, newest first
	ListByCompany(ctx context.Context, companyID uint) ([]*Order, error)

	// ListByStatus retrieves all orders in a given status, oldest first
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)

	// TransitionFromPending persists the order's status and updatedAt
	// guarded on the stored status still being pending. It returns
	// ErrAlreadyProcessed when the guard fails, so a concurrent second
	// confirmation observes the order is no longer pending and fails
	// cleanly instead of double-provisioning.
	TransitionFromPending(ctx context.Context, o *Order) error
}
