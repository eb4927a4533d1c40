package catalog

import "context"

// Repository defines the interface for catalog persistence operations.
// The ordering core only reads from it.
type Repository interface {
	// Create creates a new catalog entry (catalog management surface)
	Create(ctx context.Context, s *ServiceOffering) error

	// Update updates an existing catalog entry
	Update(ctx context.Context, s *ServiceOffering) error

	// GetByID retrieves a service by numeric ID
	GetByID(ctx context.Context, id uint) (*ServiceOffering, error)

	// GetBySID retrieves a service by its public prefixed ID
	GetBySID(ctx context.Context, sid string) (*ServiceOffering, error)

	// ListActive retrieves all services available for ordering
	ListActive(ctx context.Context) ([]*ServiceOffering, error)

	// ListByCategory retrieves active services of one category
	ListByCategory(ctx context.Context, category Category) ([]*ServiceOffering, error)
}
