package activity

import "context"

// Repository is the insert-only persistence interface for the audit
// log. There is deliberately no update or delete.
type Repository interface {
	// Append persists a new audit entry
	Append(ctx context.Context, a *Activity) error

	// ListByCompany retrieves a company's audit trail, newest first
	ListByCompany(ctx context.Context, companyID uint, limit int) ([]*Activity, error)

	// ListByType retrieves entries of one type for a company, newest first
	ListByType(ctx context.Context, companyID uint, typ Type, limit int) ([]*Activity, error)
}
