package usecases

import "context"

// TransactionManager is the slice of db.TransactionManager the
// entitlement use cases need.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier sends post-commit notifications, best effort.
type Notifier interface {
	SendServicePendingEmail(to, serviceName string) error
}
