package usecases

import "context"

// TransactionManager is the slice of db.TransactionManager the order
// use cases need. Consumed as an interface so tests can run the write
// set without a database.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier sends post-commit notifications. Sends are best effort: a
// failure is logged and never propagated to the caller.
type Notifier interface {
	SendOrderConfirmedEmail(to, orderSID, monthlyPrice, totalAmount, currency string) error
	SendOrderRejectedEmail(to, orderSID string) error
}
