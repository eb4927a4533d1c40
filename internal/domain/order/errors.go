package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned when an order is not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoServices is returned when an order has no service lines
	ErrNoServices = errors.New("at least one service is required")

	// ErrNoUsers is returned when an order covers no users
	ErrNoUsers = errors.New("at least one user is required")

	// ErrDurationRequired is returned when a service line has no explicit
	// commitment duration choice
	ErrDurationRequired = errors.New("a commitment duration must be chosen for every service")

	// ErrAlreadyProcessed is returned when transitioning an order that is
	// no longer pending
	ErrAlreadyProcessed = errors.New("order was already processed")

	// ErrInvalidPaymentMethod is returned for an unknown payment method
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidStatus is returned for an unknown order status value
	ErrInvalidStatus = errors.New("invalid order status")
)

// ErrInvalidStatusTransition returns an error for invalid status transitions
func ErrInvalidStatusTransition(from, to Status) error {
	return fmt.Errorf("%w: cannot transition from %s to %s", ErrAlreadyProcessed, from, to)
}
