package entitlement

import (
	"errors"
	"fmt"
)

var (
	// ErrEntitlementNotFound is returned when an entitlement is not found
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrNoUsers is returned when an entitlement covers no users
	ErrNoUsers = errors.New("entitlement must cover at least one user")

	// ErrInvalidStatus is returned for an unknown entitlement status
	ErrInvalidStatus = errors.New("invalid entitlement status")

	// ErrNotPending is returned when approving or rejecting an
	// entitlement that is not awaiting validation
	ErrNotPending = errors.New("entitlement is not pending validation")

	// ErrUserAlreadyCovered is returned when adding a user the
	// entitlement already covers
	ErrUserAlreadyCovered = errors.New("user is already covered by this entitlement")

	// ErrUserNotCovered is returned when removing a user the entitlement
	// does not cover
	ErrUserNotCovered = errors.New("user is not covered by this entitlement")

	// ErrLastUser is returned when removing the only covered user;
	// cancel the entitlement instead
	ErrLastUser = errors.New("cannot remove the last covered user")

	// ErrInvalidPrice is returned for a non-positive monthly price
	ErrInvalidPrice = errors.New("monthly price must be greater than zero")
)

// ErrInvalidStatusTransition returns an error for invalid status transitions
func ErrInvalidStatusTransition(from, to Status) error {
	return fmt.Errorf("invalid status transition from %s to %s", from, to)
}
