// Package entitlement holds the service entitlement aggregate: the
// billable grant of one catalog service to a set of users of one
// company. One record covers the whole user set of the order it came
// from; the self-service path creates a single-user record of the same
// shape.
package entitlement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	"github.com/cloudesk-io/cloudesk/internal/shared/id"
)

// EntitledUser is one covered user of an entitlement.
type EntitledUser struct {
	UserID uint
	Email  string
}

// ServiceEntitlement represents the entitlement aggregate root.
// monthlyPrice and duration are frozen at creation: later catalog price
// changes never alter existing entitlements.
type ServiceEntitlement struct {
	id           uint
	sid          string
	companyID    uint
	serviceID    uint
	serviceSID   string
	name         string
	category     catalog.Category
	status       Status
	users        []EntitledUser
	monthlyPrice decimal.Decimal
	duration     pricing.CommitmentDuration
	startDate    time.Time
	endDate      *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewServiceEntitlement creates an entitlement. The initial status is
// chosen by the caller: the provisioning transaction always starts
// active, the self-service path consults the validation policy gate.
func NewServiceEntitlement(
	companyID uint,
	serviceID uint,
	serviceSID string,
	name string,
	category catalog.Category,
	users []EntitledUser,
	monthlyPrice decimal.Decimal,
	duration pricing.CommitmentDuration,
	startDate time.Time,
	initialStatus Status,
) (*ServiceEntitlement, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if serviceID == 0 {
		return nil, fmt.Errorf("service ID is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInvalidCategory, category)
	}
	if monthlyPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if !duration.IsValid() {
		return nil, fmt.Errorf("%w: %d months", pricing.ErrInvalidDuration, duration)
	}
	if initialStatus != StatusPending && initialStatus != StatusActive {
		return nil, fmt.Errorf("%w: entitlements start pending or active, not %s", ErrInvalidStatus, initialStatus)
	}

	deduped := dedupeUsers(users)
	if len(deduped) == 0 {
		return nil, ErrNoUsers
	}

	sid, err := id.NewEntitlementID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	start := startDate.UTC()
	var end *time.Time
	if duration.Months() > 0 {
		e := biztime.AddMonths(start, duration.Months())
		end = &e
	}

	now := biztime.NowUTC()
	return &ServiceEntitlement{
		sid:          sid,
		companyID:    companyID,
		serviceID:    serviceID,
		serviceSID:   serviceSID,
		name:         name,
		category:     category,
		status:       initialStatus,
		users:        deduped,
		monthlyPrice: monthlyPrice,
		duration:     duration,
		startDate:    start,
		endDate:      end,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructServiceEntitlement reconstructs an entitlement from persistence.
func ReconstructServiceEntitlement(
	dbID uint,
	sid string,
	companyID uint,
	serviceID uint,
	serviceSID string,
	name string,
	category catalog.Category,
	status Status,
	users []EntitledUser,
	monthlyPrice decimal.Decimal,
	duration pricing.CommitmentDuration,
	startDate time.Time,
	endDate *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*ServiceEntitlement, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	return &ServiceEntitlement{
		id:           dbID,
		sid:          sid,
		companyID:    companyID,
		serviceID:    serviceID,
		serviceSID:   serviceSID,
		name:         name,
		category:     category,
		status:       status,
		users:        users,
		monthlyPrice: monthlyPrice,
		duration:     duration,
		startDate:    startDate,
		endDate:      endDate,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (e *ServiceEntitlement) ID() uint                             { return e.id }
func (e *ServiceEntitlement) SID() string                          { return e.sid }
func (e *ServiceEntitlement) CompanyID() uint                      { return e.companyID }
func (e *ServiceEntitlement) ServiceID() uint                      { return e.serviceID }
func (e *ServiceEntitlement) ServiceSID() string                   { return e.serviceSID }
func (e *ServiceEntitlement) Name() string                         { return e.name }
func (e *ServiceEntitlement) Category() catalog.Category           { return e.category }
func (e *ServiceEntitlement) Status() Status                       { return e.status }
func (e *ServiceEntitlement) MonthlyPrice() decimal.Decimal        { return e.monthlyPrice }
func (e *ServiceEntitlement) Duration() pricing.CommitmentDuration { return e.duration }
func (e *ServiceEntitlement) StartDate() time.Time                 { return e.startDate }
func (e *ServiceEntitlement) EndDate() *time.Time                  { return e.endDate }
func (e *ServiceEntitlement) Version() int                         { return e.version }
func (e *ServiceEntitlement) CreatedAt() time.Time                 { return e.createdAt }
func (e *ServiceEntitlement) UpdatedAt() time.Time                 { return e.updatedAt }

// Users returns a copy of the covered user set.
func (e *ServiceEntitlement) Users() []EntitledUser {
	out := make([]EntitledUser, len(e.users))
	copy(out, e.users)
	return out
}

// Covers reports whether the entitlement covers the given user.
func (e *ServiceEntitlement) Covers(userID uint) bool {
	for _, u := range e.users {
		if u.UserID == userID {
			return true
		}
	}
	return false
}

// SetID sets the entitlement ID (only for persistence layer use).
func (e *ServiceEntitlement) SetID(dbID uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = dbID
	return nil
}

// MonthlyRevenue returns monthlyPrice x covered users: the amount this
// entitlement adds to company revenue while active.
func (e *ServiceEntitlement) MonthlyRevenue() decimal.Decimal {
	return e.monthlyPrice.Mul(decimal.NewFromInt(int64(len(e.users))))
}

// RevenueContribution returns MonthlyRevenue for billable statuses and
// zero otherwise.
func (e *ServiceEntitlement) RevenueContribution() decimal.Decimal {
	if !e.status.Billable() {
		return decimal.Zero
	}
	return e.MonthlyRevenue()
}

// Activate transitions pending -> active and returns the revenue that
// starts counting. The caller must apply the delta to the company
// counter in the same transaction.
func (e *ServiceEntitlement) Activate() (decimal.Decimal, error) {
	if !e.status.CanTransitionTo(StatusActive) {
		return decimal.Zero, ErrInvalidStatusTransition(e.status, StatusActive)
	}
	e.status = StatusActive
	e.touch()
	return e.MonthlyRevenue(), nil
}

// Reject transitions pending -> rejected. No revenue was counting, so
// there is no delta.
func (e *ServiceEntitlement) Reject() error {
	if !e.status.CanTransitionTo(StatusRejected) {
		return ErrInvalidStatusTransition(e.status, StatusRejected)
	}
	e.status = StatusRejected
	e.touch()
	return nil
}

// Suspend pauses an active entitlement and returns the revenue that
// stops counting (as a negative delta).
func (e *ServiceEntitlement) Suspend() (decimal.Decimal, error) {
	if !e.status.CanTransitionTo(StatusSuspended) {
		return decimal.Zero, ErrInvalidStatusTransition(e.status, StatusSuspended)
	}
	delta := e.MonthlyRevenue().Neg()
	e.status = StatusSuspended
	e.touch()
	return delta, nil
}

// Resume reactivates a suspended entitlement and returns the revenue
// that starts counting again.
func (e *ServiceEntitlement) Resume() (decimal.Decimal, error) {
	if !e.status.CanTransitionTo(StatusActive) {
		return decimal.Zero, ErrInvalidStatusTransition(e.status, StatusActive)
	}
	e.status = StatusActive
	e.touch()
	return e.MonthlyRevenue(), nil
}

// UpdateMonthlyPrice changes the price (admin edit) and returns the
// revenue delta to apply to the company counter; zero while the
// entitlement is not billable.
func (e *ServiceEntitlement) UpdateMonthlyPrice(newPrice decimal.Decimal) (decimal.Decimal, error) {
	if newPrice.IsNegative() || newPrice.IsZero() {
		return decimal.Zero, ErrInvalidPrice
	}

	userCount := decimal.NewFromInt(int64(len(e.users)))
	delta := decimal.Zero
	if e.status.Billable() {
		delta = newPrice.Sub(e.monthlyPrice).Mul(userCount)
	}

	e.monthlyPrice = newPrice
	e.touch()
	return delta, nil
}

// AddUser extends coverage to another user and returns the revenue
// delta (one more monthly price while billable).
func (e *ServiceEntitlement) AddUser(user EntitledUser) (decimal.Decimal, error) {
	if user.UserID == 0 {
		return decimal.Zero, fmt.Errorf("user ID is required")
	}
	if e.Covers(user.UserID) {
		return decimal.Zero, ErrUserAlreadyCovered
	}

	e.users = append(e.users, user)
	e.touch()

	if !e.status.Billable() {
		return decimal.Zero, nil
	}
	return e.monthlyPrice, nil
}

// RemoveUser drops coverage for a user and returns the revenue delta
// (negative while billable). The last covered user cannot be removed.
func (e *ServiceEntitlement) RemoveUser(userID uint) (decimal.Decimal, error) {
	if !e.Covers(userID) {
		return decimal.Zero, ErrUserNotCovered
	}
	if len(e.users) == 1 {
		return decimal.Zero, ErrLastUser
	}

	for i, u := range e.users {
		if u.UserID == userID {
			e.users = append(e.users[:i], e.users[i+1:]...)
			break
		}
	}
	e.touch()

	if !e.status.Billable() {
		return decimal.Zero, nil
	}
	return e.monthlyPrice.Neg(), nil
}

func (e *ServiceEntitlement) touch() {
	e.updatedAt = biztime.NowUTC()
	e.version++
}

func dedupeUsers(users []EntitledUser) []EntitledUser {
	seen := make(map[uint]bool, len(users))
	out := make([]EntitledUser, 0, len(users))
	for _, u := range users {
		if u.UserID == 0 || seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		out = append(out, u)
	}
	return out
}
