// Package order holds the purchase order aggregate: a priced, stateful
// request to provision catalog services to a set of company users.
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	"github.com/cloudesk-io/cloudesk/internal/shared/id"
)

// LineInput is one service selection handed to the order builder: a
// catalog entry plus the buyer's explicit commitment duration choice.
type LineInput struct {
	Service  *catalog.ServiceOffering
	Duration pricing.CommitmentDuration
	// DurationChosen distinguishes an explicit "no commitment" choice
	// from a missing choice; a zero Duration alone is ambiguous.
	DurationChosen bool
}

// Order represents the order aggregate root. Orders are created once,
// mutated only by status transitions, and never deleted.
type Order struct {
	id        uint
	sid       string
	status    Status
	customer  CustomerSnapshot
	services  []ServiceLine
	users     []OrderUser
	billing   Billing
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder assembles a fully priced order in pending state. It validates
// the selection, deduplicates users by ID, prices every line through the
// pricing package, and computes the aggregate billing totals.
func NewOrder(
	customer CustomerSnapshot,
	inputs []LineInput,
	users []OrderUser,
	method PaymentMethod,
	currency string,
) (*Order, error) {
	if len(inputs) == 0 {
		return nil, ErrNoServices
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	if customer.CompanyID == 0 {
		return nil, fmt.Errorf("company reference is required")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, method)
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	deduped := dedupeUsers(users)
	if len(deduped) == 0 {
		return nil, ErrNoUsers
	}

	lines := make([]ServiceLine, 0, len(inputs))
	maxDuration := pricing.DurationNone
	monthlyBaseTotal := decimal.Zero
	totalAmount := decimal.Zero

	for _, in := range inputs {
		if in.Service == nil {
			return nil, fmt.Errorf("service reference is required")
		}
		if !in.DurationChosen {
			return nil, fmt.Errorf("%w: %s", ErrDurationRequired, in.Service.Name())
		}
		if !in.Duration.IsValid() {
			return nil, fmt.Errorf("%w: %d months for %s", pricing.ErrInvalidDuration, in.Duration, in.Service.Name())
		}

		discount, err := pricing.Discount(in.Duration)
		if err != nil {
			return nil, err
		}
		discounted, err := pricing.DiscountedMonthlyPrice(in.Service.BasePrice(), in.Duration)
		if err != nil {
			return nil, err
		}
		total, err := pricing.TotalCommitmentPrice(in.Service.BasePrice(), in.Duration)
		if err != nil {
			return nil, err
		}

		lines = append(lines, ServiceLine{
			ServiceID:       in.Service.ID(),
			ServiceSID:      in.Service.SID(),
			Name:            in.Service.Name(),
			Category:        in.Service.Category(),
			BasePrice:       in.Service.BasePrice(),
			Duration:        in.Duration,
			Discount:        discount,
			DiscountedPrice: discounted,
			TotalPrice:      total,
			UsersCount:      len(deduped),
		})

		monthlyBaseTotal = monthlyBaseTotal.Add(discounted)
		totalAmount = totalAmount.Add(total)
		if in.Duration > maxDuration {
			maxDuration = in.Duration
		}
	}

	sid, err := id.NewOrderID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	effective := totalAmount.
		Div(decimal.NewFromInt(int64(maxDuration.BillableMonths()))).
		Round(2)

	now := biztime.NowUTC()
	return &Order{
		sid:      sid,
		status:   StatusPending,
		customer: customer,
		services: lines,
		users:    deduped,
		billing: Billing{
			Method:                method,
			MonthlyBaseTotal:      monthlyBaseTotal,
			EffectiveMonthlyPrice: effective,
			TotalAmount:           totalAmount,
			Currency:              currency,
		},
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructOrder reconstructs an order from persistence.
func ReconstructOrder(
	dbID uint,
	sid string,
	status Status,
	customer CustomerSnapshot,
	services []ServiceLine,
	users []OrderUser,
	billing Billing,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("order ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if len(services) == 0 {
		return nil, ErrNoServices
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	return &Order{
		id:        dbID,
		sid:       sid,
		status:    status,
		customer:  customer,
		services:  services,
		users:     users,
		billing:   billing,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (o *Order) ID() uint                   { return o.id }
func (o *Order) SID() string                { return o.sid }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Customer() CustomerSnapshot { return o.customer }
func (o *Order) Billing() Billing           { return o.billing }
func (o *Order) Version() int               { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// Services returns a copy of the order's service lines.
func (o *Order) Services() []ServiceLine {
	out := make([]ServiceLine, len(o.services))
	copy(out, o.services)
	return out
}

// Users returns a copy of the order's covered user set.
func (o *Order) Users() []OrderUser {
	out := make([]OrderUser, len(o.users))
	copy(out, o.users)
	return out
}

// SetID sets the order ID (only for persistence layer use).
func (o *Order) SetID(dbID uint) error {
	if o.id != 0 {
		return fmt.Errorf("order ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("order ID cannot be zero")
	}
	o.id = dbID
	return nil
}

// Confirm transitions the order pending -> confirmed.
func (o *Order) Confirm() error {
	return o.transitionTo(StatusConfirmed)
}

// Reject transitions the order pending -> rejected.
func (o *Order) Reject() error {
	return o.transitionTo(StatusRejected)
}

func (o *Order) transitionTo(target Status) error {
	if !o.status.CanTransitionTo(target) {
		return ErrInvalidStatusTransition(o.status, target)
	}
	o.status = target
	o.updatedAt = biztime.NowUTC()
	o.version++
	return nil
}

// Validate re-checks the aggregate's billing invariants. Used by tests
// and by reconciliation tooling; a freshly built order always passes.
func (o *Order) Validate() error {
	if len(o.services) == 0 {
		return ErrNoServices
	}
	if len(o.users) == 0 {
		return ErrNoUsers
	}

	monthly := decimal.Zero
	total := decimal.Zero
	for _, line := range o.services {
		expected := line.BasePrice.Mul(decimal.NewFromInt(1).Sub(line.Discount)).Round(2)
		if !line.DiscountedPrice.Equal(expected) {
			return fmt.Errorf("line %s: discounted price %s does not match base %s at discount %s",
				line.ServiceSID, line.DiscountedPrice, line.BasePrice, line.Discount)
		}
		expectedTotal := line.DiscountedPrice.Mul(decimal.NewFromInt(int64(line.Duration.BillableMonths())))
		if !line.TotalPrice.Equal(expectedTotal) {
			return fmt.Errorf("line %s: total price %s does not match %s over %d months",
				line.ServiceSID, line.TotalPrice, line.DiscountedPrice, line.Duration.BillableMonths())
		}
		monthly = monthly.Add(line.DiscountedPrice)
		total = total.Add(line.TotalPrice)
	}

	if !o.billing.MonthlyBaseTotal.Equal(monthly) {
		return fmt.Errorf("monthly base total %s does not match line sum %s", o.billing.MonthlyBaseTotal, monthly)
	}
	if !o.billing.TotalAmount.Equal(total) {
		return fmt.Errorf("total amount %s does not match line sum %s", o.billing.TotalAmount, total)
	}
	return nil
}

func dedupeUsers(users []OrderUser) []OrderUser {
	seen := make(map[uint]bool, len(users))
	out := make([]OrderUser, 0, len(users))
	for _, u := range users {
		if u.UserID == 0 || seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		out = append(out, u)
	}
	return out
}
