package order

import (
	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
)

// PaymentMethod is the payment method frozen into an order.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank-transfer"
	PaymentCreditCard   PaymentMethod = "credit-card"
	PaymentSEPADebit    PaymentMethod = "sepa-debit"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether m is a supported payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentBankTransfer, PaymentCreditCard, PaymentSEPADebit:
		return true
	}
	return false
}

// CustomerSnapshot denormalizes company contact and billing details at
// order time. Later edits to the company record never alter historical
// orders.
type CustomerSnapshot struct {
	CompanyID        uint
	CompanySID       string
	CompanyName      string
	VATNumber        string
	Address          string
	RequestedByID    uint
	RequestedByEmail string
}

// OrderUser is a member of the order's covered user set.
type OrderUser struct {
	UserID    uint
	FirstName string
	LastName  string
	Email     string
}

// ServiceLine is one priced service within an order. All prices are
// computed once at order creation and frozen.
type ServiceLine struct {
	ServiceID       uint
	ServiceSID      string
	Name            string
	Category        catalog.Category
	BasePrice       decimal.Decimal
	Duration        pricing.CommitmentDuration
	Discount        decimal.Decimal
	DiscountedPrice decimal.Decimal
	TotalPrice      decimal.Decimal
	UsersCount      int
}

// Billing aggregates the order's totals.
type Billing struct {
	Method                PaymentMethod
	MonthlyBaseTotal      decimal.Decimal
	EffectiveMonthlyPrice decimal.Decimal
	TotalAmount           decimal.Decimal
	Currency              string
}
