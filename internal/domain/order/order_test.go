package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
)

// --- helpers ---

func newOffering(t *testing.T, name string, price string, category catalog.Category) *catalog.ServiceOffering {
	t.Helper()
	svc, err := catalog.NewServiceOffering(name, "test offering", decimal.RequireFromString(price), category)
	require.NoError(t, err)
	require.NoError(t, svc.SetID(uint(len(name))+1))
	return svc
}

func testCustomer() CustomerSnapshot {
	return CustomerSnapshot{
		CompanyID:        1,
		CompanySID:       "cmp_testcompany",
		CompanyName:      "Acme SARL",
		VATNumber:        "FR001234567",
		Address:          "10 rue de la Paix, Paris",
		RequestedByID:    7,
		RequestedByEmail: "admin@acme.example",
	}
}

func testUsers() []OrderUser {
	return []OrderUser{
		{UserID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@acme.example"},
		{UserID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@acme.example"},
	}
}

func chosen(svc *catalog.ServiceOffering, d pricing.CommitmentDuration) LineInput {
	return LineInput{Service: svc, Duration: d, DurationChosen: true}
}

// =====================================================================
// TestNewOrder_*
// =====================================================================

func TestNewOrder_StandardTwelveMonthOrder(t *testing.T) {
	svc := newOffering(t, "Cloud Desktop Pro", "100", catalog.CategoryRemoteDesktop)

	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.Duration12Months)},
		testUsers(), PaymentBankTransfer, "EUR")

	require.NoError(t, err)
	require.NotNil(t, o)
	assert.NotEmpty(t, o.SID())
	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, 1, o.Version())

	lines := o.Services()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Discount.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, lines[0].DiscountedPrice.Equal(decimal.NewFromInt(90)))
	assert.True(t, lines[0].TotalPrice.Equal(decimal.NewFromInt(1080)))
	assert.Equal(t, 2, lines[0].UsersCount)

	b := o.Billing()
	assert.True(t, b.MonthlyBaseTotal.Equal(decimal.NewFromInt(90)))
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(1080)))
	assert.True(t, b.EffectiveMonthlyPrice.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, PaymentBankTransfer, b.Method)
	assert.Equal(t, "EUR", b.Currency)

	assert.NoError(t, o.Validate())
}

func TestNewOrder_NoCommitmentBilledAsOneMonth(t *testing.T) {
	svc := newOffering(t, "Books", "50", catalog.CategoryAccounting)

	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		testUsers(), PaymentCreditCard, "EUR")

	require.NoError(t, err)
	lines := o.Services()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].DiscountedPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, lines[0].TotalPrice.Equal(decimal.NewFromInt(50)), "duration 0 bills one month, not zero")
	assert.True(t, o.Billing().TotalAmount.Equal(decimal.NewFromInt(50)))
}

func TestNewOrder_TotalsAcrossMixedLines(t *testing.T) {
	desktop := newOffering(t, "Cloud Desktop", "100", catalog.CategoryRemoteDesktop)
	suite := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)

	o, err := NewOrder(testCustomer(), []LineInput{
		chosen(desktop, pricing.Duration24Months),
		chosen(suite, pricing.DurationNone),
	}, testUsers(), PaymentBankTransfer, "EUR")

	require.NoError(t, err)

	// 100*0.85 = 85/month, 85*24 = 2040; suite at 30 for one month.
	b := o.Billing()
	assert.True(t, b.MonthlyBaseTotal.Equal(decimal.NewFromInt(115)))
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(2070)))
	// Effective monthly spreads the total over the longest commitment.
	assert.True(t, b.EffectiveMonthlyPrice.Equal(decimal.RequireFromString("86.25")))
	assert.NoError(t, o.Validate())
}

func TestNewOrder_DeduplicatesUsers(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	users := []OrderUser{
		{UserID: 1, Email: "ada@acme.example"},
		{UserID: 1, Email: "ada+alias@acme.example"},
		{UserID: 2, Email: "alan@acme.example"},
	}

	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		users, PaymentBankTransfer, "EUR")

	require.NoError(t, err)
	require.Len(t, o.Users(), 2)
	assert.Equal(t, "ada@acme.example", o.Users()[0].Email, "first occurrence wins")
	assert.Equal(t, 2, o.Services()[0].UsersCount)
}

func TestNewOrder_EmptyServices(t *testing.T) {
	o, err := NewOrder(testCustomer(), nil, testUsers(), PaymentBankTransfer, "EUR")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestNewOrder_EmptyUsers(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		nil, PaymentBankTransfer, "EUR")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, ErrNoUsers)
}

func TestNewOrder_MissingDurationChoice(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	o, err := NewOrder(testCustomer(), []LineInput{{Service: svc}}, testUsers(), PaymentBankTransfer, "EUR")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, ErrDurationRequired)
}

func TestNewOrder_InvalidDuration(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	o, err := NewOrder(testCustomer(),
		[]LineInput{{Service: svc, Duration: 6, DurationChosen: true}},
		testUsers(), PaymentBankTransfer, "EUR")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, pricing.ErrInvalidDuration)
}

func TestNewOrder_InvalidPaymentMethod(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		testUsers(), "cash", "EUR")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

// =====================================================================
// TestOrder_Transitions
// =====================================================================

func TestOrder_ConfirmFromPending(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		testUsers(), PaymentBankTransfer, "EUR")
	require.NoError(t, err)

	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status())
	assert.Equal(t, 2, o.Version())
}

func TestOrder_RejectFromPending(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)
	o, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		testUsers(), PaymentBankTransfer, "EUR")
	require.NoError(t, err)

	require.NoError(t, o.Reject())
	assert.Equal(t, StatusRejected, o.Status())
}

func TestOrder_TerminalStatesAreFinal(t *testing.T) {
	svc := newOffering(t, "Office Suite", "30", catalog.CategoryProductivitySuite)

	confirmed, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		testUsers(), PaymentBankTransfer, "EUR")
	require.NoError(t, err)
	require.NoError(t, confirmed.Confirm())

	assert.ErrorIs(t, confirmed.Confirm(), ErrAlreadyProcessed)
	assert.ErrorIs(t, confirmed.Reject(), ErrAlreadyProcessed)
	assert.Equal(t, StatusConfirmed, confirmed.Status(), "status unchanged after failed transition")

	rejected, err := NewOrder(testCustomer(), []LineInput{chosen(svc, pricing.DurationNone)},
		testUsers(), PaymentBankTransfer, "EUR")
	require.NoError(t, err)
	require.NoError(t, rejected.Reject())

	assert.ErrorIs(t, rejected.Confirm(), ErrAlreadyProcessed)
	assert.ErrorIs(t, rejected.Reject(), ErrAlreadyProcessed)
	assert.Equal(t, StatusRejected, rejected.Status())
}

// =====================================================================
// TestStatus_*
// =====================================================================

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusRejected))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusPending))
	assert.False(t, StatusRejected.CanTransitionTo(StatusConfirmed))
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}
