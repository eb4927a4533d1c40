package entitlement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
)

// --- helpers ---

func newEntitlement(t *testing.T, status Status, users ...EntitledUser) *ServiceEntitlement {
	t.Helper()
	if len(users) == 0 {
		users = []EntitledUser{
			{UserID: 1, Email: "ada@acme.example"},
			{UserID: 2, Email: "alan@acme.example"},
		}
	}
	e, err := NewServiceEntitlement(
		1, 10, "svc_clouddesk", "Cloud Desktop Pro", catalog.CategoryRemoteDesktop,
		users, decimal.NewFromInt(90), pricing.Duration12Months,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), status,
	)
	require.NoError(t, err)
	return e
}

// =====================================================================
// TestNewServiceEntitlement_*
// =====================================================================

func TestNewServiceEntitlement_Valid(t *testing.T) {
	e := newEntitlement(t, StatusActive)

	assert.NotEmpty(t, e.SID())
	assert.Equal(t, StatusActive, e.Status())
	assert.Len(t, e.Users(), 2)
	assert.True(t, e.MonthlyPrice().Equal(decimal.NewFromInt(90)))
	assert.Equal(t, pricing.Duration12Months, e.Duration())
	assert.Equal(t, 1, e.Version())

	require.NotNil(t, e.EndDate())
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), *e.EndDate())
}

func TestNewServiceEntitlement_NoCommitmentIsOpenEnded(t *testing.T) {
	e, err := NewServiceEntitlement(
		1, 10, "svc_books", "Books", catalog.CategoryAccounting,
		[]EntitledUser{{UserID: 1, Email: "ada@acme.example"}},
		decimal.NewFromInt(50), pricing.DurationNone,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), StatusPending,
	)
	require.NoError(t, err)
	assert.Nil(t, e.EndDate(), "no-commitment entitlements have no end date")
}

func TestNewServiceEntitlement_EmptyUsers(t *testing.T) {
	_, err := NewServiceEntitlement(
		1, 10, "svc_x", "X", catalog.CategoryAccounting,
		nil, decimal.NewFromInt(10), pricing.DurationNone, time.Now(), StatusPending,
	)
	assert.ErrorIs(t, err, ErrNoUsers)
}

func TestNewServiceEntitlement_DeduplicatesUsers(t *testing.T) {
	e := newEntitlement(t, StatusActive,
		EntitledUser{UserID: 1, Email: "ada@acme.example"},
		EntitledUser{UserID: 1, Email: "dup@acme.example"},
		EntitledUser{UserID: 2, Email: "alan@acme.example"},
	)
	assert.Len(t, e.Users(), 2)
}

func TestNewServiceEntitlement_RejectsTerminalInitialStatus(t *testing.T) {
	for _, status := range []Status{StatusSuspended, StatusRejected} {
		_, err := NewServiceEntitlement(
			1, 10, "svc_x", "X", catalog.CategoryAccounting,
			[]EntitledUser{{UserID: 1}}, decimal.NewFromInt(10),
			pricing.DurationNone, time.Now(), status,
		)
		assert.ErrorIs(t, err, ErrInvalidStatus, "initial status %s must be rejected", status)
	}
}

// =====================================================================
// TestServiceEntitlement_Transitions
// =====================================================================

func TestActivate_FromPending(t *testing.T) {
	e := newEntitlement(t, StatusPending)

	delta, err := e.Activate()
	require.NoError(t, err)
	assert.Equal(t, StatusActive, e.Status())
	assert.True(t, delta.Equal(decimal.NewFromInt(180)), "delta is price x users: got %s", delta)
}

func TestActivate_FromActiveFails(t *testing.T) {
	e := newEntitlement(t, StatusActive)
	_, err := e.Activate()
	assert.Error(t, err)
}

func TestReject_FromPending(t *testing.T) {
	e := newEntitlement(t, StatusPending)
	require.NoError(t, e.Reject())
	assert.Equal(t, StatusRejected, e.Status())
	assert.True(t, e.RevenueContribution().IsZero())
}

func TestReject_FromActiveFails(t *testing.T) {
	e := newEntitlement(t, StatusActive)
	assert.Error(t, e.Reject())
}

func TestSuspendAndResume(t *testing.T) {
	e := newEntitlement(t, StatusActive)

	delta, err := e.Suspend()
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(-180)))
	assert.Equal(t, StatusSuspended, e.Status())
	assert.True(t, e.RevenueContribution().IsZero())

	delta, err = e.Resume()
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, StatusActive, e.Status())
}

// =====================================================================
// TestServiceEntitlement_RevenueDeltas
// =====================================================================

func TestMonthlyRevenue(t *testing.T) {
	e := newEntitlement(t, StatusActive)
	assert.True(t, e.MonthlyRevenue().Equal(decimal.NewFromInt(180)), "90 x 2 users")
	assert.True(t, e.RevenueContribution().Equal(decimal.NewFromInt(180)))

	pending := newEntitlement(t, StatusPending)
	assert.True(t, pending.MonthlyRevenue().Equal(decimal.NewFromInt(180)))
	assert.True(t, pending.RevenueContribution().IsZero(), "pending does not contribute")
}

func TestUpdateMonthlyPrice_ActiveReportsDelta(t *testing.T) {
	e := newEntitlement(t, StatusActive)

	delta, err := e.UpdateMonthlyPrice(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(20)), "(100-90) x 2 users")
	assert.True(t, e.MonthlyPrice().Equal(decimal.NewFromInt(100)))
}

func TestUpdateMonthlyPrice_PendingNoDelta(t *testing.T) {
	e := newEntitlement(t, StatusPending)

	delta, err := e.UpdateMonthlyPrice(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, delta.IsZero(), "non-billable price change has no revenue effect")
}

func TestUpdateMonthlyPrice_RejectsNonPositive(t *testing.T) {
	e := newEntitlement(t, StatusActive)
	_, err := e.UpdateMonthlyPrice(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestAddUser(t *testing.T) {
	e := newEntitlement(t, StatusActive)

	delta, err := e.AddUser(EntitledUser{UserID: 3, Email: "grace@acme.example"})
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(90)))
	assert.Len(t, e.Users(), 3)

	_, err = e.AddUser(EntitledUser{UserID: 3, Email: "grace@acme.example"})
	assert.ErrorIs(t, err, ErrUserAlreadyCovered)
}

func TestRemoveUser(t *testing.T) {
	e := newEntitlement(t, StatusActive)

	delta, err := e.RemoveUser(2)
	require.NoError(t, err)
	assert.True(t, delta.Equal(decimal.NewFromInt(-90)))
	assert.Len(t, e.Users(), 1)

	_, err = e.RemoveUser(2)
	assert.ErrorIs(t, err, ErrUserNotCovered)

	_, err = e.RemoveUser(1)
	assert.ErrorIs(t, err, ErrLastUser)
}

// =====================================================================
// TestStatus_*
// =====================================================================

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusActive))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.True(t, StatusActive.CanTransitionTo(StatusSuspended))
	assert.True(t, StatusSuspended.CanTransitionTo(StatusActive))
	assert.False(t, StatusRejected.CanTransitionTo(StatusActive))
	assert.False(t, StatusActive.CanTransitionTo(StatusRejected))
	assert.False(t, StatusActive.CanTransitionTo(StatusPending))
}

func TestStatus_Billable(t *testing.T) {
	assert.True(t, StatusActive.Billable())
	assert.False(t, StatusPending.Billable())
	assert.False(t, StatusSuspended.Billable())
	assert.False(t, StatusRejected.Billable())
}
