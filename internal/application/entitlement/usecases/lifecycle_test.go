package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
)

type lifecycleEnv struct {
	entitlementRepo *fakeEntitlementRepo
	companyRepo     *fakeCompanyRepo
	activityRepo    *fakeActivityRepo
	txMgr           *fakeTxManager
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
	t.Helper()
	env := &lifecycleEnv{
		entitlementRepo: newFakeEntitlementRepo(),
		companyRepo:     newFakeCompanyRepo(),
		activityRepo:    newFakeActivityRepo(),
	}
	env.companyRepo.add(newTestCompany(t, 1, "cmp_acme"))
	env.txMgr = newFakeTxManager(env.entitlementRepo, env.companyRepo, env.activityRepo)
	return env
}

// seed stores an entitlement and aligns the company revenue counter
// with its contribution, as production writes would have.
func (env *lifecycleEnv) seed(t *testing.T, ent *entitlement.ServiceEntitlement) {
	t.Helper()
	env.entitlementRepo.entitlements = append(env.entitlementRepo.entitlements, ent)
	if env.entitlementRepo.nextID <= ent.ID() {
		env.entitlementRepo.nextID = ent.ID() + 1
	}
	require.NoError(t, env.companyRepo.AddMonthlyRevenue(context.Background(), ent.CompanyID(), ent.RevenueContribution()))
}

// =====================================================================
// TestApproveEntitlement_*
// =====================================================================

func TestApproveEntitlement_PendingBecomesActive(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusPending, 30,
		entitlement.EntitledUser{UserID: 10, Email: "ada@acme.example"},
		entitlement.EntitledUser{UserID: 11, Email: "alan@acme.example"}))
	uc := NewApproveEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	result, err := uc.Execute(context.Background(), ApproveEntitlementCommand{
		EntitlementSID: "ent_1", ActorID: 7, ActorEmail: "admin@acme.example",
	})

	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusActive, result.Entitlement.Status())

	stored, err := env.entitlementRepo.GetBySID(context.Background(), "ent_1")
	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusActive, stored.Status())

	// Price 30 for two users starts counting on approval.
	assert.Equal(t, "60", env.companyRepo.revenue[1].String())
	acts, _ := env.activityRepo.ListByType(context.Background(), 1, activity.TypeServiceActivated, 0)
	assert.Len(t, acts, 1)
}

func TestApproveEntitlement_AlreadyActive(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusActive, 30))
	uc := NewApproveEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	_, err := uc.Execute(context.Background(), ApproveEntitlementCommand{EntitlementSID: "ent_1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransitionError(err))
	// Counter must not be double-counted.
	assert.Equal(t, "30", env.companyRepo.revenue[1].String())
}

func TestApproveEntitlement_NotFound(t *testing.T) {
	env := newLifecycleEnv(t)
	uc := NewApproveEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	_, err := uc.Execute(context.Background(), ApproveEntitlementCommand{EntitlementSID: "ent_ghost"})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestApproveEntitlement_AtomicityOnInjectedFailure(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusPending, 30))
	env.activityRepo.appendErr = errInjected
	uc := NewApproveEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	_, err := uc.Execute(context.Background(), ApproveEntitlementCommand{EntitlementSID: "ent_1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsProvisioningError(err))

	stored, getErr := env.entitlementRepo.GetBySID(context.Background(), "ent_1")
	require.NoError(t, getErr)
	assert.Equal(t, entitlement.StatusPending, stored.Status())
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
}

// =====================================================================
// TestRejectEntitlement_*
// =====================================================================

func TestRejectEntitlement_Pending(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusPending, 30))
	uc := NewRejectEntitlementUseCase(env.entitlementRepo, env.activityRepo, env.txMgr, nopLogger())

	result, err := uc.Execute(context.Background(), RejectEntitlementCommand{
		EntitlementSID: "ent_1", Reason: "budget freeze", ActorID: 7, ActorEmail: "admin@acme.example",
	})

	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusRejected, result.Entitlement.Status())
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
	acts, _ := env.activityRepo.ListByType(context.Background(), 1, activity.TypeServiceRejected, 0)
	assert.Len(t, acts, 1)
}

func TestRejectEntitlement_AlreadyActive(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusActive, 30))
	uc := NewRejectEntitlementUseCase(env.entitlementRepo, env.activityRepo, env.txMgr, nopLogger())

	_, err := uc.Execute(context.Background(), RejectEntitlementCommand{EntitlementSID: "ent_1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

// =====================================================================
// TestCancelEntitlement_*
// =====================================================================

func TestCancelEntitlement_ActiveSubtractsRevenue(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusActive, 30,
		entitlement.EntitledUser{UserID: 10, Email: "ada@acme.example"},
		entitlement.EntitledUser{UserID: 11, Email: "alan@acme.example"}))
	uc := NewCancelEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	err := uc.Execute(context.Background(), CancelEntitlementCommand{
		EntitlementSID: "ent_1", ActorID: 7, ActorEmail: "admin@acme.example",
	})

	require.NoError(t, err)
	assert.Empty(t, env.entitlementRepo.entitlements)
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
	acts, _ := env.activityRepo.ListByType(context.Background(), 1, activity.TypeServiceDeleted, 0)
	assert.Len(t, acts, 1)
}

func TestCancelEntitlement_PendingLeavesCounterAlone(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusPending, 30))
	uc := NewCancelEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	err := uc.Execute(context.Background(), CancelEntitlementCommand{EntitlementSID: "ent_1"})

	require.NoError(t, err)
	assert.Empty(t, env.entitlementRepo.entitlements)
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
}

func TestCancelEntitlement_NotFound(t *testing.T) {
	env := newLifecycleEnv(t)
	uc := NewCancelEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	err := uc.Execute(context.Background(), CancelEntitlementCommand{EntitlementSID: "ent_ghost"})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

// =====================================================================
// TestSuspendEntitlement_*
// =====================================================================

func TestSuspendEntitlement_RoundTrip(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusActive, 30,
		entitlement.EntitledUser{UserID: 10, Email: "ada@acme.example"},
		entitlement.EntitledUser{UserID: 11, Email: "alan@acme.example"}))
	uc := NewSuspendEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	suspended, err := uc.Suspend(context.Background(), SuspendEntitlementCommand{
		EntitlementSID: "ent_1", ActorID: 7, ActorEmail: "admin@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusSuspended, suspended.Status())
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())

	resumed, err := uc.Resume(context.Background(), ResumeEntitlementCommand{
		EntitlementSID: "ent_1", ActorID: 7, ActorEmail: "admin@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusActive, resumed.Status())
	assert.Equal(t, "60", env.companyRepo.revenue[1].String())

	sus, _ := env.activityRepo.ListByType(context.Background(), 1, activity.TypeServiceSuspended, 0)
	res, _ := env.activityRepo.ListByType(context.Background(), 1, activity.TypeServiceResumed, 0)
	assert.Len(t, sus, 1)
	assert.Len(t, res, 1)
}

func TestSuspendEntitlement_PendingCannotSuspend(t *testing.T) {
	env := newLifecycleEnv(t)
	env.seed(t, newTestEntitlement(t, 1, "ent_1", 1, entitlement.StatusPending, 30))
	uc := NewSuspendEntitlementUseCase(env.entitlementRepo, env.companyRepo, env.activityRepo, env.txMgr, nopLogger())

	_, err := uc.Suspend(context.Background(), SuspendEntitlementCommand{EntitlementSID: "ent_1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransitionError(err))
}
