package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
)

type addServiceEnv struct {
	entitlementRepo *fakeEntitlementRepo
	companyRepo     *fakeCompanyRepo
	activityRepo    *fakeActivityRepo
	policy          *fakePolicyProvider
	notifier        *fakeNotifier
	uc              *AddServiceUseCase
}

func newAddServiceEnv(t *testing.T) *addServiceEnv {
	t.Helper()
	env := &addServiceEnv{
		entitlementRepo: newFakeEntitlementRepo(),
		companyRepo:     newFakeCompanyRepo(),
		activityRepo:    newFakeActivityRepo(),
		policy:          &fakePolicyProvider{},
		notifier:        &fakeNotifier{},
	}
	env.companyRepo.add(newTestCompany(t, 1, "cmp_acme"))

	svc := newTestService(t, 1, "svc_std", "Standard Desk", 25, catalog.CategoryRemoteDesktop)
	retired := newTestService(t, 2, "svc_old", "Legacy Suite", 40, catalog.CategoryProductivitySuite)
	retired.Deactivate()
	catalogRepo := newFakeCatalogRepo(svc, retired)

	txMgr := newFakeTxManager(env.entitlementRepo, env.companyRepo, env.activityRepo)
	env.uc = NewAddServiceUseCase(env.entitlementRepo, catalogRepo, env.companyRepo,
		env.activityRepo, env.policy, txMgr, env.notifier, nopLogger())
	return env
}

func addCmd() AddServiceCommand {
	return AddServiceCommand{
		CompanySID: "cmp_acme",
		ServiceSID: "svc_std",
		UserID:     10,
		UserEmail:  "ada@acme.example",
		ActorID:    10,
		ActorEmail: "ada@acme.example",
	}
}

// =====================================================================
// TestAddService_*
// =====================================================================

func TestAddService_GateOffActivatesImmediately(t *testing.T) {
	env := newAddServiceEnv(t)
	env.policy.require = false

	result, err := env.uc.Execute(context.Background(), addCmd())

	require.NoError(t, err)
	ent := result.Entitlement
	assert.Equal(t, entitlement.StatusActive, ent.Status())
	assert.Equal(t, "25", ent.MonthlyPrice().String())
	assert.Len(t, ent.Users(), 1)

	// An active add moves the revenue counter and leaves a trace.
	assert.Equal(t, "25", env.companyRepo.revenue[1].String())
	acts, _ := env.activityRepo.ListByType(context.Background(), 1, activity.TypeServiceActivated, 0)
	assert.Len(t, acts, 1)
	assert.Empty(t, env.notifier.pending)
}

func TestAddService_GateOnStartsPending(t *testing.T) {
	env := newAddServiceEnv(t)
	env.policy.require = true

	result, err := env.uc.Execute(context.Background(), addCmd())

	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusPending, result.Entitlement.Status())

	// Pending records contribute nothing until approved.
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
	assert.Empty(t, env.activityRepo.activities)
	assert.Equal(t, []string{"Standard Desk"}, env.notifier.pending)
}

func TestAddService_UnreadablePolicyFailsSafe(t *testing.T) {
	env := newAddServiceEnv(t)
	env.policy.err = fmt.Errorf("%w: redis down", setting.ErrPolicyUnavailable)

	result, err := env.uc.Execute(context.Background(), addCmd())

	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusPending, result.Entitlement.Status())
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
}

func TestAddService_InactiveService(t *testing.T) {
	env := newAddServiceEnv(t)
	cmd := addCmd()
	cmd.ServiceSID = "svc_old"

	_, err := env.uc.Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, env.entitlementRepo.entitlements)
}

func TestAddService_UnknownService(t *testing.T) {
	env := newAddServiceEnv(t)
	cmd := addCmd()
	cmd.ServiceSID = "svc_nope"

	_, err := env.uc.Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestAddService_UnknownCompany(t *testing.T) {
	env := newAddServiceEnv(t)
	cmd := addCmd()
	cmd.CompanySID = "cmp_ghost"

	_, err := env.uc.Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestAddService_MissingUser(t *testing.T) {
	env := newAddServiceEnv(t)
	cmd := addCmd()
	cmd.UserID = 0

	_, err := env.uc.Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestAddService_AtomicityOnInjectedFailure(t *testing.T) {
	env := newAddServiceEnv(t)
	env.policy.require = false
	env.activityRepo.appendErr = errInjected

	_, err := env.uc.Execute(context.Background(), addCmd())

	require.Error(t, err)
	assert.True(t, apperrors.IsProvisioningError(err))

	// Nothing sticks: no entitlement, no revenue movement.
	assert.Empty(t, env.entitlementRepo.entitlements)
	assert.Equal(t, "0", env.companyRepo.revenue[1].String())
}

func TestAddService_EmailFailureDoesNotFail(t *testing.T) {
	env := newAddServiceEnv(t)
	env.policy.require = true
	env.notifier.sendErr = errInjected

	result, err := env.uc.Execute(context.Background(), addCmd())

	require.NoError(t, err)
	assert.Equal(t, entitlement.StatusPending, result.Entitlement.Status())
	assert.Len(t, env.entitlementRepo.entitlements, 1)
}
