package usecases

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

func newTestService(t *testing.T, dbID uint, sid, name string, price float64, category catalog.Category) *catalog.ServiceOffering {
	t.Helper()
	now := time.Now().UTC()
	svc, err := catalog.ReconstructServiceOffering(dbID, sid, name, "", decimal.NewFromFloat(price), category, true, now, now)
	require.NoError(t, err)
	return svc
}

func newTestCompany(t *testing.T, dbID uint, sid string) *company.Company {
	t.Helper()
	now := time.Now().UTC()
	c, err := company.ReconstructCompany(dbID, sid, "Acme SARL", "FR123456789", "1 rue de la Paix, Paris", "bank-transfer", "EUR", decimal.Zero, 1, now, now)
	require.NoError(t, err)
	return c
}

func newTestEntitlement(t *testing.T, dbID uint, sid string, companyID uint, status entitlement.Status, price float64, users ...entitlement.EntitledUser) *entitlement.ServiceEntitlement {
	t.Helper()
	if len(users) == 0 {
		users = []entitlement.EntitledUser{{UserID: 10, Email: "ada@acme.example"}}
	}
	now := time.Now().UTC()
	ent, err := entitlement.ReconstructServiceEntitlement(
		dbID, sid, companyID, 1, "svc_std", "Standard Desk", catalog.CategoryRemoteDesktop,
		status, users, decimal.NewFromFloat(price), pricing.DurationNone,
		now, nil, 1, now, now,
	)
	require.NoError(t, err)
	return ent
}

func nopLogger() logger.Interface {
	return logger.NewNop()
}
