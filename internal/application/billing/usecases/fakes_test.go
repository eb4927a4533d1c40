package usecases

import (
	"context"
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

// The billing use cases only read entitlements and touch the company
// revenue counter, so the fakes stay small.

type fakeEntitlementRepo struct {
	entitlements []*entitlement.ServiceEntitlement
}

func (r *fakeEntitlementRepo) Create(ctx context.Context, e *entitlement.ServiceEntitlement) error {
	r.entitlements = append(r.entitlements, e)
	return nil
}

func (r *fakeEntitlementRepo) Update(ctx context.Context, e *entitlement.ServiceEntitlement) error {
	return nil
}

func (r *fakeEntitlementRepo) Delete(ctx context.Context, id uint) error {
	return nil
}

func (r *fakeEntitlementRepo) GetByID(ctx context.Context, id uint) (*entitlement.ServiceEntitlement, error) {
	for _, e := range r.entitlements {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, entitlement.ErrEntitlementNotFound
}

func (r *fakeEntitlementRepo) GetBySID(ctx context.Context, sid string) (*entitlement.ServiceEntitlement, error) {
	for _, e := range r.entitlements {
		if e.SID() == sid {
			return e, nil
		}
	}
	return nil, entitlement.ErrEntitlementNotFound
}

func (r *fakeEntitlementRepo) ListByCompany(ctx context.Context, companyID uint) ([]*entitlement.ServiceEntitlement, error) {
	var out []*entitlement.ServiceEntitlement
	for _, e := range r.entitlements {
		if e.CompanyID() == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntitlementRepo) ListActiveByCompany(ctx context.Context, companyID uint) ([]*entitlement.ServiceEntitlement, error) {
	var out []*entitlement.ServiceEntitlement
	for _, e := range r.entitlements {
		if e.CompanyID() == companyID && e.Status() == entitlement.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntitlementRepo) ListPending(ctx context.Context) ([]*entitlement.ServiceEntitlement, error) {
	var out []*entitlement.ServiceEntitlement
	for _, e := range r.entitlements {
		if e.Status() == entitlement.StatusPending {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntitlementRepo) ListByUser(ctx context.Context, userID uint) ([]*entitlement.ServiceEntitlement, error) {
	var out []*entitlement.ServiceEntitlement
	for _, e := range r.entitlements {
		if e.Covers(userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[string]*company.Company
	revenue   map[uint]decimal.Decimal
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies: make(map[string]*company.Company),
		revenue:   make(map[uint]decimal.Decimal),
	}
}

func (r *fakeCompanyRepo) add(c *company.Company) {
	r.companies[c.SID()] = c
	r.revenue[c.ID()] = c.MonthlyRevenue()
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c *company.Company) error {
	r.add(c)
	return nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c *company.Company) error {
	r.companies[c.SID()] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	for _, c := range r.companies {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, company.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) GetBySID(ctx context.Context, sid string) (*company.Company, error) {
	c, ok := r.companies[sid]
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) AddMonthlyRevenue(ctx context.Context, companyID uint, delta decimal.Decimal) error {
	current, ok := r.revenue[companyID]
	if !ok {
		return company.ErrCompanyNotFound
	}
	r.revenue[companyID] = current.Add(delta)
	return nil
}

func (r *fakeCompanyRepo) SetMonthlyRevenue(ctx context.Context, companyID uint, value decimal.Decimal) error {
	if _, ok := r.revenue[companyID]; !ok {
		return company.ErrCompanyNotFound
	}
	r.revenue[companyID] = value
	return nil
}

// --- helpers ---

// newTestCompany builds a company whose cached counter starts at the
// given value.
func newTestCompany(t *testing.T, dbID uint, sid string, cachedRevenue float64) *company.Company {
	t.Helper()
	now := time.Now().UTC()
	c, err := company.ReconstructCompany(dbID, sid, "Acme SARL", "FR123456789", "1 rue de la Paix, Paris",
		"bank-transfer", "EUR", decimal.NewFromFloat(cachedRevenue), 1, now, now)
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
