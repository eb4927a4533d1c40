package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
)

// snapshotter lets the fake transaction manager roll a repository back
// to its pre-transaction state when the write set fails.
type snapshotter interface {
	snapshot() any
	restore(any)
}

// fakeTxManager mimics all-or-nothing semantics over in-memory repos.
type fakeTxManager struct {
	repos []snapshotter
}

func newFakeTxManager(repos ...snapshotter) *fakeTxManager {
	return &fakeTxManager{repos: repos}
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshots := make([]any, len(m.repos))
	for i, r := range m.repos {
		snapshots[i] = r.snapshot()
	}
	if err := fn(ctx); err != nil {
		for i, r := range m.repos {
			r.restore(snapshots[i])
		}
		return err
	}
	return nil
}

// --- entitlement repo ---

type fakeEntitlementRepo struct {
	nextID       uint
	entitlements []*entitlement.ServiceEntitlement
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{nextID: 1}
}

func (r *fakeEntitlementRepo) Create(ctx context.Context, e *entitlement.ServiceEntitlement) error {
	if err := e.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.entitlements = append(r.entitlements, e)
	return nil
}

func (r *fakeEntitlementRepo) Update(ctx context.Context, e *entitlement.ServiceEntitlement) error {
	for i, existing := range r.entitlements {
		if existing.ID() == e.ID() {
			r.entitlements[i] = e
			return nil
		}
	}
	return entitlement.ErrEntitlementNotFound
}

func (r *fakeEntitlementRepo) Delete(ctx context.Context, id uint) error {
	for i, e := range r.entitlements {
		if e.ID() == id {
			r.entitlements = append(r.entitlements[:i], r.entitlements[i+1:]...)
			return nil
		}
	}
	return entitlement.ErrEntitlementNotFound
}

// reload mimics a database read: the caller gets its own copy, so
// aggregate mutations only persist through Update.
func (r *fakeEntitlementRepo) reload(e *entitlement.ServiceEntitlement) (*entitlement.ServiceEntitlement, error) {
	return entitlement.ReconstructServiceEntitlement(
		e.ID(), e.SID(), e.CompanyID(), e.ServiceID(), e.ServiceSID(),
		e.Name(), e.Category(), e.Status(), e.Users(),
		e.MonthlyPrice(), e.Duration(), e.StartDate(), e.EndDate(),
		e.Version(), e.CreatedAt(), e.UpdatedAt(),
	)
}

func (r *fakeEntitlementRepo) GetByID(ctx context.Context, id uint) (*entitlement.ServiceEntitlement, error) {
	for _, e := range r.entitlements {
		if e.ID() == id {
			return r.reload(e)
		}
	}
	return nil, entitlement.ErrEntitlementNotFound
}

func (r *fakeEntitlementRepo) GetBySID(ctx context.Context, sid string) (*entitlement.ServiceEntitlement, error) {
	for _, e := range r.entitlements {
		if e.SID() == sid {
			return r.reload(e)
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

func (r *fakeEntitlementRepo) snapshot() any {
	out := make([]*entitlement.ServiceEntitlement, len(r.entitlements))
	copy(out, r.entitlements)
	return []any{out, r.nextID}
}

func (r *fakeEntitlementRepo) restore(s any) {
	parts := s.([]any)
	r.entitlements = parts[0].([]*entitlement.ServiceEntitlement)
	r.nextID = parts[1].(uint)
}

// --- company repo ---

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
	if _, ok := r.companies[c.SID()]; !ok {
		return company.ErrCompanyNotFound
	}
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

func (r *fakeCompanyRepo) snapshot() any {
	revenue := make(map[uint]decimal.Decimal, len(r.revenue))
	for k, v := range r.revenue {
		revenue[k] = v
	}
	return revenue
}

func (r *fakeCompanyRepo) restore(s any) {
	r.revenue = s.(map[uint]decimal.Decimal)
}

// --- activity repo ---

type fakeActivityRepo struct {
	nextID     uint
	activities []*activity.Activity
	appendErr  error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{nextID: 1}
}

func (r *fakeActivityRepo) Append(ctx context.Context, a *activity.Activity) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	if err := a.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.activities = append(r.activities, a)
	return nil
}

func (r *fakeActivityRepo) ListByCompany(ctx context.Context, companyID uint, limit int) ([]*activity.Activity, error) {
	var out []*activity.Activity
	for _, a := range r.activities {
		if a.CompanyID() == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) ListByType(ctx context.Context, companyID uint, typ activity.Type, limit int) ([]*activity.Activity, error) {
	var out []*activity.Activity
	for _, a := range r.activities {
		if a.CompanyID() == companyID && a.Type() == typ {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) snapshot() any {
	out := make([]*activity.Activity, len(r.activities))
	copy(out, r.activities)
	return []any{out, r.nextID}
}

func (r *fakeActivityRepo) restore(s any) {
	parts := s.([]any)
	r.activities = parts[0].([]*activity.Activity)
	r.nextID = parts[1].(uint)
}

// --- catalog repo ---

type fakeCatalogRepo struct {
	services map[string]*catalog.ServiceOffering
}

func newFakeCatalogRepo(services ...*catalog.ServiceOffering) *fakeCatalogRepo {
	r := &fakeCatalogRepo{services: make(map[string]*catalog.ServiceOffering)}
	for _, s := range services {
		r.services[s.SID()] = s
	}
	return r
}

func (r *fakeCatalogRepo) Create(ctx context.Context, s *catalog.ServiceOffering) error {
	r.services[s.SID()] = s
	return nil
}

func (r *fakeCatalogRepo) Update(ctx context.Context, s *catalog.ServiceOffering) error {
	r.services[s.SID()] = s
	return nil
}

func (r *fakeCatalogRepo) GetByID(ctx context.Context, id uint) (*catalog.ServiceOffering, error) {
	for _, s := range r.services {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, catalog.ErrServiceNotFound
}

func (r *fakeCatalogRepo) GetBySID(ctx context.Context, sid string) (*catalog.ServiceOffering, error) {
	s, ok := r.services[sid]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return s, nil
}

func (r *fakeCatalogRepo) ListActive(ctx context.Context) ([]*catalog.ServiceOffering, error) {
	var out []*catalog.ServiceOffering
	for _, s := range r.services {
		if s.Active() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) ListByCategory(ctx context.Context, category catalog.Category) ([]*catalog.ServiceOffering, error) {
	var out []*catalog.ServiceOffering
	for _, s := range r.services {
		if s.Active() && s.Category() == category {
			out = append(out, s)
		}
	}
	return out, nil
}

// --- policy provider ---

type fakePolicyProvider struct {
	require bool
	err     error
}

func (p *fakePolicyProvider) RequireValidation(ctx context.Context) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return p.require, nil
}

// --- notifier ---

type fakeNotifier struct {
	pending []string
	sendErr error
}

func (n *fakeNotifier) SendServicePendingEmail(to, serviceName string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.pending = append(n.pending, serviceName)
	return nil
}

var errInjected = fmt.Errorf("injected failure")
