package billing

import (
	"context"

	"github.com/cloudesk-io/cloudesk/internal/application/billing/usecases"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// Service is the billing application facade consumed by the HTTP layer.
type Service struct {
	companyRevenue      *usecases.CompanyMonthlyRevenueUseCase
	reconcileRevenue    *usecases.ReconcileCompanyRevenueUseCase
	perUserServiceCount *usecases.PerUserServiceCountUseCase
	invoiceInputs       *usecases.InvoiceInputsUseCase
}

func NewService(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *Service {
	return &Service{
		companyRevenue:      usecases.NewCompanyMonthlyRevenueUseCase(entitlementRepo, companyRepo, logger),
		reconcileRevenue:    usecases.NewReconcileCompanyRevenueUseCase(entitlementRepo, companyRepo, logger),
		perUserServiceCount: usecases.NewPerUserServiceCountUseCase(entitlementRepo, companyRepo, logger),
		invoiceInputs:       usecases.NewInvoiceInputsUseCase(entitlementRepo, companyRepo, logger),
	}
}

func (s *Service) CompanyMonthlyRevenue(ctx context.Context, companySID string) (*usecases.CompanyMonthlyRevenueResult, error) {
	return s.companyRevenue.Execute(ctx, companySID)
}

func (s *Service) ReconcileCompanyRevenue(ctx context.Context, cmd usecases.ReconcileCompanyRevenueCommand) (*usecases.ReconcileCompanyRevenueResult, error) {
	return s.reconcileRevenue.Execute(ctx, cmd)
}

func (s *Service) PerUserServiceCount(ctx context.Context, cmd usecases.PerUserServiceCountCommand) (*usecases.PerUserServiceCountResult, error) {
	return s.perUserServiceCount.Execute(ctx, cmd)
}

func (s *Service) InvoiceInputs(ctx context.Context, companySID string) (*usecases.InvoiceInputsResult, error) {
	return s.invoiceInputs.Execute(ctx, companySID)
}
