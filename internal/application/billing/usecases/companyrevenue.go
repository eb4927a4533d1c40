package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type CompanyMonthlyRevenueResult struct {
	CompanySID     string
	Currency       string
	MonthlyRevenue decimal.Decimal
	Entitlements   int
}

// CompanyMonthlyRevenueUseCase recomputes a company's monthly revenue
// from its active entitlements, independent of the cached counter.
type CompanyMonthlyRevenueUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	logger          logger.Interface
}

func NewCompanyMonthlyRevenueUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *CompanyMonthlyRevenueUseCase {
	return &CompanyMonthlyRevenueUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		logger:          logger,
	}
}

func (uc *CompanyMonthlyRevenueUseCase) Execute(ctx context.Context, companySID string) (*CompanyMonthlyRevenueResult, error) {
	comp, err := uc.companyRepo.GetBySID(ctx, companySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", companySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", companySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	active, err := uc.entitlementRepo.ListActiveByCompany(ctx, comp.ID())
	if err != nil {
		uc.logger.Errorw("failed to list active entitlements", "company_sid", companySID, "error", err)
		return nil, fmt.Errorf("failed to list active entitlements: %w", err)
	}

	total := decimal.Zero
	for _, ent := range active {
		total = total.Add(ent.MonthlyRevenue())
	}

	return &CompanyMonthlyRevenueResult{
		CompanySID:     comp.SID(),
		Currency:       comp.Currency(),
		MonthlyRevenue: total,
		Entitlements:   len(active),
	}, nil
}
