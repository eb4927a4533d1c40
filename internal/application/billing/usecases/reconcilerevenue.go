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

type ReconcileCompanyRevenueCommand struct {
	CompanySID string
	// Repair overwrites the cached counter with the recomputed value
	// when they disagree.
	Repair bool
}

type ReconcileCompanyRevenueResult struct {
	CompanySID string
	Cached     decimal.Decimal
	Computed   decimal.Decimal
	Drift      decimal.Decimal
	Repaired   bool
}

// ReconcileCompanyRevenueUseCase compares the materialized revenue
// counter against a recompute over active entitlements and optionally
// repairs the counter. The recompute is the source of truth.
type ReconcileCompanyRevenueUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	logger          logger.Interface
}

func NewReconcileCompanyRevenueUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *ReconcileCompanyRevenueUseCase {
	return &ReconcileCompanyRevenueUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		logger:          logger,
	}
}

func (uc *ReconcileCompanyRevenueUseCase) Execute(ctx context.Context, cmd ReconcileCompanyRevenueCommand) (*ReconcileCompanyRevenueResult, error) {
	comp, err := uc.companyRepo.GetBySID(ctx, cmd.CompanySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", cmd.CompanySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	active, err := uc.entitlementRepo.ListActiveByCompany(ctx, comp.ID())
	if err != nil {
		uc.logger.Errorw("failed to list active entitlements", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to list active entitlements: %w", err)
	}

	computed := decimal.Zero
	for _, ent := range active {
		computed = computed.Add(ent.MonthlyRevenue())
	}

	cached := comp.MonthlyRevenue()
	drift := computed.Sub(cached)

	result := &ReconcileCompanyRevenueResult{
		CompanySID: comp.SID(),
		Cached:     cached,
		Computed:   computed,
		Drift:      drift,
	}

	if drift.IsZero() {
		return result, nil
	}

	uc.logger.Warnw("revenue counter drift detected",
		"company_sid", comp.SID(),
		"cached", cached,
		"computed", computed,
		"drift", drift)

	if cmd.Repair {
		if err := uc.companyRepo.SetMonthlyRevenue(ctx, comp.ID(), computed); err != nil {
			uc.logger.Errorw("failed to repair revenue counter", "company_sid", comp.SID(), "error", err)
			return nil, fmt.Errorf("failed to repair revenue counter: %w", err)
		}
		result.Repaired = true
		uc.logger.Infow("revenue counter repaired", "company_sid", comp.SID(), "value", computed)
	}

	return result, nil
}
