package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type ListCompanyEntitlementsCommand struct {
	CompanySID string
	ActiveOnly bool
}

// ListCompanyEntitlementsUseCase lists a company's service entitlements,
// optionally restricted to active ones.
type ListCompanyEntitlementsUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	logger          logger.Interface
}

func NewListCompanyEntitlementsUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *ListCompanyEntitlementsUseCase {
	return &ListCompanyEntitlementsUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		logger:          logger,
	}
}

func (uc *ListCompanyEntitlementsUseCase) Execute(ctx context.Context, cmd ListCompanyEntitlementsCommand) ([]*entitlement.ServiceEntitlement, error) {
	comp, err := uc.companyRepo.GetBySID(ctx, cmd.CompanySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", cmd.CompanySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	var ents []*entitlement.ServiceEntitlement
	if cmd.ActiveOnly {
		ents, err = uc.entitlementRepo.ListActiveByCompany(ctx, comp.ID())
	} else {
		ents, err = uc.entitlementRepo.ListByCompany(ctx, comp.ID())
	}
	if err != nil {
		uc.logger.Errorw("failed to list entitlements", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	return ents, nil
}

// ListPendingEntitlementsUseCase lists entitlements awaiting manual
// validation, across all companies.
type ListPendingEntitlementsUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

func NewListPendingEntitlementsUseCase(entitlementRepo entitlement.Repository, logger logger.Interface) *ListPendingEntitlementsUseCase {
	return &ListPendingEntitlementsUseCase{entitlementRepo: entitlementRepo, logger: logger}
}

func (uc *ListPendingEntitlementsUseCase) Execute(ctx context.Context) ([]*entitlement.ServiceEntitlement, error) {
	ents, err := uc.entitlementRepo.ListPending(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list pending entitlements", "error", err)
		return nil, fmt.Errorf("failed to list pending entitlements: %w", err)
	}
	return ents, nil
}
