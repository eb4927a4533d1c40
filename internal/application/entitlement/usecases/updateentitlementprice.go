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

type UpdateEntitlementPriceCommand struct {
	EntitlementSID string
	MonthlyPrice   decimal.Decimal
	ActorID        uint
	ActorEmail     string
}

type UpdateEntitlementPriceResult struct {
	Entitlement  *entitlement.ServiceEntitlement
	RevenueDelta decimal.Decimal
}

// UpdateEntitlementPriceUseCase applies an admin price override. For an
// active record the revenue delta lands in the same transaction.
type UpdateEntitlementPriceUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	txMgr           TransactionManager
	logger          logger.Interface
}

func NewUpdateEntitlementPriceUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *UpdateEntitlementPriceUseCase {
	return &UpdateEntitlementPriceUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *UpdateEntitlementPriceUseCase) Execute(ctx context.Context, cmd UpdateEntitlementPriceCommand) (*UpdateEntitlementPriceResult, error) {
	ent, err := uc.entitlementRepo.GetBySID(ctx, cmd.EntitlementSID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return nil, apperrors.NewNotFoundError("entitlement not found", cmd.EntitlementSID)
		}
		uc.logger.Errorw("failed to get entitlement", "entitlement_sid", cmd.EntitlementSID, "error", err)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	delta, err := ent.UpdateMonthlyPrice(cmd.MonthlyPrice)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid price", err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.Update(txCtx, ent); err != nil {
			return fmt.Errorf("failed to update entitlement: %w", err)
		}
		if !delta.IsZero() {
			if err := uc.companyRepo.AddMonthlyRevenue(txCtx, ent.CompanyID(), delta); err != nil {
				return fmt.Errorf("failed to update revenue counter: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("price update failed", "entitlement_sid", cmd.EntitlementSID, "error", txErr)
		return nil, apperrors.NewProvisioningError("failed to update price", txErr.Error())
	}

	uc.logger.Infow("entitlement price updated",
		"entitlement_sid", ent.SID(),
		"monthly_price", cmd.MonthlyPrice,
		"revenue_delta", delta)

	return &UpdateEntitlementPriceResult{Entitlement: ent, RevenueDelta: delta}, nil
}
