package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type CancelEntitlementCommand struct {
	EntitlementSID string
	ActorID        uint
	ActorEmail     string
}

// CancelEntitlementUseCase removes an entitlement. An active record's
// revenue contribution is subtracted in the same transaction so the
// counter stays consistent with the remaining active set.
type CancelEntitlementUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	activityRepo    activity.Repository
	txMgr           TransactionManager
	logger          logger.Interface
}

func NewCancelEntitlementUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *CancelEntitlementUseCase {
	return &CancelEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		activityRepo:    activityRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *CancelEntitlementUseCase) Execute(ctx context.Context, cmd CancelEntitlementCommand) error {
	ent, err := uc.entitlementRepo.GetBySID(ctx, cmd.EntitlementSID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return apperrors.NewNotFoundError("entitlement not found", cmd.EntitlementSID)
		}
		uc.logger.Errorw("failed to get entitlement", "entitlement_sid", cmd.EntitlementSID, "error", err)
		return fmt.Errorf("failed to get entitlement: %w", err)
	}

	// Zero unless the record is currently billable.
	contribution := ent.RevenueContribution()

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.Delete(txCtx, ent.ID()); err != nil {
			return fmt.Errorf("failed to delete entitlement: %w", err)
		}
		if !contribution.IsZero() {
			if err := uc.companyRepo.AddMonthlyRevenue(txCtx, ent.CompanyID(), contribution.Neg()); err != nil {
				return fmt.Errorf("failed to update revenue counter: %w", err)
			}
		}

		act, err := activity.NewActivity(
			activity.TypeServiceDeleted,
			fmt.Sprintf("service %s removed", ent.Name()),
			ent.CompanyID(),
			cmd.ActorID,
			cmd.ActorEmail,
			map[string]any{"entitlement_sid": ent.SID(), "service_sid": ent.ServiceSID()},
		)
		if err != nil {
			return fmt.Errorf("failed to build activity: %w", err)
		}
		if err := uc.activityRepo.Append(txCtx, act); err != nil {
			return fmt.Errorf("failed to append activity: %w", err)
		}

		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("cancellation failed", "entitlement_sid", cmd.EntitlementSID, "error", txErr)
		return apperrors.NewProvisioningError("failed to cancel entitlement", txErr.Error())
	}

	uc.logger.Infow("entitlement cancelled",
		"entitlement_sid", ent.SID(),
		"company_id", ent.CompanyID(),
		"revenue_removed", contribution)

	return nil
}
