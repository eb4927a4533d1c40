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

type ApproveEntitlementCommand struct {
	EntitlementSID string
	ActorID        uint
	ActorEmail     string
}

type ApproveEntitlementResult struct {
	Entitlement *entitlement.ServiceEntitlement
}

// ApproveEntitlementUseCase activates a pending entitlement and applies
// its revenue contribution in the same transaction.
type ApproveEntitlementUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	activityRepo    activity.Repository
	txMgr           TransactionManager
	logger          logger.Interface
}

func NewApproveEntitlementUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *ApproveEntitlementUseCase {
	return &ApproveEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		activityRepo:    activityRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *ApproveEntitlementUseCase) Execute(ctx context.Context, cmd ApproveEntitlementCommand) (*ApproveEntitlementResult, error) {
	ent, err := uc.entitlementRepo.GetBySID(ctx, cmd.EntitlementSID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return nil, apperrors.NewNotFoundError("entitlement not found", cmd.EntitlementSID)
		}
		uc.logger.Errorw("failed to get entitlement", "entitlement_sid", cmd.EntitlementSID, "error", err)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	delta, err := ent.Activate()
	if err != nil {
		return nil, apperrors.NewInvalidTransitionError("entitlement cannot be approved", err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.Update(txCtx, ent); err != nil {
			return fmt.Errorf("failed to update entitlement: %w", err)
		}
		if err := uc.companyRepo.AddMonthlyRevenue(txCtx, ent.CompanyID(), delta); err != nil {
			return fmt.Errorf("failed to update revenue counter: %w", err)
		}

		act, err := activity.NewActivity(
			activity.TypeServiceActivated,
			fmt.Sprintf("service %s approved and activated", ent.Name()),
			ent.CompanyID(),
			cmd.ActorID,
			cmd.ActorEmail,
			map[string]any{"entitlement_sid": ent.SID(), "revenue_delta": delta.String()},
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
		uc.logger.Errorw("approval failed", "entitlement_sid", cmd.EntitlementSID, "error", txErr)
		return nil, apperrors.NewProvisioningError("failed to approve entitlement", txErr.Error())
	}

	uc.logger.Infow("entitlement approved",
		"entitlement_sid", ent.SID(),
		"company_id", ent.CompanyID(),
		"revenue_delta", delta)

	return &ApproveEntitlementResult{Entitlement: ent}, nil
}
