package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type RejectEntitlementCommand struct {
	EntitlementSID string
	Reason         string
	ActorID        uint
	ActorEmail     string
}

type RejectEntitlementResult struct {
	Entitlement *entitlement.ServiceEntitlement
}

// RejectEntitlementUseCase declines a pending entitlement. It never
// contributed revenue, so the counter is untouched.
type RejectEntitlementUseCase struct {
	entitlementRepo entitlement.Repository
	activityRepo    activity.Repository
	txMgr           TransactionManager
	logger          logger.Interface
}

func NewRejectEntitlementUseCase(
	entitlementRepo entitlement.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *RejectEntitlementUseCase {
	return &RejectEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		activityRepo:    activityRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *RejectEntitlementUseCase) Execute(ctx context.Context, cmd RejectEntitlementCommand) (*RejectEntitlementResult, error) {
	ent, err := uc.entitlementRepo.GetBySID(ctx, cmd.EntitlementSID)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return nil, apperrors.NewNotFoundError("entitlement not found", cmd.EntitlementSID)
		}
		uc.logger.Errorw("failed to get entitlement", "entitlement_sid", cmd.EntitlementSID, "error", err)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	if err := ent.Reject(); err != nil {
		return nil, apperrors.NewInvalidTransitionError("entitlement cannot be rejected", err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.Update(txCtx, ent); err != nil {
			return fmt.Errorf("failed to update entitlement: %w", err)
		}

		metadata := map[string]any{"entitlement_sid": ent.SID()}
		if cmd.Reason != "" {
			metadata["reason"] = cmd.Reason
		}
		act, err := activity.NewActivity(
			activity.TypeServiceRejected,
			fmt.Sprintf("service %s rejected", ent.Name()),
			ent.CompanyID(),
			cmd.ActorID,
			cmd.ActorEmail,
			metadata,
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
		uc.logger.Errorw("rejection failed", "entitlement_sid", cmd.EntitlementSID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("entitlement rejected", "entitlement_sid", ent.SID())

	return &RejectEntitlementResult{Entitlement: ent}, nil
}
