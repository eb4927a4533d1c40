package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type SuspendEntitlementCommand struct {
	EntitlementSID string
	ActorID        uint
	ActorEmail     string
}

type ResumeEntitlementCommand struct {
	EntitlementSID string
	ActorID        uint
	ActorEmail     string
}

// SuspendEntitlementUseCase pauses and resumes billing on an
// entitlement. Suspension stops the revenue contribution without
// losing the record; resuming brings it back.
type SuspendEntitlementUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	activityRepo    activity.Repository
	txMgr           TransactionManager
	logger          logger.Interface
}

func NewSuspendEntitlementUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *SuspendEntitlementUseCase {
	return &SuspendEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		activityRepo:    activityRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *SuspendEntitlementUseCase) Suspend(ctx context.Context, cmd SuspendEntitlementCommand) (*entitlement.ServiceEntitlement, error) {
	ent, err := uc.getEntitlement(ctx, cmd.EntitlementSID)
	if err != nil {
		return nil, err
	}

	delta, err := ent.Suspend()
	if err != nil {
		return nil, apperrors.NewInvalidTransitionError("cannot suspend entitlement", err.Error())
	}

	if err := uc.applyTransition(ctx, ent, delta, activity.TypeServiceSuspended,
		fmt.Sprintf("service %s suspended", ent.Name()), cmd.ActorID, cmd.ActorEmail); err != nil {
		uc.logger.Errorw("failed to suspend entitlement", "entitlement_sid", cmd.EntitlementSID, "error", err)
		return nil, apperrors.NewProvisioningError("failed to suspend entitlement", err.Error())
	}

	uc.logger.Infow("entitlement suspended", "entitlement_sid", ent.SID(), "revenue_delta", delta)
	return ent, nil
}

func (uc *SuspendEntitlementUseCase) Resume(ctx context.Context, cmd ResumeEntitlementCommand) (*entitlement.ServiceEntitlement, error) {
	ent, err := uc.getEntitlement(ctx, cmd.EntitlementSID)
	if err != nil {
		return nil, err
	}

	delta, err := ent.Resume()
	if err != nil {
		return nil, apperrors.NewInvalidTransitionError("cannot resume entitlement", err.Error())
	}

	if err := uc.applyTransition(ctx, ent, delta, activity.TypeServiceResumed,
		fmt.Sprintf("service %s resumed", ent.Name()), cmd.ActorID, cmd.ActorEmail); err != nil {
		uc.logger.Errorw("failed to resume entitlement", "entitlement_sid", cmd.EntitlementSID, "error", err)
		return nil, apperrors.NewProvisioningError("failed to resume entitlement", err.Error())
	}

	uc.logger.Infow("entitlement resumed", "entitlement_sid", ent.SID(), "revenue_delta", delta)
	return ent, nil
}

func (uc *SuspendEntitlementUseCase) applyTransition(
	ctx context.Context,
	ent *entitlement.ServiceEntitlement,
	delta decimal.Decimal,
	typ activity.Type,
	description string,
	actorID uint,
	actorEmail string,
) error {
	return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.Update(txCtx, ent); err != nil {
			return fmt.Errorf("failed to update entitlement: %w", err)
		}
		if !delta.IsZero() {
			if err := uc.companyRepo.AddMonthlyRevenue(txCtx, ent.CompanyID(), delta); err != nil {
				return fmt.Errorf("failed to update revenue counter: %w", err)
			}
		}

		act, err := activity.NewActivity(
			typ,
			description,
			ent.CompanyID(),
			actorID,
			actorEmail,
			map[string]any{"entitlement_sid": ent.SID(), "revenue_delta": delta.StringFixed(2)},
		)
		if err != nil {
			return fmt.Errorf("failed to build activity: %w", err)
		}
		if err := uc.activityRepo.Append(txCtx, act); err != nil {
			return fmt.Errorf("failed to append activity: %w", err)
		}

		return nil
	})
}

func (uc *SuspendEntitlementUseCase) getEntitlement(ctx context.Context, sid string) (*entitlement.ServiceEntitlement, error) {
	ent, err := uc.entitlementRepo.GetBySID(ctx, sid)
	if err != nil {
		if errors.Is(err, entitlement.ErrEntitlementNotFound) {
			return nil, apperrors.NewNotFoundError("entitlement not found", sid)
		}
		uc.logger.Errorw("failed to get entitlement", "entitlement_sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return ent, nil
}
