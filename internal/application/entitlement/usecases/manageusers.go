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

type AddEntitlementUserCommand struct {
	EntitlementSID string
	UserID         uint
	UserEmail      string
	ActorID        uint
	ActorEmail     string
}

type RemoveEntitlementUserCommand struct {
	EntitlementSID string
	UserID         uint
	ActorID        uint
	ActorEmail     string
}

// ManageEntitlementUsersUseCase grows or shrinks an entitlement's
// covered user set. On an active record each change moves the revenue
// counter by the per-user monthly price, in the same transaction.
type ManageEntitlementUsersUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	activityRepo    activity.Repository
	txMgr           TransactionManager
	logger          logger.Interface
}

func NewManageEntitlementUsersUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *ManageEntitlementUsersUseCase {
	return &ManageEntitlementUsersUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		activityRepo:    activityRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *ManageEntitlementUsersUseCase) AddUser(ctx context.Context, cmd AddEntitlementUserCommand) (*entitlement.ServiceEntitlement, error) {
	ent, err := uc.getEntitlement(ctx, cmd.EntitlementSID)
	if err != nil {
		return nil, err
	}

	delta, err := ent.AddUser(entitlement.EntitledUser{UserID: cmd.UserID, Email: cmd.UserEmail})
	if err != nil {
		if errors.Is(err, entitlement.ErrUserAlreadyCovered) {
			return nil, apperrors.NewConflictError("user already covered", cmd.UserEmail)
		}
		return nil, apperrors.NewValidationError("cannot add user", err.Error())
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

		act, err := activity.NewActivity(
			activity.TypeUserAdded,
			fmt.Sprintf("user %d added to service %s", cmd.UserID, ent.Name()),
			ent.CompanyID(),
			cmd.ActorID,
			cmd.ActorEmail,
			map[string]any{"entitlement_sid": ent.SID(), "user_id": cmd.UserID},
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
		uc.logger.Errorw("failed to add user", "entitlement_sid", cmd.EntitlementSID, "user_id", cmd.UserID, "error", txErr)
		return nil, apperrors.NewProvisioningError("failed to add user", txErr.Error())
	}

	uc.logger.Infow("user added to entitlement",
		"entitlement_sid", ent.SID(),
		"user_id", cmd.UserID,
		"revenue_delta", delta)

	return ent, nil
}

func (uc *ManageEntitlementUsersUseCase) RemoveUser(ctx context.Context, cmd RemoveEntitlementUserCommand) (*entitlement.ServiceEntitlement, error) {
	ent, err := uc.getEntitlement(ctx, cmd.EntitlementSID)
	if err != nil {
		return nil, err
	}

	delta, err := ent.RemoveUser(cmd.UserID)
	if err != nil {
		switch {
		case errors.Is(err, entitlement.ErrUserNotCovered):
			return nil, apperrors.NewNotFoundError("user not covered", fmt.Sprintf("user %d", cmd.UserID))
		case errors.Is(err, entitlement.ErrLastUser):
			return nil, apperrors.NewValidationError("cannot remove the last covered user; cancel the service instead")
		default:
			return nil, apperrors.NewValidationError("cannot remove user", err.Error())
		}
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

		act, err := activity.NewActivity(
			activity.TypeUserRemoved,
			fmt.Sprintf("user %d removed from service %s", cmd.UserID, ent.Name()),
			ent.CompanyID(),
			cmd.ActorID,
			cmd.ActorEmail,
			map[string]any{"entitlement_sid": ent.SID(), "user_id": cmd.UserID},
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
		uc.logger.Errorw("failed to remove user", "entitlement_sid", cmd.EntitlementSID, "user_id", cmd.UserID, "error", txErr)
		return nil, apperrors.NewProvisioningError("failed to remove user", txErr.Error())
	}

	uc.logger.Infow("user removed from entitlement",
		"entitlement_sid", ent.SID(),
		"user_id", cmd.UserID,
		"revenue_delta", delta)

	return ent, nil
}

func (uc *ManageEntitlementUsersUseCase) getEntitlement(ctx context.Context, sid string) (*entitlement.ServiceEntitlement, error) {
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
