package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type RejectOrderCommand struct {
	OrderSID   string
	Reason     string
	ActorID    uint
	ActorEmail string
}

type RejectOrderResult struct {
	Order *order.Order
}

// RejectOrderUseCase moves a pending order to rejected. Nothing is
// provisioned and the revenue counter never moves.
type RejectOrderUseCase struct {
	orderRepo    order.Repository
	activityRepo activity.Repository
	txMgr        TransactionManager
	notifier     Notifier
	logger       logger.Interface
}

func NewRejectOrderUseCase(
	orderRepo order.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *RejectOrderUseCase {
	return &RejectOrderUseCase{
		orderRepo:    orderRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *RejectOrderUseCase) Execute(ctx context.Context, cmd RejectOrderCommand) (*RejectOrderResult, error) {
	o, err := uc.orderRepo.GetBySID(ctx, cmd.OrderSID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order not found", cmd.OrderSID)
		}
		uc.logger.Errorw("failed to get order", "order_sid", cmd.OrderSID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := o.Reject(); err != nil {
		return nil, apperrors.NewInvalidTransitionError("order cannot be rejected", err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.TransitionFromPending(txCtx, o); err != nil {
			return err
		}

		metadata := map[string]any{"order_sid": o.SID()}
		if cmd.Reason != "" {
			metadata["reason"] = cmd.Reason
		}
		act, err := activity.NewActivity(
			activity.TypeOrderRejected,
			fmt.Sprintf("order %s rejected", o.SID()),
			o.Customer().CompanyID,
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
		if errors.Is(txErr, order.ErrAlreadyProcessed) {
			return nil, apperrors.NewInvalidTransitionError("order already processed", cmd.OrderSID)
		}
		if errors.Is(txErr, order.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order not found", cmd.OrderSID)
		}
		uc.logger.Errorw("order rejection failed", "order_sid", cmd.OrderSID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("order rejected", "order_sid", o.SID(), "company_id", o.Customer().CompanyID)

	if err := uc.notifier.SendOrderRejectedEmail(o.Customer().RequestedByEmail, o.SID()); err != nil {
		uc.logger.Warnw("failed to send rejection email", "order_sid", o.SID(), "error", err)
	}

	return &RejectOrderResult{Order: o}, nil
}
