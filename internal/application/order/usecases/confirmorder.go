package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type ConfirmOrderCommand struct {
	OrderSID   string
	ActorID    uint
	ActorEmail string
}

type ConfirmOrderResult struct {
	Order        *order.Order
	Entitlements []*entitlement.ServiceEntitlement
}

// ConfirmOrderUseCase runs the provisioning transaction: the order
// flips to confirmed, one active entitlement appears per service line,
// the company revenue counter absorbs the order's monthly total, and
// the audit trail records the activation. All writes commit together
// or not at all.
type ConfirmOrderUseCase struct {
	orderRepo       order.Repository
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	activityRepo    activity.Repository
	txMgr           TransactionManager
	notifier        Notifier
	logger          logger.Interface
}

func NewConfirmOrderUseCase(
	orderRepo order.Repository,
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ConfirmOrderUseCase {
	return &ConfirmOrderUseCase{
		orderRepo:       orderRepo,
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		activityRepo:    activityRepo,
		txMgr:           txMgr,
		notifier:        notifier,
		logger:          logger,
	}
}

func (uc *ConfirmOrderUseCase) Execute(ctx context.Context, cmd ConfirmOrderCommand) (*ConfirmOrderResult, error) {
	o, err := uc.orderRepo.GetBySID(ctx, cmd.OrderSID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order not found", cmd.OrderSID)
		}
		uc.logger.Errorw("failed to get order", "order_sid", cmd.OrderSID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := o.Confirm(); err != nil {
		return nil, apperrors.NewInvalidTransitionError("order cannot be confirmed", err.Error())
	}

	entitledUsers := make([]entitlement.EntitledUser, 0, len(o.Users()))
	for _, u := range o.Users() {
		entitledUsers = append(entitledUsers, entitlement.EntitledUser{
			UserID: u.UserID,
			Email:  u.Email,
		})
	}

	var created []*entitlement.ServiceEntitlement

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		// The status guard re-checks pending inside the transaction, so
		// a concurrent confirmation or rejection makes this the only
		// failing statement and nothing below ever runs twice.
		if err := uc.orderRepo.TransitionFromPending(txCtx, o); err != nil {
			return err
		}

		startDate := biztime.NowUTC()
		for _, line := range o.Services() {
			ent, err := entitlement.NewServiceEntitlement(
				o.Customer().CompanyID,
				line.ServiceID,
				line.ServiceSID,
				line.Name,
				line.Category,
				entitledUsers,
				line.DiscountedPrice,
				line.Duration,
				startDate,
				entitlement.StatusActive,
			)
			if err != nil {
				return fmt.Errorf("failed to build entitlement for %s: %w", line.Name, err)
			}
			if err := uc.entitlementRepo.Create(txCtx, ent); err != nil {
				return fmt.Errorf("failed to create entitlement for %s: %w", line.Name, err)
			}
			created = append(created, ent)
		}

		// The counter mirrors the active-entitlement sum, so the delta
		// is the monthly revenue of exactly what was just provisioned.
		revenueDelta := decimal.Zero
		for _, ent := range created {
			revenueDelta = revenueDelta.Add(ent.MonthlyRevenue())
		}
		if err := uc.companyRepo.AddMonthlyRevenue(txCtx, o.Customer().CompanyID, revenueDelta); err != nil {
			return fmt.Errorf("failed to update revenue counter: %w", err)
		}

		act, err := activity.NewActivity(
			activity.TypeServiceActivated,
			fmt.Sprintf("order %s confirmed, %d services activated", o.SID(), len(created)),
			o.Customer().CompanyID,
			cmd.ActorID,
			cmd.ActorEmail,
			map[string]any{
				"order_sid":     o.SID(),
				"revenue_delta": revenueDelta.String(),
			},
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
		uc.logger.Errorw("provisioning transaction failed",
			"order_sid", cmd.OrderSID,
			"error", txErr)
		return nil, apperrors.NewProvisioningError("failed to provision order", txErr.Error())
	}

	uc.logger.Infow("order confirmed",
		"order_sid", o.SID(),
		"company_id", o.Customer().CompanyID,
		"entitlements", len(created))

	// Best effort: a failed email never affects the committed state.
	if err := uc.notifier.SendOrderConfirmedEmail(
		o.Customer().RequestedByEmail,
		o.SID(),
		o.Billing().EffectiveMonthlyPrice.String(),
		o.Billing().TotalAmount.String(),
		o.Billing().Currency,
	); err != nil {
		uc.logger.Warnw("failed to send confirmation email",
			"order_sid", o.SID(),
			"error", err)
	}

	return &ConfirmOrderResult{Order: o, Entitlements: created}, nil
}
