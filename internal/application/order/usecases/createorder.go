package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// ServiceSelection is one requested service line. Duration is a
// pointer: nil means the buyer never chose a commitment, which is
// rejected; an explicit 0 means no commitment at full price.
type ServiceSelection struct {
	ServiceSID     string
	DurationMonths *int
}

// OrderUserInput identifies one user to cover, as forwarded by the
// authenticated caller.
type OrderUserInput struct {
	UserID    uint
	FirstName string
	LastName  string
	Email     string
}

type CreateOrderCommand struct {
	CompanySID    string
	Selections    []ServiceSelection
	Users         []OrderUserInput
	PaymentMethod string
	Currency      string
	ActorID       uint
	ActorEmail    string
}

type CreateOrderResult struct {
	Order *order.Order
}

type CreateOrderUseCase struct {
	orderRepo    order.Repository
	catalogRepo  catalog.Repository
	companyRepo  company.Repository
	activityRepo activity.Repository
	txMgr        TransactionManager
	logger       logger.Interface
}

func NewCreateOrderUseCase(
	orderRepo order.Repository,
	catalogRepo catalog.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:    orderRepo,
		catalogRepo:  catalogRepo,
		companyRepo:  companyRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

// Execute builds a fully priced pending order from the caller's
// selections. The cart applies the exclusivity rule before pricing, so
// conflicting remote desktop selections replace one another instead of
// stacking.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	if len(cmd.Selections) == 0 {
		return nil, apperrors.NewValidationError("at least one service is required")
	}
	if len(cmd.Users) == 0 {
		return nil, apperrors.NewValidationError("at least one user is required")
	}

	comp, err := uc.companyRepo.GetBySID(ctx, cmd.CompanySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", cmd.CompanySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	cart := order.NewCart()
	for _, sel := range cmd.Selections {
		svc, err := uc.catalogRepo.GetBySID(ctx, sel.ServiceSID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				return nil, apperrors.NewNotFoundError("service not found", sel.ServiceSID)
			}
			uc.logger.Errorw("failed to get service", "service_sid", sel.ServiceSID, "error", err)
			return nil, fmt.Errorf("failed to get service: %w", err)
		}

		if sel.DurationMonths == nil {
			return nil, apperrors.NewValidationError("commitment duration is required", svc.Name())
		}

		if err := cart.Add(svc, pricing.CommitmentDuration(*sel.DurationMonths)); err != nil {
			return nil, apperrors.NewValidationError("invalid service selection", err.Error())
		}
	}

	users := make([]order.OrderUser, 0, len(cmd.Users))
	for _, u := range cmd.Users {
		users = append(users, order.OrderUser{
			UserID:    u.UserID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}

	customer := order.CustomerSnapshot{
		CompanyID:        comp.ID(),
		CompanySID:       comp.SID(),
		CompanyName:      comp.Name(),
		VATNumber:        comp.VATNumber(),
		Address:          comp.Address(),
		RequestedByID:    cmd.ActorID,
		RequestedByEmail: cmd.ActorEmail,
	}

	currency := cmd.Currency
	if currency == "" {
		currency = comp.Currency()
	}

	o, err := order.NewOrder(customer, cart.Selections(), users, order.PaymentMethod(cmd.PaymentMethod), currency)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid order", err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		act, err := activity.NewActivity(
			activity.TypeOrderCreated,
			fmt.Sprintf("order %s created with %d services for %d users", o.SID(), len(o.Services()), len(o.Users())),
			comp.ID(),
			cmd.ActorID,
			cmd.ActorEmail,
			map[string]any{
				"order_sid":    o.SID(),
				"total_amount": o.Billing().TotalAmount.String(),
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
		uc.logger.Errorw("order creation failed", "company_sid", cmd.CompanySID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("order created",
		"order_sid", o.SID(),
		"company_sid", comp.SID(),
		"monthly_base_total", o.Billing().MonthlyBaseTotal,
		"total_amount", o.Billing().TotalAmount)

	return &CreateOrderResult{Order: o}, nil
}
