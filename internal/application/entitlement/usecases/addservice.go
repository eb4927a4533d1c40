package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type AddServiceCommand struct {
	CompanySID string
	ServiceSID string
	UserID     uint
	UserEmail  string
	ActorID    uint
	ActorEmail string
}

type AddServiceResult struct {
	Entitlement *entitlement.ServiceEntitlement
}

// AddServiceUseCase is the self-service direct-add path: one user, one
// service, no commitment, full catalog price. The validation policy
// gate decides whether the entitlement starts pending or active.
type AddServiceUseCase struct {
	entitlementRepo entitlement.Repository
	catalogRepo     catalog.Repository
	companyRepo     company.Repository
	activityRepo    activity.Repository
	policy          setting.PolicyProvider
	txMgr           TransactionManager
	notifier        Notifier
	logger          logger.Interface
}

func NewAddServiceUseCase(
	entitlementRepo entitlement.Repository,
	catalogRepo catalog.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	policy setting.PolicyProvider,
	txMgr TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *AddServiceUseCase {
	return &AddServiceUseCase{
		entitlementRepo: entitlementRepo,
		catalogRepo:     catalogRepo,
		companyRepo:     companyRepo,
		activityRepo:    activityRepo,
		policy:          policy,
		txMgr:           txMgr,
		notifier:        notifier,
		logger:          logger,
	}
}

func (uc *AddServiceUseCase) Execute(ctx context.Context, cmd AddServiceCommand) (*AddServiceResult, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewValidationError("user is required")
	}

	comp, err := uc.companyRepo.GetBySID(ctx, cmd.CompanySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", cmd.CompanySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	svc, err := uc.catalogRepo.GetBySID(ctx, cmd.ServiceSID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, apperrors.NewNotFoundError("service not found", cmd.ServiceSID)
		}
		uc.logger.Errorw("failed to get service", "service_sid", cmd.ServiceSID, "error", err)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if !svc.Active() {
		return nil, apperrors.NewValidationError("service is not available", svc.Name())
	}

	// Fail safe: an unreadable gate means validation is required.
	requireValidation, err := uc.policy.RequireValidation(ctx)
	if err != nil {
		uc.logger.Warnw("validation policy unreadable, defaulting to required",
			"service_sid", cmd.ServiceSID,
			"error", err)
		requireValidation = true
	}

	initialStatus := entitlement.StatusActive
	if requireValidation {
		initialStatus = entitlement.StatusPending
	}

	ent, err := entitlement.NewServiceEntitlement(
		comp.ID(),
		svc.ID(),
		svc.SID(),
		svc.Name(),
		svc.Category(),
		[]entitlement.EntitledUser{{UserID: cmd.UserID, Email: cmd.UserEmail}},
		svc.BasePrice(),
		pricing.DurationNone,
		biztime.NowUTC(),
		initialStatus,
	)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid service request", err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.Create(txCtx, ent); err != nil {
			return fmt.Errorf("failed to create entitlement: %w", err)
		}

		if ent.Status() == entitlement.StatusActive {
			if err := uc.companyRepo.AddMonthlyRevenue(txCtx, comp.ID(), ent.MonthlyRevenue()); err != nil {
				return fmt.Errorf("failed to update revenue counter: %w", err)
			}

			act, err := activity.NewActivity(
				activity.TypeServiceActivated,
				fmt.Sprintf("service %s activated for user %d", ent.Name(), cmd.UserID),
				comp.ID(),
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
		}

		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to add service",
			"company_sid", cmd.CompanySID,
			"service_sid", cmd.ServiceSID,
			"error", txErr)
		return nil, apperrors.NewProvisioningError("failed to add service", txErr.Error())
	}

	uc.logger.Infow("service added",
		"entitlement_sid", ent.SID(),
		"company_sid", comp.SID(),
		"status", ent.Status().String())

	if ent.Status() == entitlement.StatusPending {
		if err := uc.notifier.SendServicePendingEmail(cmd.UserEmail, ent.Name()); err != nil {
			uc.logger.Warnw("failed to send pending notification",
				"entitlement_sid", ent.SID(),
				"error", err)
		}
	}

	return &AddServiceResult{Entitlement: ent}, nil
}
