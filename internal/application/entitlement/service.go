package entitlement

import (
	"context"

	"github.com/cloudesk-io/cloudesk/internal/application/entitlement/usecases"
	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// Service is the entitlement application facade consumed by the HTTP layer.
type Service struct {
	addService              *usecases.AddServiceUseCase
	approveEntitlement      *usecases.ApproveEntitlementUseCase
	rejectEntitlement       *usecases.RejectEntitlementUseCase
	cancelEntitlement       *usecases.CancelEntitlementUseCase
	updatePrice             *usecases.UpdateEntitlementPriceUseCase
	manageUsers             *usecases.ManageEntitlementUsersUseCase
	suspendEntitlement      *usecases.SuspendEntitlementUseCase
	listCompanyEntitlements *usecases.ListCompanyEntitlementsUseCase
	listPendingEntitlements *usecases.ListPendingEntitlementsUseCase
}

func NewService(
	entitlementRepo entitlement.Repository,
	catalogRepo catalog.Repository,
	companyRepo company.Repository,
	activityRepo activity.Repository,
	policy setting.PolicyProvider,
	txMgr usecases.TransactionManager,
	notifier usecases.Notifier,
	logger logger.Interface,
) *Service {
	return &Service{
		addService:              usecases.NewAddServiceUseCase(entitlementRepo, catalogRepo, companyRepo, activityRepo, policy, txMgr, notifier, logger),
		approveEntitlement:      usecases.NewApproveEntitlementUseCase(entitlementRepo, companyRepo, activityRepo, txMgr, logger),
		rejectEntitlement:       usecases.NewRejectEntitlementUseCase(entitlementRepo, activityRepo, txMgr, logger),
		cancelEntitlement:       usecases.NewCancelEntitlementUseCase(entitlementRepo, companyRepo, activityRepo, txMgr, logger),
		updatePrice:             usecases.NewUpdateEntitlementPriceUseCase(entitlementRepo, companyRepo, txMgr, logger),
		manageUsers:             usecases.NewManageEntitlementUsersUseCase(entitlementRepo, companyRepo, activityRepo, txMgr, logger),
		suspendEntitlement:      usecases.NewSuspendEntitlementUseCase(entitlementRepo, companyRepo, activityRepo, txMgr, logger),
		listCompanyEntitlements: usecases.NewListCompanyEntitlementsUseCase(entitlementRepo, companyRepo, logger),
		listPendingEntitlements: usecases.NewListPendingEntitlementsUseCase(entitlementRepo, logger),
	}
}

func (s *Service) AddService(ctx context.Context, cmd usecases.AddServiceCommand) (*usecases.AddServiceResult, error) {
	return s.addService.Execute(ctx, cmd)
}

func (s *Service) ApproveEntitlement(ctx context.Context, cmd usecases.ApproveEntitlementCommand) (*usecases.ApproveEntitlementResult, error) {
	return s.approveEntitlement.Execute(ctx, cmd)
}

func (s *Service) RejectEntitlement(ctx context.Context, cmd usecases.RejectEntitlementCommand) (*usecases.RejectEntitlementResult, error) {
	return s.rejectEntitlement.Execute(ctx, cmd)
}

func (s *Service) CancelEntitlement(ctx context.Context, cmd usecases.CancelEntitlementCommand) error {
	return s.cancelEntitlement.Execute(ctx, cmd)
}

func (s *Service) UpdateEntitlementPrice(ctx context.Context, cmd usecases.UpdateEntitlementPriceCommand) (*usecases.UpdateEntitlementPriceResult, error) {
	return s.updatePrice.Execute(ctx, cmd)
}

func (s *Service) AddUser(ctx context.Context, cmd usecases.AddEntitlementUserCommand) (*entitlement.ServiceEntitlement, error) {
	return s.manageUsers.AddUser(ctx, cmd)
}

func (s *Service) RemoveUser(ctx context.Context, cmd usecases.RemoveEntitlementUserCommand) (*entitlement.ServiceEntitlement, error) {
	return s.manageUsers.RemoveUser(ctx, cmd)
}

func (s *Service) SuspendEntitlement(ctx context.Context, cmd usecases.SuspendEntitlementCommand) (*entitlement.ServiceEntitlement, error) {
	return s.suspendEntitlement.Suspend(ctx, cmd)
}

func (s *Service) ResumeEntitlement(ctx context.Context, cmd usecases.ResumeEntitlementCommand) (*entitlement.ServiceEntitlement, error) {
	return s.suspendEntitlement.Resume(ctx, cmd)
}

func (s *Service) ListCompanyEntitlements(ctx context.Context, cmd usecases.ListCompanyEntitlementsCommand) ([]*entitlement.ServiceEntitlement, error) {
	return s.listCompanyEntitlements.Execute(ctx, cmd)
}

func (s *Service) ListPendingEntitlements(ctx context.Context) ([]*entitlement.ServiceEntitlement, error) {
	return s.listPendingEntitlements.Execute(ctx)
}
