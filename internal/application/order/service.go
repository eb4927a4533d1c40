package order

import (
	"context"

	"github.com/cloudesk-io/cloudesk/internal/application/order/usecases"
	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// Service is the order application facade consumed by the HTTP layer.
type Service struct {
	createOrder       *usecases.CreateOrderUseCase
	confirmOrder      *usecases.ConfirmOrderUseCase
	rejectOrder       *usecases.RejectOrderUseCase
	getOrder          *usecases.GetOrderUseCase
	listCompanyOrders *usecases.ListCompanyOrdersUseCase
}

func NewService(
	orderRepo order.Repository,
	catalogRepo catalog.Repository,
	companyRepo company.Repository,
	entitlementRepo entitlement.Repository,
	activityRepo activity.Repository,
	txMgr usecases.TransactionManager,
	notifier usecases.Notifier,
	logger logger.Interface,
) *Service {
	return &Service{
		createOrder:       usecases.NewCreateOrderUseCase(orderRepo, catalogRepo, companyRepo, activityRepo, txMgr, logger),
		confirmOrder:      usecases.NewConfirmOrderUseCase(orderRepo, entitlementRepo, companyRepo, activityRepo, txMgr, notifier, logger),
		rejectOrder:       usecases.NewRejectOrderUseCase(orderRepo, activityRepo, txMgr, notifier, logger),
		getOrder:          usecases.NewGetOrderUseCase(orderRepo, logger),
		listCompanyOrders: usecases.NewListCompanyOrdersUseCase(orderRepo, companyRepo, logger),
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd usecases.CreateOrderCommand) (*usecases.CreateOrderResult, error) {
	return s.createOrder.Execute(ctx, cmd)
}

func (s *Service) ConfirmOrder(ctx context.Context, cmd usecases.ConfirmOrderCommand) (*usecases.ConfirmOrderResult, error) {
	return s.confirmOrder.Execute(ctx, cmd)
}

func (s *Service) RejectOrder(ctx context.Context, cmd usecases.RejectOrderCommand) (*usecases.RejectOrderResult, error) {
	return s.rejectOrder.Execute(ctx, cmd)
}

func (s *Service) GetOrder(ctx context.Context, orderSID string) (*order.Order, error) {
	return s.getOrder.Execute(ctx, orderSID)
}

func (s *Service) ListCompanyOrders(ctx context.Context, companySID string) ([]*order.Order, error) {
	return s.listCompanyOrders.Execute(ctx, companySID)
}
