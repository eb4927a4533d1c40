package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type GetOrderUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

func NewGetOrderUseCase(orderRepo order.Repository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, orderSID string) (*order.Order, error) {
	o, err := uc.orderRepo.GetBySID(ctx, orderSID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order not found", orderSID)
		}
		uc.logger.Errorw("failed to get order", "order_sid", orderSID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}
