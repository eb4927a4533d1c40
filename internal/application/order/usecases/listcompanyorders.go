package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type ListCompanyOrdersUseCase struct {
	orderRepo   order.Repository
	companyRepo company.Repository
	logger      logger.Interface
}

func NewListCompanyOrdersUseCase(
	orderRepo order.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *ListCompanyOrdersUseCase {
	return &ListCompanyOrdersUseCase{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (uc *ListCompanyOrdersUseCase) Execute(ctx context.Context, companySID string) ([]*order.Order, error) {
	comp, err := uc.companyRepo.GetBySID(ctx, companySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", companySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", companySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	orders, err := uc.orderRepo.ListByCompany(ctx, comp.ID())
	if err != nil {
		uc.logger.Errorw("failed to list orders", "company_sid", companySID, "error", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
