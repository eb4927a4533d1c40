package setting

import (
	"context"

	"github.com/cloudesk-io/cloudesk/internal/application/setting/usecases"
	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// Service is the settings application facade consumed by the HTTP layer.
type Service struct {
	getPolicy *usecases.GetValidationPolicyUseCase
	setPolicy *usecases.SetValidationPolicyUseCase
}

func NewService(settingRepo setting.Repository, cache usecases.PolicyCache, logger logger.Interface) *Service {
	return &Service{
		getPolicy: usecases.NewGetValidationPolicyUseCase(settingRepo, logger),
		setPolicy: usecases.NewSetValidationPolicyUseCase(settingRepo, cache, logger),
	}
}

func (s *Service) GetValidationPolicy(ctx context.Context) (*usecases.ValidationPolicyResult, error) {
	return s.getPolicy.Execute(ctx)
}

func (s *Service) SetValidationPolicy(ctx context.Context, cmd usecases.SetValidationPolicyCommand) (*usecases.ValidationPolicyResult, error) {
	return s.setPolicy.Execute(ctx, cmd)
}
