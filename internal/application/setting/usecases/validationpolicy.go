package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// PolicyCache is the slice of the cache layer the setting use cases
// need: dropping the cached gate value after a write.
type PolicyCache interface {
	Invalidate(ctx context.Context) error
}

type ValidationPolicyResult struct {
	// Configured is false when the gate has never been set; the
	// effective policy is then "no validation required".
	Configured        bool
	RequireValidation bool
	UpdatedBy         uint
}

type SetValidationPolicyCommand struct {
	RequireValidation bool
	ActorID           uint
}

// GetValidationPolicyUseCase reads the validation policy gate straight
// from the settings store, bypassing the cache so admins see the
// authoritative value.
type GetValidationPolicyUseCase struct {
	settingRepo setting.Repository
	logger      logger.Interface
}

func NewGetValidationPolicyUseCase(settingRepo setting.Repository, logger logger.Interface) *GetValidationPolicyUseCase {
	return &GetValidationPolicyUseCase{settingRepo: settingRepo, logger: logger}
}

func (uc *GetValidationPolicyUseCase) Execute(ctx context.Context) (*ValidationPolicyResult, error) {
	s, err := uc.settingRepo.GetByKey(ctx, setting.CategoryProvisioning, setting.KeyRequireValidation)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return &ValidationPolicyResult{Configured: false, RequireValidation: false}, nil
		}
		uc.logger.Errorw("failed to read validation policy", "error", err)
		return nil, fmt.Errorf("failed to read validation policy: %w", err)
	}

	require, err := s.BoolValue()
	if err != nil {
		uc.logger.Errorw("validation policy holds a non-boolean value", "value", s.Value(), "error", err)
		return nil, fmt.Errorf("invalid validation policy value: %w", err)
	}

	return &ValidationPolicyResult{
		Configured:        true,
		RequireValidation: require,
		UpdatedBy:         s.UpdatedBy(),
	}, nil
}

// SetValidationPolicyUseCase toggles the validation policy gate. The
// change is non-retroactive: existing pending entitlements stay pending
// and must be reviewed. The cache is invalidated after the write so the
// next read sees the new value.
type SetValidationPolicyUseCase struct {
	settingRepo setting.Repository
	cache       PolicyCache
	logger      logger.Interface
}

func NewSetValidationPolicyUseCase(settingRepo setting.Repository, cache PolicyCache, logger logger.Interface) *SetValidationPolicyUseCase {
	return &SetValidationPolicyUseCase{settingRepo: settingRepo, cache: cache, logger: logger}
}

func (uc *SetValidationPolicyUseCase) Execute(ctx context.Context, cmd SetValidationPolicyCommand) (*ValidationPolicyResult, error) {
	s, err := uc.settingRepo.GetByKey(ctx, setting.CategoryProvisioning, setting.KeyRequireValidation)
	if err != nil {
		if !errors.Is(err, setting.ErrSettingNotFound) {
			uc.logger.Errorw("failed to read validation policy", "error", err)
			return nil, fmt.Errorf("failed to read validation policy: %w", err)
		}
		s, err = setting.NewSystemSetting(
			setting.CategoryProvisioning,
			setting.KeyRequireValidation,
			setting.ValueTypeBool,
			"whether self-service-added services need admin validation",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build validation policy setting: %w", err)
		}
	}

	if err := s.SetBoolValue(cmd.RequireValidation, cmd.ActorID); err != nil {
		return nil, fmt.Errorf("failed to set validation policy value: %w", err)
	}

	if err := uc.settingRepo.Upsert(ctx, s); err != nil {
		uc.logger.Errorw("failed to persist validation policy", "error", err)
		return nil, fmt.Errorf("failed to persist validation policy: %w", err)
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate policy cache, stale reads possible until TTL", "error", err)
	}

	uc.logger.Infow("validation policy updated",
		"require_validation", cmd.RequireValidation,
		"updated_by", cmd.ActorID)

	return &ValidationPolicyResult{
		Configured:        true,
		RequireValidation: cmd.RequireValidation,
		UpdatedBy:         cmd.ActorID,
	}, nil
}
