package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// SettingPolicyProvider implements setting.PolicyProvider on top of the
// settings repository with a cache in front. A missing setting means
// the gate was never configured and validation is not required; a
// failed read surfaces ErrPolicyUnavailable so callers can fail safe.
type SettingPolicyProvider struct {
	repo   setting.Repository
	cache  ValidationPolicyCache
	logger logger.Interface
}

// NewSettingPolicyProvider creates a new policy provider
func NewSettingPolicyProvider(repo setting.Repository, cache ValidationPolicyCache, logger logger.Interface) *SettingPolicyProvider {
	return &SettingPolicyProvider{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// RequireValidation reports whether self-service-added entitlements
// must start pending
func (p *SettingPolicyProvider) RequireValidation(ctx context.Context) (bool, error) {
	if required, found, err := p.cache.Get(ctx); err == nil && found {
		return required, nil
	} else if err != nil {
		p.logger.Warnw("policy cache read failed, falling back to database", "error", err)
	}

	s, err := p.repo.GetByKey(ctx, setting.CategoryProvisioning, setting.KeyRequireValidation)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", setting.ErrPolicyUnavailable, err)
	}

	required, err := s.BoolValue()
	if err != nil {
		return false, fmt.Errorf("%w: %w", setting.ErrPolicyUnavailable, err)
	}

	if cacheErr := p.cache.Set(ctx, required); cacheErr != nil {
		p.logger.Warnw("failed to populate policy cache", "error", cacheErr)
	}

	return required, nil
}
