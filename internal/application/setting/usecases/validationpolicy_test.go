package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type fakeSettingRepo struct {
	settings map[string]*setting.SystemSetting
	nextID   uint
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: make(map[string]*setting.SystemSetting), nextID: 1}
}

func (r *fakeSettingRepo) key(category, key string) string {
	return category + "/" + key
}

func (r *fakeSettingRepo) GetByKey(ctx context.Context, category, key string) (*setting.SystemSetting, error) {
	s, ok := r.settings[r.key(category, key)]
	if !ok {
		return nil, setting.ErrSettingNotFound
	}
	return s, nil
}

func (r *fakeSettingRepo) GetByCategory(ctx context.Context, category string) ([]*setting.SystemSetting, error) {
	var out []*setting.SystemSetting
	for _, s := range r.settings {
		if s.Category() == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSettingRepo) Upsert(ctx context.Context, s *setting.SystemSetting) error {
	if s.ID() == 0 {
		if err := s.SetID(r.nextID); err != nil {
			return err
		}
		r.nextID++
	}
	r.settings[r.key(s.Category(), s.Key())] = s
	return nil
}

type fakePolicyCache struct {
	invalidations int
	err           error
}

func (c *fakePolicyCache) Invalidate(ctx context.Context) error {
	if c.err != nil {
		return c.err
	}
	c.invalidations++
	return nil
}

func nopLogger() logger.Interface {
	return logger.NewNop()
}

// =====================================================================
// TestValidationPolicy_*
// =====================================================================

func TestGetValidationPolicy_Unconfigured(t *testing.T) {
	uc := NewGetValidationPolicyUseCase(newFakeSettingRepo(), nopLogger())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.False(t, result.Configured)
	assert.False(t, result.RequireValidation)
}

func TestSetValidationPolicy_CreatesThenReads(t *testing.T) {
	repo := newFakeSettingRepo()
	cache := &fakePolicyCache{}
	setUC := NewSetValidationPolicyUseCase(repo, cache, nopLogger())
	getUC := NewGetValidationPolicyUseCase(repo, nopLogger())

	result, err := setUC.Execute(context.Background(), SetValidationPolicyCommand{RequireValidation: true, ActorID: 7})
	require.NoError(t, err)
	assert.True(t, result.RequireValidation)
	assert.Equal(t, 1, cache.invalidations)

	read, err := getUC.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, read.Configured)
	assert.True(t, read.RequireValidation)
	assert.Equal(t, uint(7), read.UpdatedBy)
}

func TestSetValidationPolicy_TogglesExisting(t *testing.T) {
	repo := newFakeSettingRepo()
	cache := &fakePolicyCache{}
	uc := NewSetValidationPolicyUseCase(repo, cache, nopLogger())

	_, err := uc.Execute(context.Background(), SetValidationPolicyCommand{RequireValidation: true, ActorID: 7})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), SetValidationPolicyCommand{RequireValidation: false, ActorID: 8})
	require.NoError(t, err)

	stored, err := repo.GetByKey(context.Background(), setting.CategoryProvisioning, setting.KeyRequireValidation)
	require.NoError(t, err)
	v, err := stored.BoolValue()
	require.NoError(t, err)
	assert.False(t, v)
	assert.Equal(t, uint(8), stored.UpdatedBy())
	assert.Equal(t, 2, cache.invalidations)
}

func TestSetValidationPolicy_CacheFailureIsNotFatal(t *testing.T) {
	repo := newFakeSettingRepo()
	cache := &fakePolicyCache{err: context.DeadlineExceeded}
	uc := NewSetValidationPolicyUseCase(repo, cache, nopLogger())

	result, err := uc.Execute(context.Background(), SetValidationPolicyCommand{RequireValidation: true, ActorID: 7})

	require.NoError(t, err)
	assert.True(t, result.RequireValidation)
}
