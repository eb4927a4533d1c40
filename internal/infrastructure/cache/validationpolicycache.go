package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// ValidationPolicyCache caches the provisioning validation flag so the
// self-service add path does not hit the settings table on every call.
type ValidationPolicyCache interface {
	// Get returns the cached flag. The second result reports a cache hit.
	Get(ctx context.Context) (bool, bool, error)
	// Set stores the flag
	Set(ctx context.Context, required bool) error
	// Invalidate drops the cached flag
	Invalidate(ctx context.Context) error
}

const (
	policyKey = "setting:provisioning:require_validation"
	policyTTL = 5 * time.Minute
)

// RedisValidationPolicyCache implements ValidationPolicyCache using Redis
type RedisValidationPolicyCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisValidationPolicyCache creates a new Redis-based policy cache
func NewRedisValidationPolicyCache(client *redis.Client, logger logger.Interface) *RedisValidationPolicyCache {
	return &RedisValidationPolicyCache{
		client: client,
		logger: logger,
	}
}

// Get retrieves the cached flag
func (c *RedisValidationPolicyCache) Get(ctx context.Context) (bool, bool, error) {
	result, err := c.client.Get(ctx, policyKey).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to get policy from cache: %w", err)
	}
	return result == "1", true, nil
}

// Set stores the flag
func (c *RedisValidationPolicyCache) Set(ctx context.Context, required bool) error {
	value := "0"
	if required {
		value = "1"
	}
	if err := c.client.Set(ctx, policyKey, value, policyTTL).Err(); err != nil {
		return fmt.Errorf("failed to set policy in cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached flag
func (c *RedisValidationPolicyCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, policyKey).Err(); err != nil {
		c.logger.Warnw("failed to invalidate policy cache", "error", err)
		return fmt.Errorf("failed to invalidate policy cache: %w", err)
	}
	return nil
}

// NoopValidationPolicyCache is used when Redis is disabled. Every read
// is a miss, so callers always fall through to the settings table.
type NoopValidationPolicyCache struct{}

// NewNoopValidationPolicyCache creates a no-op policy cache
func NewNoopValidationPolicyCache() *NoopValidationPolicyCache {
	return &NoopValidationPolicyCache{}
}

func (c *NoopValidationPolicyCache) Get(ctx context.Context) (bool, bool, error) {
	return false, false, nil
}

func (c *NoopValidationPolicyCache) Set(ctx context.Context, required bool) error {
	return nil
}

func (c *NoopValidationPolicyCache) Invalidate(ctx context.Context) error {
	return nil
}
