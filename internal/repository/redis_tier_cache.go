package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/orosun/leadpay/internal/domain"
	"github.com/redis/go-redis/v9"
)

// CachedTierRepository is a read-through Redis cache in front of another TierRepository.
// Only resolved prices are cached; an unconfigured tier is looked up again on every call.
type CachedTierRepository struct {
	next   domain.TierRepository
	redis  redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedTierRepository(
	next domain.TierRepository,
	redis redis.UniversalClient,
	ttl time.Duration,
	logger *slog.Logger) *CachedTierRepository {

	return &CachedTierRepository{
		next:   next,
		redis:  redis,
		ttl:    ttl,
		logger: logger,
	}
}

func tierPriceKey(tier string) string {
	return "tier:price:" + tier
}

func (c *CachedTierRepository) GetPriceId(ctx context.Context, tier string) (string, error) {
	key := tierPriceKey(tier)

	priceId, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil && priceId != "":
		return priceId, nil
	case err != nil && !errors.Is(err, redis.Nil):
		// the store stays authoritative when the cache is unavailable
		c.logger.WarnContext(ctx, "failed to read tier price from cache", "tier", tier, "error", err)
	}

	priceId, err = c.next.GetPriceId(ctx, tier)
	if err != nil {
		return "", err
	}

	err = c.redis.Set(ctx, key, priceId, c.ttl).Err()
	if err != nil {
		c.logger.WarnContext(ctx, "failed to cache tier price", "tier", tier, "error", err)
	}

	return priceId, nil
}
