package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateCache stores derived exchange rates with a TTL. Cache failures are
// deliberately non-fatal: a miss just forces a provider lookup, and the
// valuation pass falls back to default rates when that fails too.
type RateCache struct {
	cache  *Cache
	logger *zap.Logger
}

// NewRateCache creates a rate cache on top of the shared redis cache
func NewRateCache(cache *Cache, logger *zap.Logger) *RateCache {
	return &RateCache{
		cache:  cache,
		logger: logger,
	}
}

// GetRate returns the cached rate for a currency pair like "EURUSD"
func (r *RateCache) GetRate(ctx context.Context, pair string) (decimal.Decimal, bool) {
	val, err := r.cache.Get(ctx, "rate:"+pair)
	if err != nil {
		r.logger.Warn("Rate cache read failed", zap.Error(err), zap.String("pair", pair))
		return decimal.Zero, false
	}
	if val == "" {
		return decimal.Zero, false
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		r.logger.Warn("Discarding malformed cached rate",
			zap.String("pair", pair), zap.String("value", val))
		return decimal.Zero, false
	}

	return rate, true
}

// SetRate caches the rate for a currency pair
func (r *RateCache) SetRate(ctx context.Context, pair string, rate decimal.Decimal, ttl time.Duration) {
	if err := r.cache.Set(ctx, "rate:"+pair, rate.String(), ttl); err != nil {
		r.logger.Warn("Rate cache write failed", zap.Error(err), zap.String("pair", pair))
	}
}
