package cache

import (
	"fmt"
	"time"

	"forexscan/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateCache keeps recently fetched quotes for a short TTL so that
// repeated serve-mode requests do not burn through the provider's daily
// request quota.
type RistrettoRateCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewRateCache(maxItems int64, ttl time.Duration) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoRateCache) Get(pair domain.CurrencyPair) (domain.ExchangeRate, bool) {
	if v, ok := c.cache.Get(toKey(pair)); ok {
		rate, ok := v.(domain.ExchangeRate)
		return rate, ok
	}
	return domain.ExchangeRate{}, false
}

func (c *RistrettoRateCache) Set(pair domain.CurrencyPair, rate domain.ExchangeRate) {
	c.cache.SetWithTTL(toKey(pair), rate, 1, c.ttl)
	// Wait until the buffered write is applied so a Get right after Set
	// observes the value.
	c.cache.Wait()
}

func (c *RistrettoRateCache) Clean(pairs []domain.CurrencyPair) {
	for _, pair := range pairs {
		c.cache.Del(toKey(pair))
	}
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }

func toKey(p domain.CurrencyPair) string { return p.Base + ":" + p.Quote }
