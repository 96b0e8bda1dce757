package adapters

import (
	"context"

	"forexscan/internal/domain"
)

// RateFetcher retrieves one realtime quote for a currency pair.
type RateFetcher interface {
	FetchRate(ctx context.Context, pair domain.CurrencyPair) (domain.ExchangeRate, error)
}

// RateCache is a short-lived per-pair quote cache used by the serve mode to
// stay inside the provider's request quota.
type RateCache interface {
	Get(pair domain.CurrencyPair) (domain.ExchangeRate, bool)
	Set(pair domain.CurrencyPair, rate domain.ExchangeRate)
}
