package scan

import (
	"context"
	"time"

	"forexscan/internal/adapters"
	"forexscan/internal/domain"
)

const minRetryDelay = 500 * time.Millisecond

type Options struct {
	APIKey     string
	Retries    int
	RetryDelay time.Duration
}

// Scanner fetches a batch of pairs one at a time, retrying each pair up to
// the configured budget with a fixed delay between attempts. The first pair
// that exhausts its budget aborts the whole batch: later pairs are never
// attempted and no partial result set is returned.
type Scanner struct {
	fetcher adapters.RateFetcher
	opts    Options
	sleep   func(time.Duration) // swapped out in tests
}

func (s *Scanner) Run(ctx context.Context, pairs []domain.CurrencyPair) ([]domain.ExchangeRate, error) {
	if s.opts.APIKey == "" {
		return nil, &domain.ScanError{
			Kind:   domain.ErrMissingAPIKey,
			Detail: "set the ALPHAVANTAGE_API_KEY environment variable or pass --api-key",
		}
	}

	retries := s.opts.Retries
	if retries < 0 {
		retries = 0
	}
	delay := s.opts.RetryDelay
	if delay < minRetryDelay {
		delay = minRetryDelay
	}

	results := make([]domain.ExchangeRate, 0, len(pairs))
	for _, pair := range pairs {
		attempt := 0
		for {
			rate, err := s.fetcher.FetchRate(ctx, pair)
			if err == nil {
				results = append(results, rate)
				break
			}
			attempt++
			if attempt > retries {
				return nil, err
			}
			s.sleep(delay)
		}
	}
	return results, nil
}

func NewScanner(fetcher adapters.RateFetcher, opts Options) *Scanner {
	return &Scanner{fetcher: fetcher, opts: opts, sleep: time.Sleep}
}
