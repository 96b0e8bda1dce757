package scan

import (
	"forexscan/internal/adapters/alphavantage"
	"forexscan/internal/domain"
)

// demoQuotes are canned provider payloads for offline runs, in the same
// numbered-label shape the live endpoint returns.
var demoQuotes = map[string]map[string]string{
	"EUR/USD": {
		"1. From_Currency Code": "EUR",
		"3. To_Currency Code":   "USD",
		"5. Exchange Rate":      "1.08650",
		"6. Last Refreshed":     "2024-05-01 15:35:00",
		"8. Bid Price":          "1.08630",
		"9. Ask Price":          "1.08670",
	},
	"GBP/USD": {
		"1. From_Currency Code": "GBP",
		"3. To_Currency Code":   "USD",
		"5. Exchange Rate":      "1.24510",
		"6. Last Refreshed":     "2024-05-01 15:35:00",
		"8. Bid Price":          "1.24490",
		"9. Ask Price":          "1.24530",
	},
	"USD/JPY": {
		"1. From_Currency Code": "USD",
		"3. To_Currency Code":   "JPY",
		"5. Exchange Rate":      "154.8200",
		"6. Last Refreshed":     "2024-05-01 15:35:00",
		"8. Bid Price":          "154.7800",
		"9. Ask Price":          "154.8600",
	},
	"USD/CHF": {
		"1. From_Currency Code": "USD",
		"3. To_Currency Code":   "CHF",
		"5. Exchange Rate":      "0.90680",
		"6. Last Refreshed":     "2024-05-01 15:35:00",
		"8. Bid Price":          "0.90660",
		"9. Ask Price":          "0.90700",
	},
	"AUD/USD": {
		"1. From_Currency Code": "AUD",
		"3. To_Currency Code":   "USD",
		"5. Exchange Rate":      "0.65320",
		"6. Last Refreshed":     "2024-05-01 15:35:00",
		"8. Bid Price":          "0.65300",
		"9. Ask Price":          "0.65340",
	},
}

// DemoSource serves fixed quotes without touching the network. A pair missing
// from the table fails the whole lookup, matching the Scanner's all-or-nothing
// batch semantics.
type DemoSource struct{}

func (DemoSource) Lookup(pairs []domain.CurrencyPair) ([]domain.ExchangeRate, error) {
	results := make([]domain.ExchangeRate, 0, len(pairs))
	for _, pair := range pairs {
		payload, ok := demoQuotes[pair.String()]
		if !ok {
			return nil, &domain.ScanError{
				Kind: domain.ErrDemoUnavailable, Pair: pair.String(), Detail: "try one of the default currency pairs",
			}
		}
		rate, err := alphavantage.ParseQuote(pair, payload)
		if err != nil {
			return nil, err
		}
		results = append(results, rate)
	}
	return results, nil
}
