package snapshot

import (
	"encoding/json"
	"os"
	"time"

	"forexscan/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Record is one exchange rate in the persisted snapshot shape.
type Record struct {
	FromCurrency  string   `json:"from_currency"`
	ToCurrency    string   `json:"to_currency"`
	ExchangeRate  float64  `json:"exchange_rate"`
	BidPrice      *float64 `json:"bid_price"`
	AskPrice      *float64 `json:"ask_price"`
	LastRefreshed string   `json:"last_refreshed"`
}

// Document is the snapshot file capturing one scan's full result set.
type Document struct {
	GeneratedAt string   `json:"generated_at"`
	Pairs       []string `json:"pairs"`
	Data        []Record `json:"data"`
}

// Build assembles a snapshot document; pair and record order follow the
// input order.
func Build(pairs []domain.CurrencyPair, rates []domain.ExchangeRate, generatedAt time.Time) Document {
	doc := Document{
		GeneratedAt: generatedAt.UTC().Format(timeLayout),
		Pairs:       make([]string, 0, len(pairs)),
		Data:        make([]Record, 0, len(rates)),
	}
	for _, p := range pairs {
		doc.Pairs = append(doc.Pairs, p.String())
	}
	for _, r := range rates {
		doc.Data = append(doc.Data, Record{
			FromCurrency:  r.FromCurrency,
			ToCurrency:    r.ToCurrency,
			ExchangeRate:  r.Rate,
			BidPrice:      r.BidPrice,
			AskPrice:      r.AskPrice,
			LastRefreshed: r.LastRefreshed,
		})
	}
	return doc
}

func (d Document) Write(path string) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Rates converts the snapshot records back into domain records.
func (d Document) Rates() []domain.ExchangeRate {
	rates := make([]domain.ExchangeRate, 0, len(d.Data))
	for _, rec := range d.Data {
		rates = append(rates, domain.ExchangeRate{
			FromCurrency:  rec.FromCurrency,
			ToCurrency:    rec.ToCurrency,
			Rate:          rec.ExchangeRate,
			LastRefreshed: rec.LastRefreshed,
			BidPrice:      rec.BidPrice,
			AskPrice:      rec.AskPrice,
		})
	}
	return rates
}
