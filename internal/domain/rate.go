package domain

// ExchangeRate is one normalized provider quote for a currency pair.
// LastRefreshed is kept verbatim as the provider sent it; it is displayed,
// never reparsed. BidPrice and AskPrice are nil when the provider omitted
// them or sent something unusable.
type ExchangeRate struct {
	FromCurrency  string
	ToCurrency    string
	Rate          float64
	LastRefreshed string
	BidPrice      *float64
	AskPrice      *float64
}

func (r ExchangeRate) Pair() CurrencyPair {
	return CurrencyPair{Base: r.FromCurrency, Quote: r.ToCurrency}
}
