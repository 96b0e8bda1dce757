package alphavantage

import (
	"strconv"

	"forexscan/internal/domain"
)

// Field labels Alpha Vantage uses inside the realtime quote object.
const (
	fieldFromCode      = "1. From_Currency Code"
	fieldToCode        = "3. To_Currency Code"
	fieldRate          = "5. Exchange Rate"
	fieldLastRefreshed = "6. Last Refreshed"
	fieldBidPrice      = "8. Bid Price"
	fieldAskPrice      = "9. Ask Price"
)

// ParseQuote maps the flat numbered-label quote object into a domain record.
// The currency codes, rate and refresh timestamp are required; bid and ask
// are best-effort and reported as absent when missing, empty or non-numeric.
func ParseQuote(pair domain.CurrencyPair, payload map[string]string) (domain.ExchangeRate, error) {
	fromCode, err := requiredField(pair, payload, fieldFromCode)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	toCode, err := requiredField(pair, payload, fieldToCode)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	rawRate, err := requiredField(pair, payload, fieldRate)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	lastRefreshed, err := requiredField(pair, payload, fieldLastRefreshed)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	rate, parseErr := strconv.ParseFloat(rawRate, 64)
	if parseErr != nil || !(rate > 0) {
		return domain.ExchangeRate{}, &domain.ScanError{
			Kind: domain.ErrInvalidRate, Pair: pair.String(), Detail: fieldRate + " = " + strconv.Quote(rawRate),
		}
	}

	return domain.ExchangeRate{
		FromCurrency:  fromCode,
		ToCurrency:    toCode,
		Rate:          rate,
		LastRefreshed: lastRefreshed,
		BidPrice:      optionalPrice(payload, fieldBidPrice),
		AskPrice:      optionalPrice(payload, fieldAskPrice),
	}, nil
}

func requiredField(pair domain.CurrencyPair, payload map[string]string, label string) (string, error) {
	v, ok := payload[label]
	if !ok {
		return "", &domain.ScanError{
			Kind: domain.ErrMissingField, Pair: pair.String(), Detail: strconv.Quote(label),
		}
	}
	return v, nil
}

// optionalPrice tolerates a missing key, an empty string and an unparsable
// number, resolving all three to absence.
func optionalPrice(payload map[string]string, label string) *float64 {
	raw, ok := payload[label]
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
